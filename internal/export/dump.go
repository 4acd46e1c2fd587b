// Package export serializes the populated classification tables as
// portable SQL: CREATE TABLE statements followed by literal INSERTs, in
// parent-first order so the dump replays against a fresh database with
// foreign keys enforced. Pure read and serialize; no hierarchy logic.
package export

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/mcgarrah/gpcdb/internal/store"
)

// Dump writes the six tables to w. Rows are ordered by key so two dumps
// of the same database are byte-identical.
func Dump(ctx context.Context, st *store.Store, w io.Writer) error {
	if _, err := fmt.Fprintln(w, "-- GS1 GPC classification dump"); err != nil {
		return err
	}
	for _, t := range store.Tables {
		if _, err := fmt.Fprintf(w, "\n%s;\n\n", store.DDL(t)); err != nil {
			return err
		}
		n, err := dumpTable(ctx, st.DB(), t, w)
		if err != nil {
			return err
		}
		log.WithFields(log.Fields{"table": t.Name, "rows": n}).Debug("table dumped")
	}
	return nil
}

func dumpTable(ctx context.Context, db *sql.DB, t store.Table, w io.Writer) (int, error) {
	cols := append([]string{t.Key}, t.Columns()...)
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY %s", strings.Join(cols, ", "), t.Name, t.Key)
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return 0, &store.StorageError{Table: t.Name, Err: err}
	}
	defer func() { _ = rows.Close() }()

	n := 0
	for rows.Next() {
		vals := make([]sql.NullString, len(cols))
		dest := make([]any, len(cols))
		for i := range vals {
			dest[i] = &vals[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return n, &store.StorageError{Table: t.Name, Err: err}
		}
		lits := make([]string, len(vals))
		for i, v := range vals {
			lits[i] = literal(v)
		}
		if _, err := fmt.Fprintf(w, "INSERT INTO %s (%s) VALUES (%s);\n",
			t.Name, strings.Join(cols, ", "), strings.Join(lits, ", ")); err != nil {
			return n, err
		}
		n++
	}
	return n, rows.Err()
}

// literal renders a value as a single-quoted SQL string, doubling
// embedded quotes. NULLs stay NULL.
func literal(v sql.NullString) string {
	if !v.Valid {
		return "NULL"
	}
	return "'" + strings.ReplaceAll(v.String, "'", "''") + "'"
}
