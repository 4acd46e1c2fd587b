package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Dialect hides the backend differences behind one contract: the
// database/sql driver name, the placeholder style, the native
// insert-or-update clause, and any per-connection setup. It is selected
// once when the store is opened; nothing outside this package branches
// on the backend.
type Dialect interface {
	Name() string
	Driver() string
	// Placeholder returns the parameter marker for the i-th argument (1-based).
	Placeholder(i int) string
	// UpsertSQL builds the insert-or-update statement for a table.
	UpsertSQL(t Table) string
	// Setup applies per-connection settings after open.
	Setup(ctx context.Context, db *sql.DB) error
}

// Backends supported by ForBackend.
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// ForBackend returns the dialect for a backend name.
func ForBackend(backend string) (Dialect, error) {
	switch backend {
	case BackendSQLite:
		return sqliteDialect{}, nil
	case BackendPostgres:
		return postgresDialect{}, nil
	default:
		return nil, fmt.Errorf("unknown backend %q (want %s or %s)", backend, BackendSQLite, BackendPostgres)
	}
}

type sqliteDialect struct{}

func (sqliteDialect) Name() string   { return BackendSQLite }
func (sqliteDialect) Driver() string { return "sqlite" }

func (sqliteDialect) Placeholder(int) string { return "?" }

func (d sqliteDialect) UpsertSQL(t Table) string {
	return upsertSQL(d, t)
}

// Setup enables foreign key enforcement, which SQLite leaves off by
// default. The pragma is per-connection, so the pool is pinned to a
// single connection; the import is single-threaded regardless.
func (sqliteDialect) Setup(ctx context.Context, db *sql.DB) error {
	db.SetMaxOpenConns(1)
	_, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON")
	return err
}

type postgresDialect struct{}

func (postgresDialect) Name() string   { return BackendPostgres }
func (postgresDialect) Driver() string { return "pgx" }

func (postgresDialect) Placeholder(i int) string { return fmt.Sprintf("$%d", i) }

func (d postgresDialect) UpsertSQL(t Table) string {
	return upsertSQL(d, t)
}

func (postgresDialect) Setup(context.Context, *sql.DB) error { return nil }

// upsertSQL renders INSERT ... ON CONFLICT (pk) DO UPDATE SET with the
// dialect's placeholders. Both backends resolve a primary-key conflict
// by overwriting the non-key columns from the excluded row; any other
// constraint violation (notably a missing parent FK) still fails the
// statement.
func upsertSQL(d Dialect, t Table) string {
	cols := append([]string{t.Key}, t.Columns()...)
	marks := make([]string, len(cols))
	for i := range cols {
		marks[i] = d.Placeholder(i + 1)
	}
	sets := make([]string, len(t.Columns()))
	for i, c := range t.Columns() {
		sets[i] = fmt.Sprintf("%s = excluded.%s", c, c)
	}
	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s) DO UPDATE SET %s",
		t.Name,
		strings.Join(cols, ", "),
		strings.Join(marks, ", "),
		t.Key,
		strings.Join(sets, ", "),
	)
}

// existsSQL renders the primary-key existence probe used to decide
// created-vs-updated before the upsert runs.
func existsSQL(d Dialect, t Table) string {
	return fmt.Sprintf("SELECT 1 FROM %s WHERE %s = %s", t.Name, t.Key, d.Placeholder(1))
}

// DDL returns the CREATE TABLE statement for a table. Exposed for the
// SQL-dump exporter, which reuses the same schema knowledge.
func DDL(t Table) string { return createTableSQL(t) }

// createTableSQL is dialect-neutral: TEXT keys and REFERENCES clauses
// parse identically on both backends.
func createTableSQL(t Table) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %s (\n", t.Name)
	fmt.Fprintf(&b, "\t%s TEXT PRIMARY KEY,\n", t.Key)
	fmt.Fprintf(&b, "\t%s TEXT", t.Desc)
	if t.FK != "" {
		fmt.Fprintf(&b, ",\n\t%s TEXT REFERENCES %s (%s)", t.FK, t.FKTable, t.FK)
	}
	b.WriteString("\n)")
	return b.String()
}
