// Package store owns the relational side of the importer: the six-table
// schema, the backend dialects, and the upsert primitive the hierarchy
// walker drives. SQLite (modernc, pure Go) and Postgres (pgx) are the
// two supported backends.
package store

import (
	"context"
	"database/sql"
	"fmt"

	log "github.com/sirupsen/logrus"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
	_ "modernc.org/sqlite"
)

// StorageError wraps a database failure that is not an ordinary upsert
// conflict: foreign-key violations, connectivity loss, malformed
// statements. It always aborts the surrounding import.
type StorageError struct {
	Table string
	Err   error
}

func (e *StorageError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("storage: %v", e.Err)
	}
	return fmt.Sprintf("storage: table %s: %v", e.Table, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Store is an open database handle bound to one dialect.
type Store struct {
	db      *sql.DB
	dialect Dialect
}

// Open connects to the given backend and applies per-connection setup.
// backend is "sqlite" or "postgres"; dsn is a file path / :memory: for
// SQLite and a connection string for Postgres.
func Open(ctx context.Context, backend, dsn string) (*Store, error) {
	d, err := ForBackend(backend)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(d.Driver(), dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s %s: %w", backend, dsn, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, &StorageError{Err: fmt.Errorf("ping %s: %w", backend, err)}
	}
	if err := d.Setup(ctx, db); err != nil {
		_ = db.Close()
		return nil, &StorageError{Err: fmt.Errorf("setup %s: %w", backend, err)}
	}
	log.WithFields(log.Fields{"backend": backend, "dsn": dsn}).Debug("database opened")
	return &Store{db: db, dialect: d}, nil
}

// DB returns the underlying sql.DB for read-only consumers (export, stats).
func (s *Store) DB() *sql.DB { return s.db }

// Dialect returns the dialect the store was opened with.
func (s *Store) Dialect() Dialect { return s.dialect }

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// EnsureSchema creates the six classification tables and their foreign
// keys if absent. Safe to call any number of times against a populated
// database; CREATE TABLE IF NOT EXISTS makes repeat calls a no-op.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, t := range Tables {
		if _, err := s.db.ExecContext(ctx, createTableSQL(t)); err != nil {
			return &StorageError{Table: t.Name, Err: fmt.Errorf("create table: %w", err)}
		}
	}
	log.Debug("schema ensured")
	return nil
}

// Count returns the number of rows in a table.
func (s *Store) Count(ctx context.Context, t Table) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+t.Name).Scan(&n)
	if err != nil {
		return 0, &StorageError{Table: t.Name, Err: err}
	}
	return n, nil
}

// Begin starts the transaction an import runs in.
func (s *Store) Begin(ctx context.Context) (*Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, &StorageError{Err: fmt.Errorf("begin: %w", err)}
	}
	return &Tx{tx: tx, dialect: s.dialect}, nil
}

// Tx wraps one import transaction. All writes of a run go through it so
// a mid-tree failure rolls the database back to its pre-import state.
type Tx struct {
	tx      *sql.Tx
	dialect Dialect
}

// Upsert inserts a row or, on a primary-key conflict, overwrites its
// non-key columns. values must carry every column of t beyond the key.
// The returned flag reports whether the row was newly created. Any
// failure other than the expected key conflict — a foreign-key
// violation signals a caller-ordering bug — comes back as *StorageError.
func (x *Tx) Upsert(ctx context.Context, t Table, key string, values map[string]string) (created bool, err error) {
	args := make([]any, 0, 3)
	args = append(args, key)
	for _, c := range t.Columns() {
		v, ok := values[c]
		if !ok {
			return false, &StorageError{Table: t.Name, Err: fmt.Errorf("missing value for column %s", c)}
		}
		args = append(args, v)
	}

	var one int
	err = x.tx.QueryRowContext(ctx, existsSQL(x.dialect, t), key).Scan(&one)
	switch {
	case err == sql.ErrNoRows:
		created = true
	case err != nil:
		return false, &StorageError{Table: t.Name, Err: fmt.Errorf("probe %s: %w", key, err)}
	}

	if _, err := x.tx.ExecContext(ctx, x.dialect.UpsertSQL(t), args...); err != nil {
		return false, &StorageError{Table: t.Name, Err: fmt.Errorf("upsert %s: %w", key, err)}
	}
	return created, nil
}

// Commit commits the transaction.
func (x *Tx) Commit() error {
	if err := x.tx.Commit(); err != nil {
		return &StorageError{Err: fmt.Errorf("commit: %w", err)}
	}
	return nil
}

// Rollback aborts the transaction. Safe to call after Commit.
func (x *Tx) Rollback() error { return x.tx.Rollback() }
