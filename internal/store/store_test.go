package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	st, err := Open(context.Background(), BackendSQLite, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestOpen(t *testing.T) {
	t.Run("sqlite", func(t *testing.T) {
		st := openTestStore(t)
		assert.Equal(t, BackendSQLite, st.Dialect().Name())
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, err := Open(context.Background(), "oracle", "whatever")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown backend")
	})
}

func TestEnsureSchema(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	require.NoError(t, st.EnsureSchema(ctx))

	// All six tables exist and are empty.
	for _, tab := range Tables {
		n, err := st.Count(ctx, tab)
		require.NoError(t, err)
		assert.Equal(t, 0, n, tab.Name)
	}

	t.Run("repeat call is a no-op", func(t *testing.T) {
		tx, err := st.Begin(ctx)
		require.NoError(t, err)
		_, err = tx.Upsert(ctx, Segments, "10000000", map[string]string{"description": "Segment A"})
		require.NoError(t, err)
		require.NoError(t, tx.Commit())

		require.NoError(t, st.EnsureSchema(ctx))

		n, err := st.Count(ctx, Segments)
		require.NoError(t, err)
		assert.Equal(t, 1, n, "existing rows survive a repeat EnsureSchema")
	})
}

func TestUpsert(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	require.NoError(t, st.EnsureSchema(ctx))

	t.Run("insert then overwrite", func(t *testing.T) {
		tx, err := st.Begin(ctx)
		require.NoError(t, err)

		created, err := tx.Upsert(ctx, Segments, "10000000", map[string]string{"description": "Segment A"})
		require.NoError(t, err)
		assert.True(t, created)

		created, err = tx.Upsert(ctx, Segments, "10000000", map[string]string{"description": "Segment A renamed"})
		require.NoError(t, err)
		assert.False(t, created)
		require.NoError(t, tx.Commit())

		var desc string
		err = st.DB().QueryRow("SELECT description FROM segments WHERE segment_code = ?", "10000000").Scan(&desc)
		require.NoError(t, err)
		assert.Equal(t, "Segment A renamed", desc)

		n, err := st.Count(ctx, Segments)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("missing column value", func(t *testing.T) {
		tx, err := st.Begin(ctx)
		require.NoError(t, err)
		defer func() { _ = tx.Rollback() }()

		_, err = tx.Upsert(ctx, Families, "10100000", map[string]string{"description": "Family A"})
		require.Error(t, err)
		var se *StorageError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, "families", se.Table)
		assert.Contains(t, err.Error(), "segment_code")
	})

	t.Run("foreign key violation", func(t *testing.T) {
		tx, err := st.Begin(ctx)
		require.NoError(t, err)
		defer func() { _ = tx.Rollback() }()

		_, err = tx.Upsert(ctx, Families, "99900000", map[string]string{
			"description":  "orphan",
			"segment_code": "99000000", // no such segment
		})
		require.Error(t, err)
		var se *StorageError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, "families", se.Table)
	})
}

func TestRollback(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	require.NoError(t, st.EnsureSchema(ctx))

	tx, err := st.Begin(ctx)
	require.NoError(t, err)
	_, err = tx.Upsert(ctx, Segments, "10000000", map[string]string{"description": "Segment A"})
	require.NoError(t, err)
	require.NoError(t, tx.Rollback())

	n, err := st.Count(ctx, Segments)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
