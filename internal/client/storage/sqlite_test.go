package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, name).Scan(&n)
	require.NoError(t, err)
	return n > 0
}

func TestOpenSQLite_InMemoryCreatesSchema(t *testing.T) {
	db, err := OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.True(t, tableExists(t, db, "goose_db_version"))
	require.True(t, tableExists(t, db, "kv"))
}

func TestOpenSQLite_CreatesParentDirectory(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "nested", "dir", "store.db")

	db, err := OpenSQLite(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`INSERT INTO kv (key, value) VALUES ('a', 'b')`)
	require.NoError(t, err)
}

func TestRunMigrations_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "app.db")

	db, err := OpenSQLite(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, RunMigrations(ctx, db))
	require.True(t, tableExists(t, db, "kv"))
}

func TestOpenSQLite_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "app.db")

	db, err := OpenSQLite(ctx, dsn)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO kv (key, value) VALUES ('accessToken', 'T1')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = OpenSQLite(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var v string
	require.NoError(t, db.QueryRow(`SELECT value FROM kv WHERE key = 'accessToken'`).Scan(&v))
	require.Equal(t, "T1", v)
}
