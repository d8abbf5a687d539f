// Package dbtest opens throwaway migrated SQLite databases for tests.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"

	"daytrack/internal/db"
)

// Open returns a migrated database in t.TempDir(), closed on cleanup.
func Open(t *testing.T) *sqlx.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "daytrack.db")
	conn, err := db.Open(db.DriverSQLite, path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	if err := db.RunMigrations(context.Background(), conn); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return conn
}
