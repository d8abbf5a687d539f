package db_test

import (
	"context"
	"testing"

	"daytrack/internal/db"
	"daytrack/internal/db/dbtest"
)

func TestMigrationsCreateTables(t *testing.T) {
	conn := dbtest.Open(t)

	for _, table := range []string{"users", "habits", "journal_entries", "habit_logs", "projects", "tasks"} {
		var n int
		if err := conn.QueryRow(`SELECT COUNT(1) FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&n); err != nil {
			t.Fatalf("query sqlite_master: %v", err)
		}
		if n != 1 {
			t.Errorf("table %s missing", table)
		}
	}
}

func TestMigrationsAreIdempotent(t *testing.T) {
	conn := dbtest.Open(t)
	if err := db.RunMigrations(context.Background(), conn); err != nil {
		t.Fatalf("second run: %v", err)
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	if _, err := db.Open("mysql", "whatever"); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestRebindPerDriver(t *testing.T) {
	conn := dbtest.Open(t)
	if got := conn.Rebind("SELECT ? , ?"); got != "SELECT ? , ?" {
		t.Errorf("sqlite rebind = %q", got)
	}
}
