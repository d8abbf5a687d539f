package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"daytrack/internal/calendar"
	"daytrack/internal/db"
	"daytrack/internal/models"
	"daytrack/internal/services"
	"daytrack/internal/store"
)

func testContext(t *testing.T) (*Context, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	return &Context{
		DatabaseURL: filepath.Join(t.TempDir(), "trackctl.db"),
		Driver:      db.DriverSQLite,
		Log:         zap.NewNop(),
		Out:         out,
	}, out
}

func TestParse(t *testing.T) {
	parser, err := kong.New(&CLI)
	if err != nil {
		t.Fatal(err)
	}
	kctx, err := parser.Parse([]string{"--database-url=x.db", "--driver=sqlite", "stats", "--owner=3", "--habit=h1", "--days=7"})
	if err != nil {
		t.Fatal(err)
	}
	if kctx.Command() != "stats" || CLI.Stats.Owner != 3 || CLI.Stats.Days != 7 || CLI.Driver != "sqlite" {
		t.Errorf("parsed %q %+v", kctx.Command(), CLI.Stats)
	}
	if _, err := parser.Parse([]string{"--database-url=x.db", "--driver=mysql", "migrate"}); err == nil {
		t.Error("unknown driver accepted")
	}
}

func TestMigrateStatsDashboard(t *testing.T) {
	c, out := testContext(t)
	if err := (&MigrateCmd{}).Run(c); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	conn, err := c.open()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	st := store.New(conn)
	u, err := st.CreateUser(ctx, models.User{Email: "e", EmailBlindIndex: "i", PasswordHash: "h"})
	if err != nil {
		t.Fatal(err)
	}
	h, err := st.CreateHabit(ctx, models.Habit{OwnerID: u.ID, Name: "Walk", Active: true})
	if err != nil {
		t.Fatal(err)
	}
	day := calendar.NewDate(2026, 8, 1)
	for i := 0; i < 3; i++ {
		_, err := st.SaveJournalEntry(ctx, models.JournalEntry{OwnerID: u.ID, Date: day.AddDays(-i), Mood: "calm"},
			[]models.HabitLog{{HabitID: h.ID, Completed: true}})
		if err != nil {
			t.Fatal(err)
		}
	}
	conn.Close()

	if err := (&StatsCmd{Owner: u.ID, Habit: h.ID, Days: 30, Today: "2026-08-01"}).Run(c); err != nil {
		t.Fatalf("stats: %v", err)
	}
	var report services.HabitReport
	if err := json.Unmarshal(out.Bytes(), &report); err != nil {
		t.Fatal(err)
	}
	if report.Stats.CurrentStreak != 3 || report.Stats.CompletionRate != 100 {
		t.Errorf("stats = %+v", report.Stats)
	}

	out.Reset()
	if err := (&DashboardCmd{Owner: u.ID, Today: "2026-08-01"}).Run(c); err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	var dash struct {
		HasEntryToday bool `json:"has_entry_today"`
		TotalEntries  int  `json:"total_entries"`
	}
	if err := json.Unmarshal(out.Bytes(), &dash); err != nil {
		t.Fatal(err)
	}
	if !dash.HasEntryToday || dash.TotalEntries != 3 {
		t.Errorf("dashboard = %+v", dash)
	}

	if err := (&StatsCmd{Owner: u.ID, Habit: "missing", Days: 30}).Run(c); err == nil {
		t.Error("missing habit should fail")
	}
	if err := (&StatsCmd{Owner: u.ID, Habit: h.ID, Days: 0}).Run(c); err == nil {
		t.Error("zero days should fail")
	}
}
