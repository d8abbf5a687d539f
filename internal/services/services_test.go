package services

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"daytrack/internal/analytics"
	"daytrack/internal/calendar"
	"daytrack/internal/db/dbtest"
	"daytrack/internal/models"
	"daytrack/internal/store"
)

var today = calendar.NewDate(2026, 5, 10)

type fixture struct {
	store *store.Store
	svc   *AnalyticsService
	owner int
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	st := store.New(dbtest.Open(t))
	u, err := st.CreateUser(context.Background(), models.User{Email: "e", EmailBlindIndex: "i", PasswordHash: "h"})
	if err != nil {
		t.Fatal(err)
	}
	svc := NewAnalyticsService(st)
	svc.now = func() time.Time { return today.Time().Add(15 * time.Hour) }
	return fixture{store: st, svc: svc, owner: u.ID}
}

func (f fixture) habit(t *testing.T, name string) models.Habit {
	t.Helper()
	h, err := f.store.CreateHabit(context.Background(), models.Habit{OwnerID: f.owner, Name: name, Active: true})
	if err != nil {
		t.Fatal(err)
	}
	return h
}

func (f fixture) entry(t *testing.T, daysAgo int, mood string, logs ...models.HabitLog) {
	t.Helper()
	_, err := f.store.SaveJournalEntry(context.Background(),
		models.JournalEntry{OwnerID: f.owner, Date: today.AddDays(-daysAgo), Mood: mood}, logs)
	if err != nil {
		t.Fatal(err)
	}
}

func done(h models.Habit, completed bool) models.HabitLog {
	return models.HabitLog{HabitID: h.ID, Completed: completed}
}

func TestReference(t *testing.T) {
	f := newFixture(t)
	ref, err := f.svc.Reference("")
	if err != nil || !ref.Today.Equal(today) {
		t.Errorf("clock reference = %v, %v", ref.Today, err)
	}
	ref, err = f.svc.Reference("2026-01-02")
	if err != nil || ref.Today.String() != "2026-01-02" {
		t.Errorf("override reference = %v, %v", ref.Today, err)
	}
	if _, err := f.svc.Reference("02/01/2026"); err == nil {
		t.Error("malformed override accepted")
	}
}

func TestHabitStats(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	read := f.habit(t, "Read")

	// Completed the last three days, missed day 3, completed days 4-5.
	for i := 0; i < 6; i++ {
		f.entry(t, i, "", done(read, i != 3))
	}
	f.entry(t, 45, "", done(read, true))

	ref := calendar.Reference{Today: today}
	report, err := f.svc.HabitStats(ctx, f.owner, read.ID, ref, 30)
	if err != nil {
		t.Fatal(err)
	}
	want := analytics.HabitStats{CurrentStreak: 3, LongestStreak: 3, CompletionRate: 83, TotalDays: 6, CompletedDays: 5}
	if report.Stats != want {
		t.Errorf("stats = %+v, want %+v", report.Stats, want)
	}
	if len(report.StreakData) != 6 || !report.StreakData[0].Date.Equal(today) {
		t.Errorf("streak data should be the 6 in-window days newest first: %+v", report.StreakData)
	}

	if _, err := f.svc.HabitStats(ctx, f.owner+1, read.ID, ref, 30); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("foreign owner: %v", err)
	}
}

func TestHabitStatsNewHabit(t *testing.T) {
	f := newFixture(t)
	h := f.habit(t, "Fresh")
	report, err := f.svc.HabitStats(context.Background(), f.owner, h.ID, calendar.Reference{Today: today}, 30)
	if err != nil {
		t.Fatal(err)
	}
	if report.Stats != (analytics.HabitStats{}) || len(report.StreakData) != 0 {
		t.Errorf("new habit should have zero stats: %+v", report)
	}
}

func TestHeatmaps(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := f.habit(t, "A")
	b := f.habit(t, "B")
	f.entry(t, 0, "happy", done(a, true), done(b, true))
	f.entry(t, 1, "sad", done(a, true), done(b, false))
	f.entry(t, 2, "")

	rng := calendar.Trailing(today, 3)
	cells, err := f.svc.AllHabitsHeatmap(ctx, f.owner, rng)
	if err != nil {
		t.Fatal(err)
	}
	if len(cells) != 3 {
		t.Fatalf("expected a cell per day, got %d", len(cells))
	}
	levels := []int{cells[0].IntensityLevel, cells[1].IntensityLevel, cells[2].IntensityLevel}
	if levels[0] != 0 || levels[1] != 2 || levels[2] != 4 {
		t.Errorf("levels oldest to newest = %v, want [0 2 4]", levels)
	}

	single, err := f.svc.HabitHeatmap(ctx, f.owner, b.ID, rng)
	if err != nil {
		t.Fatal(err)
	}
	if single[1].IntensityLevel != 0 || single[2].IntensityLevel != 4 {
		t.Errorf("single habit heatmap: %+v", single)
	}

	journal, err := f.svc.JournalHeatmap(ctx, f.owner, rng)
	if err != nil {
		t.Fatal(err)
	}
	if len(journal) != 3 || journal[0].Mood != analytics.MoodNeutral || journal[2].Mood != analytics.MoodHappy {
		t.Errorf("journal heatmap: %+v", journal)
	}
}

func TestMoods(t *testing.T) {
	f := newFixture(t)
	moods := []string{"happy", "happy", "happy", "happy", "sad", "sad", "sad", "", "neutral", "neutral"}
	for i, m := range moods {
		f.entry(t, i, m)
	}
	report, err := f.svc.Moods(context.Background(), f.owner, calendar.Trailing(today, 30), 7)
	if err != nil {
		t.Fatal(err)
	}
	want := analytics.MoodDistribution{analytics.MoodHappy: 40, analytics.MoodSad: 30, analytics.MoodNeutral: 30}
	if len(report.Distribution) != len(want) {
		t.Fatalf("distribution = %v", report.Distribution)
	}
	for m, pct := range want {
		if report.Distribution[m] != pct {
			t.Errorf("%s = %d, want %d", m, report.Distribution[m], pct)
		}
	}
	if len(report.Recent) != 7 || report.Recent[0] != analytics.MoodHappy || report.Recent[6] != analytics.MoodSad {
		t.Errorf("recent = %v", report.Recent)
	}
}

func TestDashboard(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	read := f.habit(t, "Read")
	run := f.habit(t, "Run")
	f.entry(t, 0, "happy", done(read, true), done(run, false))
	f.entry(t, 1, "calm", done(read, true))
	f.entry(t, 100, "sad")
	f.entry(t, 400, "angry")

	if _, err := f.store.CreateProject(ctx, models.Project{OwnerID: f.owner, Name: "P"}); err != nil {
		t.Fatal(err)
	}
	if _, err := f.store.CreateTask(ctx, models.Task{OwnerID: f.owner, Title: "T"}); err != nil {
		t.Fatal(err)
	}

	d, err := f.svc.Dashboard(ctx, f.owner, calendar.Reference{Today: today})
	if err != nil {
		t.Fatal(err)
	}
	if !d.HasEntryToday || d.TotalEntries != 4 || d.ActiveProjects != 1 || d.OpenTasks != 1 {
		t.Errorf("counters: %+v", d)
	}
	if len(d.Habits) != 2 {
		t.Fatalf("habits = %d", len(d.Habits))
	}
	byID := map[string]analytics.HabitSummary{}
	for _, h := range d.Habits {
		byID[h.ID] = h
	}
	if s := byID[read.ID]; s.Name != "Read" || s.Streak != 2 || s.CompletionRate != 100 {
		t.Errorf("read summary: %+v", s)
	}
	if s := byID[run.ID]; s.Streak != 0 || s.TotalDays != 1 {
		t.Errorf("run summary: %+v", s)
	}
	if len(d.JournalHeatmap) != 3 {
		t.Errorf("journal heatmap should hold the 3 entries inside 365 days, got %d", len(d.JournalHeatmap))
	}
	if len(d.RecentMoods) != 3 || d.RecentMoods[0] != analytics.MoodHappy {
		t.Errorf("recent moods = %v", d.RecentMoods)
	}
	if len(d.Consistency) != analytics.HabitWindowDays {
		t.Errorf("consistency series = %d cells", len(d.Consistency))
	}

	// A day with no entry yet.
	d, err = f.svc.Dashboard(ctx, f.owner, calendar.Reference{Today: today.AddDays(1)})
	if err != nil {
		t.Fatal(err)
	}
	if d.HasEntryToday {
		t.Error("no entry exists for tomorrow")
	}
	for _, h := range d.Habits {
		if h.ID == read.ID && h.Streak != 2 {
			t.Errorf("yesterday's streak should survive the grace day, got %d", h.Streak)
		}
	}
}

func TestDashboardFailsWhenAReadFails(t *testing.T) {
	f := newFixture(t)
	f.store.DB().Close()
	if _, err := f.svc.Dashboard(context.Background(), f.owner, calendar.Reference{Today: today}); err == nil {
		t.Error("expected an error from a closed database")
	}
}

func TestSeriesGroupsByHabit(t *testing.T) {
	logs := []models.HabitLog{
		{HabitID: "a", Date: today, Completed: true},
		{HabitID: "b", Date: today},
		{HabitID: "a", Date: today.AddDays(-1)},
	}
	series := Series(logs)
	if len(series) != 2 || series[0].HabitID != "a" || len(series[0].Points) != 2 || len(series[1].Points) != 1 {
		t.Errorf("Series() = %+v", series)
	}
}

func TestEncryptionService(t *testing.T) {
	enc, err := NewEncryptionService(bytes.Repeat([]byte{3}, 32), bytes.Repeat([]byte{4}, 32))
	if err != nil {
		t.Fatal(err)
	}
	u := models.User{Email: " Someone@Example.com "}
	if err := enc.EncryptUser(&u); err != nil {
		t.Fatal(err)
	}
	if u.Email == "" || u.EmailBlindIndex != enc.EmailBlindIndex("someone@example.com") {
		t.Errorf("blind index should ignore case and padding: %+v", u)
	}
	if err := enc.DecryptUser(&u); err != nil || u.Email != "Someone@Example.com" {
		t.Errorf("DecryptUser() = %q, %v", u.Email, err)
	}

	e := models.JournalEntry{Content: "dear diary"}
	if err := enc.EncryptEntry(&e); err != nil || e.Content == "dear diary" {
		t.Fatalf("EncryptEntry() = %q, %v", e.Content, err)
	}
	entries := []models.JournalEntry{e}
	if err := enc.DecryptEntries(entries); err != nil || entries[0].Content != "dear diary" {
		t.Errorf("DecryptEntries() = %q, %v", entries[0].Content, err)
	}
}
