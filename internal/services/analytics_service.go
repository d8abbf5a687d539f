package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"daytrack/internal/analytics"
	"daytrack/internal/calendar"
	"daytrack/internal/models"
	"daytrack/internal/store"
)

// AnalyticsService reads through the store and hands plain values to the
// analytics package. It owns no computation of its own.
type AnalyticsService struct {
	store *store.Store
	now   func() time.Time
}

func NewAnalyticsService(st *store.Store) *AnalyticsService {
	return &AnalyticsService{store: st, now: time.Now}
}

// Reference pins the request's day. An explicit YYYY-MM-DD override wins
// over the clock.
func (a *AnalyticsService) Reference(override string) (calendar.Reference, error) {
	if override == "" {
		return calendar.NewReference(a.now()), nil
	}
	day, err := calendar.Parse(override)
	if err != nil {
		return calendar.Reference{}, err
	}
	return calendar.Reference{Today: day}, nil
}

// HabitReport is the single-habit stats response.
type HabitReport struct {
	Habit      models.Habit              `json:"habit"`
	Stats      analytics.HabitStats      `json:"stats"`
	StreakData []analytics.DailyLogPoint `json:"streak_data"`
}

// HabitStats computes stats over the trailing window of days ending at ref.
func (a *AnalyticsService) HabitStats(ctx context.Context, ownerID int, habitID string, ref calendar.Reference, days int) (HabitReport, error) {
	habit, err := a.store.GetHabit(ctx, ownerID, habitID)
	if err != nil {
		return HabitReport{}, err
	}
	window := ref.Window(days)
	logs, err := a.store.HabitLogs(ctx, ownerID, habitID, window)
	if err != nil {
		return HabitReport{}, err
	}
	points := analytics.InRange(Points(logs), window)
	return HabitReport{
		Habit:      habit,
		Stats:      analytics.ComputeHabitStats(points, ref.Today),
		StreakData: points,
	}, nil
}

func (a *AnalyticsService) HabitHeatmap(ctx context.Context, ownerID int, habitID string, rng calendar.Range) ([]analytics.HeatmapCell, error) {
	logs, err := a.store.HabitLogs(ctx, ownerID, habitID, rng)
	if err != nil {
		return nil, err
	}
	return analytics.HabitHeatmap(rng, Points(logs)), nil
}

// AllHabitsHeatmap covers the owner's active habits.
func (a *AnalyticsService) AllHabitsHeatmap(ctx context.Context, ownerID int, rng calendar.Range) ([]analytics.HeatmapCell, error) {
	logs, err := a.store.HabitLogs(ctx, ownerID, "", rng)
	if err != nil {
		return nil, err
	}
	return analytics.AllHabitsHeatmap(rng, Series(logs)), nil
}

func (a *AnalyticsService) JournalHeatmap(ctx context.Context, ownerID int, rng calendar.Range) ([]analytics.JournalCell, error) {
	entries, err := a.store.JournalDays(ctx, ownerID, rng)
	if err != nil {
		return nil, err
	}
	return analytics.JournalHeatmap(rng, MoodEntries(entries)), nil
}

// MoodReport is the mood aggregation response.
type MoodReport struct {
	Distribution analytics.MoodDistribution `json:"mood_distribution"`
	Recent       []analytics.Mood           `json:"recent_moods"`
}

func (a *AnalyticsService) Moods(ctx context.Context, ownerID int, rng calendar.Range, recent int) (MoodReport, error) {
	entries, err := a.store.JournalDays(ctx, ownerID, rng)
	if err != nil {
		return MoodReport{}, err
	}
	moods := MoodEntries(entries)
	return MoodReport{
		Distribution: analytics.Distribution(moods),
		Recent:       analytics.RecentMoods(moods, recent),
	}, nil
}

// Dashboard runs the dashboard reads concurrently against one reference day.
// The first failed read cancels the rest and fails the whole response.
func (a *AnalyticsService) Dashboard(ctx context.Context, ownerID int, ref calendar.Reference) (analytics.Dashboard, error) {
	var (
		habits  []models.Habit
		logs    []models.HabitLog
		entries []models.JournalEntry
		in      analytics.DashboardInput
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		habits, err = a.store.ListHabits(ctx, ownerID, false)
		return err
	})
	g.Go(func() (err error) {
		logs, err = a.store.HabitLogs(ctx, ownerID, "", ref.Window(analytics.HabitWindowDays))
		return err
	})
	g.Go(func() (err error) {
		entries, err = a.store.JournalDays(ctx, ownerID, ref.Window(analytics.HeatmapWindowDays))
		return err
	})
	g.Go(func() (err error) {
		in.HasEntryToday, err = a.store.HasEntryOn(ctx, ownerID, ref)
		return err
	})
	g.Go(func() (err error) {
		in.TotalEntries, err = a.store.CountEntries(ctx, ownerID)
		return err
	})
	g.Go(func() (err error) {
		in.ActiveProjects, err = a.store.CountActiveProjects(ctx, ownerID)
		return err
	})
	g.Go(func() (err error) {
		in.OpenTasks, err = a.store.CountOpenTasks(ctx, ownerID)
		return err
	})
	if err := g.Wait(); err != nil {
		return analytics.Dashboard{}, fmt.Errorf("dashboard reads: %w", err)
	}

	byHabit := make(map[string][]analytics.DailyLogPoint, len(habits))
	for _, l := range logs {
		byHabit[l.HabitID] = append(byHabit[l.HabitID], analytics.DailyLogPoint{Date: l.Date, Completed: l.Completed})
	}
	in.Habits = make([]analytics.HabitInput, 0, len(habits))
	for _, h := range habits {
		in.Habits = append(in.Habits, analytics.HabitInput{
			ID:    h.ID,
			Name:  h.Name,
			Icon:  h.Icon,
			Color: h.Color,
			Logs:  byHabit[h.ID],
		})
	}
	in.Entries = MoodEntries(entries)
	return analytics.ComposeDashboard(ref, in), nil
}

// Points converts stored logs to engine points.
func Points(logs []models.HabitLog) []analytics.DailyLogPoint {
	out := make([]analytics.DailyLogPoint, len(logs))
	for i, l := range logs {
		out[i] = analytics.DailyLogPoint{Date: l.Date, Completed: l.Completed}
	}
	return out
}

// Series groups logs per habit, in order of first appearance.
func Series(logs []models.HabitLog) []analytics.HabitSeries {
	index := map[string]int{}
	var out []analytics.HabitSeries
	for _, l := range logs {
		i, ok := index[l.HabitID]
		if !ok {
			i = len(out)
			index[l.HabitID] = i
			out = append(out, analytics.HabitSeries{HabitID: l.HabitID})
		}
		out[i].Points = append(out[i].Points, analytics.DailyLogPoint{Date: l.Date, Completed: l.Completed})
	}
	return out
}

func MoodEntries(entries []models.JournalEntry) []analytics.MoodEntry {
	out := make([]analytics.MoodEntry, len(entries))
	for i, e := range entries {
		out[i] = analytics.MoodEntry{Date: e.Date, Mood: analytics.MoodOf(e.Mood)}
	}
	return out
}
