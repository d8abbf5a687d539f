package analytics

import (
	"daytrack/internal/calendar"
)

// Windows used by the dashboard.
const (
	HabitWindowDays   = 30
	HeatmapWindowDays = 365
	RecentMoodCount   = 7
)

// HabitInput is an active habit and its logs, as read for the dashboard.
type HabitInput struct {
	ID    string
	Name  string
	Icon  string
	Color string
	Logs  []DailyLogPoint
}

// DashboardInput is everything the composer needs, already read from storage.
type DashboardInput struct {
	Habits         []HabitInput
	Entries        []MoodEntry
	HasEntryToday  bool
	TotalEntries   int
	ActiveProjects int
	OpenTasks      int
}

// HabitSummary is one habit card on the dashboard.
type HabitSummary struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Icon           string          `json:"icon,omitempty"`
	Color          string          `json:"color,omitempty"`
	Streak         int             `json:"streak"`
	LongestStreak  int             `json:"longest_streak"`
	CompletionRate int             `json:"completion_rate"`
	TotalDays      int             `json:"total_days"`
	CompletedDays  int             `json:"completed_days"`
	StreakData     []DailyLogPoint `json:"streak_data"`
}

// Dashboard is the composed response.
type Dashboard struct {
	ReferenceDate    calendar.Date    `json:"reference_date"`
	HasEntryToday    bool             `json:"has_entry_today"`
	TotalEntries     int              `json:"total_entries"`
	ActiveProjects   int              `json:"active_projects"`
	OpenTasks        int              `json:"open_tasks"`
	Habits           []HabitSummary   `json:"habits"`
	Consistency      []HeatmapCell    `json:"consistency"`
	MoodDistribution MoodDistribution `json:"mood_distribution"`
	RecentMoods      []Mood           `json:"recent_moods"`
	JournalHeatmap   []JournalCell    `json:"journal_heatmap"`
}

// ComposeDashboard shapes the dashboard from pre-read data. It owns only the
// windows; every number comes from the calculators in this package.
func ComposeDashboard(ref calendar.Reference, in DashboardInput) Dashboard {
	habitWindow := ref.Window(HabitWindowDays)
	heatmapWindow := ref.Window(HeatmapWindowDays)

	habits := make([]HabitSummary, 0, len(in.Habits))
	series := make([]HabitSeries, 0, len(in.Habits))
	for _, h := range in.Habits {
		points := InRange(h.Logs, habitWindow)
		stats := ComputeHabitStats(points, ref.Today)
		habits = append(habits, HabitSummary{
			ID:             h.ID,
			Name:           h.Name,
			Icon:           h.Icon,
			Color:          h.Color,
			Streak:         stats.CurrentStreak,
			LongestStreak:  stats.LongestStreak,
			CompletionRate: stats.CompletionRate,
			TotalDays:      stats.TotalDays,
			CompletedDays:  stats.CompletedDays,
			StreakData:     points,
		})
		series = append(series, HabitSeries{HabitID: h.ID, Points: points})
	}

	entries := make([]MoodEntry, 0, len(in.Entries))
	for _, e := range in.Entries {
		if heatmapWindow.Contains(e.Date) {
			entries = append(entries, e)
		}
	}

	return Dashboard{
		ReferenceDate:    ref.Today,
		HasEntryToday:    in.HasEntryToday,
		TotalEntries:     in.TotalEntries,
		ActiveProjects:   in.ActiveProjects,
		OpenTasks:        in.OpenTasks,
		Habits:           habits,
		Consistency:      AllHabitsHeatmap(habitWindow, series),
		MoodDistribution: Distribution(entries),
		RecentMoods:      RecentMoods(entries, RecentMoodCount),
		JournalHeatmap:   JournalHeatmap(heatmapWindow, entries),
	}
}
