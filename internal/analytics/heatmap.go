package analytics

import (
	"sort"

	"daytrack/internal/calendar"
)

// MaxIntensity is the level of a fully completed day.
const MaxIntensity = 4

// HeatmapCell is one day of a habit heatmap.
type HeatmapCell struct {
	Date           calendar.Date `json:"date"`
	IntensityLevel int           `json:"intensity_level"`
	CompletedCount int           `json:"completed_count"`
	TotalHabits    int           `json:"total_habits"`
}

// JournalCell is one day of the journal heatmap. Only days with an entry get a cell.
type JournalCell struct {
	Date  calendar.Date `json:"date"`
	Mood  Mood          `json:"mood"`
	Count int           `json:"count"`
}

// HabitSeries is one habit's logs, as fed to the all-habits heatmap.
type HabitSeries struct {
	HabitID string
	Points  []DailyLogPoint
}

// IntensityLevel buckets a completion percentage into 0..4:
// 0 stays 0, then (0,25], (25,50], (50,75], (75,100].
func IntensityLevel(pct float64) int {
	switch {
	case pct <= 0:
		return 0
	case pct <= 25:
		return 1
	case pct <= 50:
		return 2
	case pct <= 75:
		return 3
	default:
		return MaxIntensity
	}
}

// HabitHeatmap projects a single habit onto rng: level 4 on days with a
// completed log, 0 otherwise. One cell per day.
func HabitHeatmap(rng calendar.Range, points []DailyLogPoint) []HeatmapCell {
	done := make(map[calendar.Date]bool, len(points))
	for _, p := range points {
		if p.Completed {
			done[p.Date] = true
		}
	}

	dates := rng.Dates()
	cells := make([]HeatmapCell, len(dates))
	for i, d := range dates {
		cell := HeatmapCell{Date: d, TotalHabits: 1}
		if done[d] {
			cell.CompletedCount = 1
			cell.IntensityLevel = MaxIntensity
		}
		cells[i] = cell
	}
	return cells
}

// AllHabitsHeatmap projects several habits onto rng. Each day's level comes
// from the share of habits completed that day, measured against the habits
// that have at least one log inside rng.
func AllHabitsHeatmap(rng calendar.Range, series []HabitSeries) []HeatmapCell {
	completed := make(map[calendar.Date]int)
	withData := 0
	for _, s := range series {
		seen := make(map[calendar.Date]bool)
		hasData := false
		for _, p := range s.Points {
			if !rng.Contains(p.Date) {
				continue
			}
			hasData = true
			if p.Completed && !seen[p.Date] {
				seen[p.Date] = true
				completed[p.Date]++
			}
		}
		if hasData {
			withData++
		}
	}

	dates := rng.Dates()
	cells := make([]HeatmapCell, len(dates))
	for i, d := range dates {
		cell := HeatmapCell{Date: d, CompletedCount: completed[d], TotalHabits: withData}
		if withData > 0 {
			cell.IntensityLevel = IntensityLevel(float64(cell.CompletedCount) * 100 / float64(withData))
		}
		cells[i] = cell
	}
	return cells
}

// JournalHeatmap emits a mood cell for each day in rng that has an entry,
// oldest first. Empty days are left out; renderers draw them blank.
func JournalHeatmap(rng calendar.Range, entries []MoodEntry) []JournalCell {
	byDay := make(map[calendar.Date]Mood)
	for _, e := range entries {
		if !rng.Contains(e.Date) {
			continue
		}
		if _, dup := byDay[e.Date]; dup {
			continue
		}
		byDay[e.Date] = normalizeMood(e.Mood)
	}

	cells := make([]JournalCell, 0, len(byDay))
	for d, m := range byDay {
		cells = append(cells, JournalCell{Date: d, Mood: m, Count: 1})
	}
	sort.Slice(cells, func(i, j int) bool {
		return cells[i].Date.Before(cells[j].Date)
	})
	return cells
}
