package analytics

import (
	"math"

	"daytrack/internal/calendar"
)

// HabitStats is the per-habit summary over a lookback window.
type HabitStats struct {
	CurrentStreak  int `json:"current_streak"`
	LongestStreak  int `json:"longest_streak"`
	CompletionRate int `json:"completion_rate"`
	TotalDays      int `json:"total_days"`
	CompletedDays  int `json:"completed_days"`
}

// Percent returns part/total as a rounded integer percentage, 0 when total is 0.
func Percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) * 100 / float64(total)))
}

// CompletionRate is the share of recorded days that were completed. Days with
// no log do not count towards the total.
func CompletionRate(points []DailyLogPoint) (rate, completed, total int) {
	days := chronological(points)
	for _, p := range days {
		if p.Completed {
			completed++
		}
	}
	total = len(days)
	return Percent(completed, total), completed, total
}

// ComputeHabitStats derives every HabitStats field from one habit's logs.
// Callers are expected to have bounded points to their lookback window.
func ComputeHabitStats(points []DailyLogPoint, today calendar.Date) HabitStats {
	rate, completed, total := CompletionRate(points)
	return HabitStats{
		CurrentStreak:  CurrentStreak(points, today),
		LongestStreak:  LongestStreak(points),
		CompletionRate: rate,
		TotalDays:      total,
		CompletedDays:  completed,
	}
}

// InRange keeps the points that fall inside rng, newest first.
func InRange(points []DailyLogPoint, rng calendar.Range) []DailyLogPoint {
	days := chronological(points)
	out := make([]DailyLogPoint, 0, len(days))
	for i := len(days) - 1; i >= 0; i-- {
		if rng.Contains(days[i].Date) {
			out = append(out, days[i])
		}
	}
	return out
}
