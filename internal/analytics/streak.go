// Package analytics derives streaks, completion rates, mood summaries and
// heatmaps from read-only snapshots of habit logs and journal entries.
//
// Everything here is a pure function of its inputs. "Today" is always passed
// in by the caller; nothing reads the clock.
package analytics

import (
	"sort"

	"daytrack/internal/calendar"
)

// DailyLogPoint is one recorded habit log. Days without a journal entry have
// no point at all, which is different from a point with Completed=false.
type DailyLogPoint struct {
	Date      calendar.Date `json:"date"`
	Completed bool          `json:"completed"`
}

// chronological returns a sorted copy of points, oldest first, with at most
// one point per day. Duplicate days count as completed if any of them is.
func chronological(points []DailyLogPoint) []DailyLogPoint {
	if len(points) == 0 {
		return nil
	}
	sorted := make([]DailyLogPoint, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	out := sorted[:1]
	for _, p := range sorted[1:] {
		last := &out[len(out)-1]
		if p.Date.Equal(last.Date) {
			last.Completed = last.Completed || p.Completed
			continue
		}
		out = append(out, p)
	}
	return out
}

// CurrentStreak counts the run of completed, calendar-adjacent logs ending at
// the most recent log on or before today.
//
// The run is 0 when that log is not completed, and also when it is older than
// yesterday: a missing day breaks continuity the same way a missed one does.
// Yesterday is allowed so the streak survives until today's entry is written.
func CurrentStreak(points []DailyLogPoint, today calendar.Date) int {
	days := chronological(points)
	for len(days) > 0 && days[len(days)-1].Date.After(today) {
		days = days[:len(days)-1]
	}
	if len(days) == 0 {
		return 0
	}
	if today.DaysSince(days[len(days)-1].Date) > 1 {
		return 0
	}

	streak := 0
	for i := len(days) - 1; i >= 0; i-- {
		if !days[i].Completed {
			break
		}
		if i < len(days)-1 && days[i+1].Date.DaysSince(days[i].Date) != 1 {
			break
		}
		streak++
	}
	return streak
}

// LongestStreak returns the longest run of completed logs on consecutive
// calendar days. A gap of one or more days without a log ends the run.
func LongestStreak(points []DailyLogPoint) int {
	days := chronological(points)
	longest, run := 0, 0
	for i, p := range days {
		switch {
		case !p.Completed:
			run = 0
		case i > 0 && p.Date.DaysSince(days[i-1].Date) == 1:
			run++
		default:
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}
