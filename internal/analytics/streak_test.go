package analytics

import (
	"testing"

	"daytrack/internal/calendar"
)

var today = calendar.NewDate(2026, 3, 15)

// ago returns the point n days before today.
func ago(n int, completed bool) DailyLogPoint {
	return DailyLogPoint{Date: today.AddDays(-n), Completed: completed}
}

func TestStreaks(t *testing.T) {
	tests := []struct {
		name        string
		points      []DailyLogPoint
		wantCurrent int
		wantLongest int
	}{
		{
			name:        "empty",
			points:      nil,
			wantCurrent: 0,
			wantLongest: 0,
		},
		{
			name:        "run broken by a miss",
			points:      []DailyLogPoint{ago(1, true), ago(2, true), ago(3, false), ago(4, true)},
			wantCurrent: 2,
			wantLongest: 2,
		},
		{
			name:        "missing journal day breaks the run",
			points:      []DailyLogPoint{ago(1, true), ago(3, true)},
			wantCurrent: 1,
			wantLongest: 1,
		},
		{
			name:        "single completed log",
			points:      []DailyLogPoint{ago(10, true)},
			wantCurrent: 0,
			wantLongest: 1,
		},
		{
			name:        "most recent log not completed",
			points:      []DailyLogPoint{ago(0, false), ago(1, true), ago(2, true)},
			wantCurrent: 0,
			wantLongest: 2,
		},
		{
			name:        "lapsed: last log older than yesterday",
			points:      []DailyLogPoint{ago(2, true), ago(3, true), ago(4, true)},
			wantCurrent: 0,
			wantLongest: 3,
		},
		{
			name:        "today counts",
			points:      []DailyLogPoint{ago(0, true), ago(1, true)},
			wantCurrent: 2,
			wantLongest: 2,
		},
		{
			name:        "longest run is in the past",
			points:      []DailyLogPoint{ago(0, true), ago(2, true), ago(3, true), ago(4, true), ago(5, true), ago(6, false)},
			wantCurrent: 1,
			wantLongest: 4,
		},
		{
			name:        "input order does not matter",
			points:      []DailyLogPoint{ago(3, false), ago(1, true), ago(0, true), ago(2, true)},
			wantCurrent: 3,
			wantLongest: 3,
		},
		{
			name:        "future logs are ignored for the current streak",
			points:      []DailyLogPoint{ago(-1, false), ago(0, true), ago(1, true)},
			wantCurrent: 2,
			wantLongest: 2,
		},
		{
			name:        "all not completed",
			points:      []DailyLogPoint{ago(0, false), ago(1, false)},
			wantCurrent: 0,
			wantLongest: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current := CurrentStreak(tt.points, today)
			longest := LongestStreak(tt.points)
			if current != tt.wantCurrent {
				t.Errorf("CurrentStreak() = %d, want %d", current, tt.wantCurrent)
			}
			if longest != tt.wantLongest {
				t.Errorf("LongestStreak() = %d, want %d", longest, tt.wantLongest)
			}
			if current > longest {
				t.Errorf("current streak %d exceeds longest %d", current, longest)
			}
		})
	}
}

func TestContiguousLogGivesEqualStreaks(t *testing.T) {
	for _, n := range []int{1, 7, 30} {
		points := make([]DailyLogPoint, n)
		for i := range points {
			points[i] = ago(i, true)
		}
		if got := CurrentStreak(points, today); got != n {
			t.Errorf("n=%d: CurrentStreak() = %d", n, got)
		}
		if got := LongestStreak(points); got != n {
			t.Errorf("n=%d: LongestStreak() = %d", n, got)
		}
	}
}

func TestDuplicateDaysCollapse(t *testing.T) {
	points := []DailyLogPoint{ago(0, false), ago(0, true), ago(1, true)}
	if got := CurrentStreak(points, today); got != 2 {
		t.Errorf("CurrentStreak() = %d, want 2", got)
	}
	rate, completed, total := CompletionRate(points)
	if total != 2 || completed != 2 || rate != 100 {
		t.Errorf("CompletionRate() = %d (%d/%d), want 100 (2/2)", rate, completed, total)
	}
}

func TestStreakDoesNotMutateInput(t *testing.T) {
	points := []DailyLogPoint{ago(0, true), ago(2, true), ago(1, false)}
	CurrentStreak(points, today)
	LongestStreak(points)
	if !points[1].Date.Equal(today.AddDays(-2)) || points[2].Completed {
		t.Errorf("input slice was reordered or modified: %+v", points)
	}
}
