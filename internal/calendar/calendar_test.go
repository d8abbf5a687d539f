package calendar

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestDayOf(t *testing.T) {
	est := time.FixedZone("EST", -5*3600)
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"utc midday", time.Date(2026, 3, 10, 12, 30, 0, 0, time.UTC), "2026-03-10"},
		{"utc last nanosecond", time.Date(2026, 3, 10, 23, 59, 59, 999999999, time.UTC), "2026-03-10"},
		{"offset zone crosses midnight", time.Date(2026, 3, 10, 21, 0, 0, 0, est), "2026-03-11"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DayOf(tt.in).String(); got != tt.want {
				t.Errorf("DayOf() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestNewRange(t *testing.T) {
	start := NewDate(2026, 1, 10)
	if _, err := NewRange(start, start.AddDays(-1)); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
	r, err := NewRange(start, start)
	if err != nil {
		t.Fatalf("single-day range: %v", err)
	}
	if r.Days() != 1 {
		t.Errorf("Days() = %d, want 1", r.Days())
	}
}

func TestRangeDatesInclusive(t *testing.T) {
	r := Range{Start: NewDate(2026, 2, 27), End: NewDate(2026, 3, 2)}
	dates := r.Dates()
	if len(dates) != r.Days() || len(dates) != 4 {
		t.Fatalf("expected 4 dates, got %d (Days()=%d)", len(dates), r.Days())
	}
	want := []string{"2026-02-27", "2026-02-28", "2026-03-01", "2026-03-02"}
	for i, d := range dates {
		if d.String() != want[i] {
			t.Errorf("dates[%d] = %s, want %s", i, d, want[i])
		}
	}
	if !r.Contains(NewDate(2026, 3, 1)) || r.Contains(NewDate(2026, 3, 3)) {
		t.Errorf("Contains() boundary mismatch")
	}
}

func TestTrailing(t *testing.T) {
	end := NewDate(2026, 1, 30)
	r := Trailing(end, 30)
	if r.Start.String() != "2026-01-01" || r.Days() != 30 {
		t.Errorf("Trailing(30) = %s..%s (%d days)", r.Start, r.End, r.Days())
	}
	if Trailing(end, 0).Days() != 1 {
		t.Errorf("non-positive window should collapse to one day")
	}
}

func TestReferenceBoundaries(t *testing.T) {
	ref := NewReference(time.Date(2026, 5, 4, 23, 59, 0, 0, time.UTC))
	if got := ref.EndOfDay().Sub(ref.StartOfDay()); got != 24*time.Hour {
		t.Errorf("day length = %v, want 24h", got)
	}
	if ref.Window(365).Days() != 365 {
		t.Errorf("Window(365) should span 365 days")
	}
}

func TestDateScan(t *testing.T) {
	tests := []struct {
		name string
		src  any
		want string
	}{
		{"time", time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), "2026-07-01"},
		{"plain string", "2026-07-01", "2026-07-01"},
		{"timestamp string", "2026-07-01 00:00:00 +0000 UTC", "2026-07-01"},
		{"bytes", []byte("2026-07-01T00:00:00Z"), "2026-07-01"},
		{"nil", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			if err := d.Scan(tt.src); err != nil {
				t.Fatalf("Scan() error = %v", err)
			}
			if d.String() != tt.want {
				t.Errorf("Scan() = %q, want %q", d.String(), tt.want)
			}
		})
	}

	var d Date
	if err := d.Scan(42); err == nil {
		t.Error("expected error scanning int")
	}
}

func TestDateJSON(t *testing.T) {
	type payload struct {
		Day Date `json:"day"`
	}
	b, err := json.Marshal(payload{Day: NewDate(2026, 12, 31)})
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"day":"2026-12-31"}` {
		t.Errorf("Marshal = %s", b)
	}
	var p payload
	if err := json.Unmarshal([]byte(`{"day":"2026-01-05"}`), &p); err != nil {
		t.Fatal(err)
	}
	if !p.Day.Equal(NewDate(2026, 1, 5)) {
		t.Errorf("Unmarshal = %s", p.Day)
	}
	if err := json.Unmarshal([]byte(`{"day":"01/05/2026"}`), &p); err == nil {
		t.Error("expected error for malformed date")
	}
}
