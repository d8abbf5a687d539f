// Package calendar holds the day-granularity primitives shared by storage and
// analytics. Every Date is a UTC calendar day; callers convert wall-clock
// instants with DayOf exactly once per request (see Reference).
package calendar

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Layout is the wire and storage format of a Date.
const Layout = "2006-01-02"

// ErrInvalidRange is returned when a range ends before it starts.
var ErrInvalidRange = errors.New("invalid range: end date is before start date")

// Date is a calendar day in UTC. The zero value is "no date".
type Date struct {
	t time.Time
}

// DayOf returns the UTC calendar day containing t.
func DayOf(t time.Time) Date {
	u := t.UTC()
	return Date{t: time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)}
}

// NewDate builds a Date from its parts.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Parse reads a YYYY-MM-DD string.
func Parse(s string) (Date, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q; expected YYYY-MM-DD", s)
	}
	return Date{t: t}, nil
}

// Time returns the start of the day (00:00 UTC).
func (d Date) Time() time.Time { return d.t }

func (d Date) IsZero() bool { return d.t.IsZero() }

func (d Date) String() string {
	if d.t.IsZero() {
		return ""
	}
	return d.t.Format(Layout)
}

// AddDays moves the date by n calendar days (n may be negative).
func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }

func (d Date) Before(o Date) bool { return d.t.Before(o.t) }
func (d Date) After(o Date) bool  { return d.t.After(o.t) }
func (d Date) Equal(o Date) bool  { return d.t.Equal(o.t) }

// DaysSince returns the number of calendar days from o to d.
func (d Date) DaysSince(o Date) int {
	return int(d.t.Sub(o.t).Hours() / 24)
}

// Value stores the date as a YYYY-MM-DD string so both postgres DATE columns
// and sqlite text columns compare it correctly.
func (d Date) Value() (driver.Value, error) {
	if d.t.IsZero() {
		return nil, nil
	}
	return d.t.Format(Layout), nil
}

// Scan accepts the shapes drivers hand back for a DATE column.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		// Drivers return DATE columns at midnight in the session zone;
		// the wall-clock fields carry the calendar day.
		*d = NewDate(v.Year(), v.Month(), v.Day())
		return nil
	case string:
		return d.scanText(v)
	case []byte:
		return d.scanText(string(v))
	default:
		return fmt.Errorf("calendar: cannot scan %T into Date", src)
	}
}

func (d *Date) scanText(s string) error {
	if len(s) < len(Layout) {
		return fmt.Errorf("calendar: cannot scan %q into Date", s)
	}
	parsed, err := Parse(s[:len(Layout)])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Range is an inclusive span of calendar days.
type Range struct {
	Start Date
	End   Date
}

// NewRange validates that end is not before start.
func NewRange(start, end Date) (Range, error) {
	if end.Before(start) {
		return Range{}, ErrInvalidRange
	}
	return Range{Start: start, End: end}, nil
}

// Trailing returns the days-long range ending at end (inclusive).
// Non-positive lengths collapse to the single day end.
func Trailing(end Date, days int) Range {
	if days < 1 {
		days = 1
	}
	return Range{Start: end.AddDays(-(days - 1)), End: end}
}

// Days is the number of calendar days in the range, both endpoints included.
func (r Range) Days() int {
	return r.End.DaysSince(r.Start) + 1
}

func (r Range) Contains(d Date) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

// Dates lists every day in the range in ascending order.
func (r Range) Dates() []Date {
	n := r.Days()
	if n <= 0 {
		return []Date{}
	}
	out := make([]Date, 0, n)
	for d := r.Start; !d.After(r.End); d = d.AddDays(1) {
		out = append(out, d)
	}
	return out
}

// Reference pins "today" for one request. It is computed once and passed to
// every sub-computation so a request that straddles midnight stays on one day.
type Reference struct {
	Today Date
}

func NewReference(now time.Time) Reference {
	return Reference{Today: DayOf(now)}
}

// StartOfDay is 00:00 UTC of the reference day.
func (r Reference) StartOfDay() time.Time { return r.Today.Time() }

// EndOfDay is the exclusive upper bound of the reference day.
func (r Reference) EndOfDay() time.Time { return r.Today.AddDays(1).Time() }

// Window returns the trailing range of the given length ending today.
func (r Reference) Window(days int) Range {
	return Trailing(r.Today, days)
}
