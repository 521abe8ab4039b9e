// internal/pkg/dates/dates.go
package dates

import (
	"fmt"
	"time"
)

// Layout is the wire format for calendar days.
const Layout = "2006-01-02"

// Parse parses a yyyy-mm-dd string into a UTC-midnight time.
func Parse(s string) (time.Time, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// Format renders a day as yyyy-mm-dd.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Day truncates a timestamp to UTC midnight so that two timestamps on the
// same calendar day compare equal.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddDays returns the day n days after t.
func AddDays(t time.Time, n int) time.Time {
	return Day(t).AddDate(0, 0, n)
}

// ValidRange reports whether [start, end] is a usable interval. Zero or
// reversed bounds mean the record is malformed and must be skipped.
func ValidRange(start, end time.Time) bool {
	if start.IsZero() || end.IsZero() {
		return false
	}
	return !Day(end).Before(Day(start))
}

// Covers reports whether day d falls inside [start, end], both inclusive.
// Malformed ranges cover nothing.
func Covers(start, end, d time.Time) bool {
	if !ValidRange(start, end) {
		return false
	}
	day := Day(d)
	return !day.Before(Day(start)) && !day.After(Day(end))
}

// Overlaps reports whether [aFrom, aTo] and [bFrom, bTo] share at least one
// day.
func Overlaps(aFrom, aTo, bFrom, bTo time.Time) bool {
	if !ValidRange(aFrom, aTo) || !ValidRange(bFrom, bTo) {
		return false
	}
	return !Day(aTo).Before(Day(bFrom)) && !Day(bTo).Before(Day(aFrom))
}

// Range returns every day in [from, to] inclusive, in order. An empty slice
// is returned for malformed bounds.
func Range(from, to time.Time) []time.Time {
	if !ValidRange(from, to) {
		return nil
	}
	var days []time.Time
	for d := Day(from); !d.After(Day(to)); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// CountDays returns the number of days in [from, to] inclusive.
func CountDays(from, to time.Time) int {
	if !ValidRange(from, to) {
		return 0
	}
	return int(Day(to).Sub(Day(from))/(24*time.Hour)) + 1
}
