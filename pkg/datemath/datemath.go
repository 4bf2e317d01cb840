// Package datemath provides calendar-day arithmetic for the review and
// endorsement date rules. All comparisons work on whole dates; the time
// of day and time zone of the inputs are ignored.
package datemath

import "time"

// Day truncates t to its calendar date (midnight UTC).
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	return Day(a).Equal(Day(b))
}

// DaysBetween returns the number of whole days from older to newer.
// Negative if newer falls before older.
func DaysBetween(older, newer time.Time) int {
	return int(Day(newer).Sub(Day(older)).Hours() / 24)
}

// WithinDays reports whether newer falls on or after older and no more
// than the given number of days later.
func WithinDays(older, newer time.Time, days int) bool {
	diff := DaysBetween(older, newer)
	return diff >= 0 && diff <= days
}
