// Package timeutil provides calendar-aware elapsed-time math for the
// scheduling engine. Elapsed days are counted as civil calendar days in a
// time zone, never as naive 24-hour chunks, so DST transitions and midnight
// boundaries are handled correctly.
package timeutil

import "time"

// ElapsedDays returns the number of calendar days between from and to,
// evaluated in to's location. A review late on one civil day followed by a
// review any time on the next civil day counts as one elapsed day, even when
// a DST transition makes the wall-clock gap 23 or 25 hours.
//
// Results are clamped to zero: if from is in the future relative to to
// (clock skew), the elapsed time is 0, never negative.
func ElapsedDays(from, to time.Time) int {
	days := civilDate(to, to.Location()).Sub(civilDate(from, to.Location())).Hours() / 24
	if days < 0 {
		return 0
	}
	return int(days)
}

// SameCalendarDay reports whether a and b fall on the same civil date in
// b's location.
func SameCalendarDay(a, b time.Time) bool {
	return civilDate(a, b.Location()).Equal(civilDate(b, b.Location()))
}

// civilDate maps t to midnight UTC of its civil date in loc. Differences
// between two such values are exact multiples of 24 hours, which makes day
// arithmetic immune to DST offsets.
func civilDate(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
