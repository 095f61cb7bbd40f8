package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestElapsedDays(t *testing.T) {
	t.Parallel()

	utc := time.UTC

	testCases := []struct {
		name     string
		from     time.Time
		to       time.Time
		expected int
	}{
		{
			name:     "same instant",
			from:     time.Date(2025, 6, 1, 12, 0, 0, 0, utc),
			to:       time.Date(2025, 6, 1, 12, 0, 0, 0, utc),
			expected: 0,
		},
		{
			name:     "same calendar day hours apart",
			from:     time.Date(2025, 6, 1, 1, 0, 0, 0, utc),
			to:       time.Date(2025, 6, 1, 23, 59, 0, 0, utc),
			expected: 0,
		},
		{
			name:     "midnight boundary counts as one day",
			from:     time.Date(2025, 6, 1, 23, 59, 0, 0, utc),
			to:       time.Date(2025, 6, 2, 0, 1, 0, 0, utc),
			expected: 1,
		},
		{
			name:     "exactly five days",
			from:     time.Date(2025, 6, 1, 9, 0, 0, 0, utc),
			to:       time.Date(2025, 6, 6, 9, 0, 0, 0, utc),
			expected: 5,
		},
		{
			name:     "clock skew clamps to zero",
			from:     time.Date(2025, 6, 6, 9, 0, 0, 0, utc),
			to:       time.Date(2025, 6, 1, 9, 0, 0, 0, utc),
			expected: 0,
		},
		{
			name:     "month boundary",
			from:     time.Date(2025, 1, 31, 22, 0, 0, 0, utc),
			to:       time.Date(2025, 2, 1, 2, 0, 0, 0, utc),
			expected: 1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ElapsedDays(tc.from, tc.to)
			if got != tc.expected {
				t.Errorf("ElapsedDays(%v, %v) = %d, want %d", tc.from, tc.to, got, tc.expected)
			}
		})
	}
}

func TestElapsedDaysSpringForward(t *testing.T) {
	t.Parallel()

	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err, "Failed to load location")

	// US DST spring-forward: 2025-03-09, clocks jump 02:00 -> 03:00.
	// 23:00 on March 8 to 23:00 on March 9 is only 23 wall-clock hours,
	// but it is exactly one calendar day.
	before := time.Date(2025, 3, 8, 23, 0, 0, 0, loc)
	after := time.Date(2025, 3, 9, 23, 0, 0, 0, loc)

	require.Less(t, after.Sub(before).Hours(), 24.0, "expected a short DST day")
	require.Equal(t, 1, ElapsedDays(before, after))
}

func TestElapsedDaysFallBack(t *testing.T) {
	t.Parallel()

	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err, "Failed to load location")

	// US DST fall-back: 2025-11-02, clocks repeat 01:00-02:00.
	// The 25-hour wall-clock day is still one calendar day.
	before := time.Date(2025, 11, 1, 23, 0, 0, 0, loc)
	after := time.Date(2025, 11, 2, 23, 0, 0, 0, loc)

	require.Greater(t, after.Sub(before).Hours(), 24.0, "expected a long DST day")
	require.Equal(t, 1, ElapsedDays(before, after))
}

func TestSameCalendarDay(t *testing.T) {
	t.Parallel()

	utc := time.UTC
	a := time.Date(2025, 6, 1, 0, 30, 0, 0, utc)
	b := time.Date(2025, 6, 1, 23, 30, 0, 0, utc)
	c := time.Date(2025, 6, 2, 0, 30, 0, 0, utc)

	if !SameCalendarDay(a, b) {
		t.Error("expected a and b on the same calendar day")
	}
	if SameCalendarDay(a, c) {
		t.Error("expected a and c on different calendar days")
	}
}
