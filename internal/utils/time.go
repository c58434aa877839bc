package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitual/internal/constants"
)

// DayKey returns the UTC calendar day of t as a YYYY-MM-DD string.
// All day grouping in the application goes through this function so that
// streak boundaries do not shift with the caller's local timezone.
func DayKey(t time.Time) string {
	return t.UTC().Format(constants.DateFormat)
}

// StartOfDay returns midnight UTC of the calendar day containing t.
func StartOfDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// EndOfDay returns the last representable second of t's UTC calendar day.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).Add(constants.Day - time.Second)
}

// ParseDay parses a YYYY-MM-DD string as midnight UTC.
func ParseDay(day string) (time.Time, error) {
	t, err := time.ParseInLocation(constants.DateFormat, day, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", day, err)
	}
	return t, nil
}

// AddDays shifts a day key by n calendar days.
func AddDays(day string, n int) (string, error) {
	t, err := ParseDay(day)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, n).Format(constants.DateFormat), nil
}

// DaysBetween returns the whole number of calendar days from a to b,
// comparing UTC dates only. It is negative when b precedes a.
func DaysBetween(a, b time.Time) int {
	return int(StartOfDay(b).Sub(StartOfDay(a)) / constants.Day)
}

// ParseTimestamp accepts either an RFC3339 instant or a bare YYYY-MM-DD day
// (interpreted as midnight UTC).
func ParseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := ParseDay(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q (expected RFC3339 or YYYY-MM-DD)", s)
	}
	return t, nil
}
