package utils

import (
	"fmt"
	"time"
)

// ParseMonth parses a YYYY-MM string into the first day of that month (UTC).
func ParseMonth(s string) (time.Time, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q, expected YYYY-MM format", s)
	}
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC), nil
}

// FormatMonth renders a month key as YYYY-MM.
func FormatMonth(t time.Time) string {
	return t.Format("2006-01")
}

// MonthStart truncates a date to the first day of its month (UTC).
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// AddMonths shifts a month key by n months. It operates on the first day
// of the month, so there is no day-of-month normalization overflow.
func AddMonths(t time.Time, n int) time.Time {
	return MonthStart(t).AddDate(0, n, 0)
}

// LastDay returns the number of days in the month containing t.
func LastDay(t time.Time) int {
	first := MonthStart(t)
	return first.AddDate(0, 1, -1).Day()
}

// ClampDay limits a day-of-month to the last valid day of the month
// containing t.
func ClampDay(t time.Time, day int) int {
	if last := LastDay(t); day > last {
		return last
	}
	return day
}

// SameMonth reports whether two dates fall in the same calendar month.
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}
