package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMonth(t *testing.T) {
	m, err := ParseMonth("2025-04")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), m)

	for _, bad := range []string{"2025-4", "2025/04", "April 2025", "2025-13", ""} {
		_, err := ParseMonth(bad)
		assert.Error(t, err, bad)
	}
}

func TestMonthStart(t *testing.T) {
	d := time.Date(2025, 4, 20, 13, 45, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), MonthStart(d))
}

func TestAddMonths(t *testing.T) {
	// Shifting from a month-end date must not overflow into the month
	// after next.
	jan31 := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), AddMonths(jan31, 1))
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), AddMonths(jan31, 2))

	dec := time.Date(2024, 12, 5, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), AddMonths(dec, 1))
	assert.Equal(t, time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC), AddMonths(dec, -1))
}

func TestLastDayAndClampDay(t *testing.T) {
	feb25 := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	feb24 := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	apr := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 28, LastDay(feb25))
	assert.Equal(t, 29, LastDay(feb24))
	assert.Equal(t, 30, LastDay(apr))

	assert.Equal(t, 28, ClampDay(feb25, 31))
	assert.Equal(t, 29, ClampDay(feb24, 31))
	assert.Equal(t, 10, ClampDay(feb25, 10))
}

func TestSameMonth(t *testing.T) {
	a := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	b := time.Date(2025, 4, 30, 23, 59, 0, 0, time.UTC)
	c := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	assert.True(t, SameMonth(a, b))
	assert.False(t, SameMonth(a, c))
}
