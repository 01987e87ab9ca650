package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeekdayOf(t *testing.T) {
	// 2026-01-12 is a Monday
	monday := time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)

	for offset, want := range []Weekday{0, 1, 2, 3, 4, 5, 6} {
		date := monday.AddDate(0, 0, offset)
		assert.Equal(t, want, WeekdayOf(date), "offset %d (%s)", offset, date.Weekday())
	}
}

func TestDayWindow_HasBreak(t *testing.T) {
	start := mustTime("12:00")
	end := mustTime("13:00")

	assert.True(t, DayWindow{BreakStart: &start, BreakEnd: &end}.HasBreak())
	assert.False(t, DayWindow{}.HasBreak())
	assert.False(t, DayWindow{BreakStart: &start}.HasBreak())
}
