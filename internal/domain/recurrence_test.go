package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/agendahub/scheduling-service/pkg/types"
)

func mustTime(s string) types.TimeString {
	ts, err := types.NewTimeStringFromString(s)
	if err != nil {
		panic(err)
	}
	return ts
}

func TestRecurrenceRule_OccursOn(t *testing.T) {
	date := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name string
		rule RecurrenceRule
		date time.Time
		want bool
	}{
		{
			name: "daily fires every day",
			rule: RecurrenceRule{Frequency: FrequencyDaily},
			date: date(2026, 2, 3),
			want: true,
		},
		{
			name: "weekly matches listed weekday",
			rule: RecurrenceRule{Frequency: FrequencyWeekly, Weekdays: []Weekday{0, 2}},
			// 2026-02-04 is a Wednesday (weekday 2)
			date: date(2026, 2, 4),
			want: true,
		},
		{
			name: "weekly skips other weekdays",
			rule: RecurrenceRule{Frequency: FrequencyWeekly, Weekdays: []Weekday{0, 2}},
			// 2026-02-05 is a Thursday
			date: date(2026, 2, 5),
			want: false,
		},
		{
			name: "weekly with no weekdays never fires",
			rule: RecurrenceRule{Frequency: FrequencyWeekly},
			date: date(2026, 2, 2),
			want: false,
		},
		{
			name: "monthly matches the day of month",
			rule: RecurrenceRule{Frequency: FrequencyMonthly, DayOfMonth: 15},
			date: date(2026, 3, 15),
			want: true,
		},
		{
			name: "monthly skips other days",
			rule: RecurrenceRule{Frequency: FrequencyMonthly, DayOfMonth: 15},
			date: date(2026, 3, 14),
			want: false,
		},
		{
			name: "monthly day 31 never fires in february",
			rule: RecurrenceRule{Frequency: FrequencyMonthly, DayOfMonth: 31},
			// enumerating all of February 2026 finds no day 31
			date: date(2026, 2, 28),
			want: false,
		},
		{
			name: "unknown frequency never fires",
			rule: RecurrenceRule{Frequency: RecurrenceFrequency("yearly")},
			date: date(2026, 2, 2),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rule.OccursOn(tt.date))
		})
	}
}

func TestRecurrenceRule_Expired(t *testing.T) {
	today := time.Date(2026, 6, 10, 15, 30, 0, 0, time.UTC)
	yesterday := time.Date(2026, 6, 9, 0, 0, 0, 0, time.UTC)
	sameDay := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)

	openEnded := RecurrenceRule{}
	assert.False(t, openEnded.Expired(today))

	past := RecurrenceRule{EndDate: &yesterday}
	assert.True(t, past.Expired(today))

	// A rule ending today is still valid for today
	endsToday := RecurrenceRule{EndDate: &sameDay}
	assert.False(t, endsToday.Expired(today))
}
