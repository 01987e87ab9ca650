package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBooking_Overlaps(t *testing.T) {
	day := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	at := func(h, m int) time.Time {
		return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
	}

	booking := &Booking{StartAt: at(10, 0), EndAt: at(11, 0)}

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{name: "identical interval", start: at(10, 0), end: at(11, 0), want: true},
		{name: "fully inside", start: at(10, 15), end: at(10, 45), want: true},
		{name: "covers the booking", start: at(9, 0), end: at(12, 0), want: true},
		{name: "overlaps the start", start: at(9, 30), end: at(10, 30), want: true},
		{name: "overlaps the end", start: at(10, 30), end: at(11, 30), want: true},
		{name: "back to back before", start: at(9, 0), end: at(10, 0), want: false},
		{name: "back to back after", start: at(11, 0), end: at(12, 0), want: false},
		{name: "disjoint earlier", start: at(8, 0), end: at(9, 0), want: false},
		{name: "disjoint later", start: at(12, 0), end: at(13, 0), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, booking.Overlaps(tt.start, tt.end))
		})
	}
}

func TestBooking_IsActive(t *testing.T) {
	tests := []struct {
		status BookingStatus
		want   bool
	}{
		{StatusPending, true},
		{StatusConfirmed, true},
		{StatusCancelled, false},
		{StatusCompleted, false},
		{StatusNoShow, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			b := &Booking{Status: tt.status}
			assert.Equal(t, tt.want, b.IsActive())
		})
	}
}

func TestBooking_Transitions(t *testing.T) {
	pending := &Booking{Status: StatusPending}
	confirmed := &Booking{Status: StatusConfirmed}
	cancelled := &Booking{Status: StatusCancelled}

	assert.True(t, pending.CanBeCancelled())
	assert.True(t, confirmed.CanBeCancelled())
	assert.False(t, cancelled.CanBeCancelled())

	assert.True(t, pending.CanBeConfirmed())
	assert.False(t, confirmed.CanBeConfirmed())
	assert.False(t, cancelled.CanBeConfirmed())
}
