package domain

import (
	"time"

	"github.com/agendahub/scheduling-service/pkg/types"
)

// RecurrenceFrequency enumerates how often a rule fires.
type RecurrenceFrequency string

const (
	FrequencyDaily   RecurrenceFrequency = "daily"
	FrequencyWeekly  RecurrenceFrequency = "weekly"
	FrequencyMonthly RecurrenceFrequency = "monthly"
)

// RecurrenceRule is a template that generates concrete bookings over a
// rolling horizon. Created by staff; deactivated once EndDate passes.
type RecurrenceRule struct {
	ID             int64
	TenantID       int64
	ClientID       int64
	ServiceID      int64
	ProfessionalID *int64

	Frequency RecurrenceFrequency
	// Weekdays is consulted only for weekly rules (0=Monday .. 6=Sunday).
	// An empty set generates nothing.
	Weekdays []Weekday
	// DayOfMonth is consulted only for monthly rules (1-31). Months without
	// that day are skipped entirely, never clamped.
	DayOfMonth int

	StartTime types.TimeString
	StartDate time.Time
	EndDate   *time.Time // nil = open-ended
	Active    bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OccursOn reports whether the rule fires on the given calendar date.
// The date is assumed to already be inside the rule's validity window.
func (r *RecurrenceRule) OccursOn(date time.Time) bool {
	switch r.Frequency {
	case FrequencyDaily:
		return true
	case FrequencyWeekly:
		wd := WeekdayOf(date)
		for _, d := range r.Weekdays {
			if d == wd {
				return true
			}
		}
		return false
	case FrequencyMonthly:
		// Enumeration walks every day of the window, so a month without
		// the requested day (31 in February) naturally yields no match.
		return date.Day() == r.DayOfMonth
	default:
		return false
	}
}

// Expired reports whether the validity window ended before today.
func (r *RecurrenceRule) Expired(today time.Time) bool {
	return r.EndDate != nil && r.EndDate.Before(truncateToDay(today))
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
