package domain

import (
	"time"

	"github.com/agendahub/scheduling-service/pkg/types"
)

// Weekday follows the 0=Monday .. 6=Sunday convention used across the
// schema and the bot payloads.
type Weekday int

// WeekdayOf converts a calendar date to the 0=Monday convention.
func WeekdayOf(date time.Time) Weekday {
	return Weekday((int(date.Weekday()) + 6) % 7)
}

// WorkingHours defines the tenant's opening window for one weekday.
// One row per (tenant, weekday). Read-only from the engine's perspective.
type WorkingHours struct {
	ID       int64
	TenantID int64
	Weekday  Weekday
	OpenTime  types.TimeString
	CloseTime types.TimeString
	// Optional mid-day break (lunch). Both set or both nil.
	BreakStart *types.TimeString
	BreakEnd   *types.TimeString
	Active     bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SpecialDateType distinguishes full closures from modified hours.
type SpecialDateType string

const (
	SpecialDateHoliday      SpecialDateType = "holiday"
	SpecialDateSpecialHours SpecialDateType = "special_hours"
)

// SpecialDate overrides the weekday schedule for a single calendar date.
// A holiday closes the whole day; special_hours replaces open/close but
// keeps the weekday's break.
type SpecialDate struct {
	ID          int64
	TenantID    int64
	Date        time.Time
	Type        SpecialDateType
	Description string
	// Required when Type == special_hours, nil otherwise.
	OpenTime  *types.TimeString
	CloseTime *types.TimeString

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DayWindow is the effective bookable window of a specific date after
// working hours and special dates are resolved.
type DayWindow struct {
	Open       types.TimeString
	Close      types.TimeString
	BreakStart *types.TimeString
	BreakEnd   *types.TimeString
}

// HasBreak reports whether the window carries a mid-day break.
func (w DayWindow) HasBreak() bool {
	return w.BreakStart != nil && w.BreakEnd != nil
}

// Machine-readable closed reasons returned by the availability calculator.
const (
	ReasonClosed        = "closed"
	ReasonClosedHoliday = "closed_holiday"
	ReasonClosedSpecial = "closed_special"
)
