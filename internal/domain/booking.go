package domain

import (
	"time"
)

// BookingStatus represents the lifecycle state of a booking.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
	StatusNoShow    BookingStatus = "no_show"
)

// Booking represents a scheduled appointment of a client with a professional.
// Start/End are absolute instants; End is always strictly after Start.
type Booking struct {
	ID             int64
	TenantID       int64
	ClientID       int64
	ServiceID      int64
	ProfessionalID *int64 // nil when the tenant does not assign professionals

	// Code is the short chat-friendly identifier clients use to confirm or
	// cancel. Unique per tenant.
	Code string

	StartAt time.Time
	EndAt   time.Time
	Status  BookingStatus

	ChargedAmount    *float64
	Notes            *string
	RecurrenceRuleID *int64 // set when generated by a recurrence rule

	// Denormalized for history and chat display
	ServiceName      string
	ProfessionalName *string
	ClientName       string
	ClientPhone      string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive reports whether the booking still occupies its time slot.
// Only pending and confirmed bookings block other bookings.
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeCancelled reports whether a cancellation is a valid transition.
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeConfirmed reports whether a confirmation is a valid transition.
func (b *Booking) CanBeConfirmed() bool {
	return b.Status == StatusPending
}

// Overlaps applies the half-open interval predicate: [b.Start, b.End) and
// [start, end) overlap iff b.Start < end && b.End > start. Back-to-back
// bookings (b.End == start) do NOT overlap.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.StartAt.Before(end) && b.EndAt.After(start)
}

// TenantBookingsFilter narrows tenant-wide booking queries.
type TenantBookingsFilter struct {
	TenantID        int64 // required, always the leading filter
	ProfessionalID  *int64
	ClientID        *int64
	StartDate       *time.Time     // period start (inclusive)
	EndDate         *time.Time     // period end (inclusive)
	Status          *BookingStatus
	IncludeInactive bool // include cancelled / completed / no-show rows
}
