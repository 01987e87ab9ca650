package create_booking

import (
	"errors"
	"time"
)

var (
	// ErrClientNotFound is returned when a pre-resolved client id does not exist.
	ErrClientNotFound = errors.New("client not found")

	// ErrServiceNotFound is returned when the service does not exist or is inactive.
	ErrServiceNotFound = errors.New("service not found")

	// ErrProfessionalNotFound is returned when the professional does not exist or is inactive.
	ErrProfessionalNotFound = errors.New("professional not found")

	// ErrPastDate is returned when the start instant has already elapsed.
	ErrPastDate = errors.New("start is in the past")

	// ErrSlotConflict is returned when the requested interval overlaps an
	// active booking. Surfaced to callers as a ConflictError carrying
	// alternative slots.
	ErrSlotConflict = errors.New("slot is not available")

	// ErrInvalidInput is returned on malformed request data.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned on unexpected failures.
	ErrInternal = errors.New("usecase: internal error")
)

// ConflictError reports an occupied slot together with bookable
// alternatives for the same date, professional and duration.
type ConflictError struct {
	Alternatives []time.Time
}

// Error implements error.
func (e *ConflictError) Error() string {
	return ErrSlotConflict.Error()
}

// Unwrap lets errors.Is(err, ErrSlotConflict) match.
func (e *ConflictError) Unwrap() error {
	return ErrSlotConflict
}
