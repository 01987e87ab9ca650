package get_available_slots

import "errors"

var (
	// ErrServiceNotFound is returned when the service does not exist or is inactive.
	ErrServiceNotFound = errors.New("service not found")

	// ErrProfessionalNotFound is returned when the professional does not exist or is inactive.
	ErrProfessionalNotFound = errors.New("professional not found")

	// ErrDateTooFarInFuture is returned when the date exceeds the tenant's horizon.
	ErrDateTooFarInFuture = errors.New("date is too far in the future")

	// ErrInvalidInput is returned on malformed request data.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned on unexpected failures.
	ErrInternal = errors.New("usecase: internal error")
)
