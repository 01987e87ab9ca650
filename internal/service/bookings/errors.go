package bookings

import "errors"

var (
	// ErrBookingNotFound is returned when the booking does not exist for the tenant.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied is returned when the caller's phone does not match the
	// booking's client phone.
	ErrAccessDenied = errors.New("access denied")

	// ErrCannotCancel is returned when the booking is not in a cancellable status.
	ErrCannotCancel = errors.New("booking cannot be cancelled")

	// ErrCannotConfirm is returned when the booking is not pending.
	ErrCannotConfirm = errors.New("booking cannot be confirmed")

	// ErrInvalidStatus is returned on an unknown or disallowed target status.
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidInput is returned on malformed request data.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned on unexpected failures.
	ErrInternal = errors.New("service: internal error")
)
