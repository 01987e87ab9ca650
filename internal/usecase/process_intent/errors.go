package process_intent

import "errors"

var (
	// ErrInvalidInput is returned on a malformed or unknown intent payload.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned on unexpected failures.
	ErrInternal = errors.New("usecase: internal error")
)

// Error kinds recorded in the audit log so the collaborator can always
// classify the outcome.
const (
	kindValidation    = "validation"
	kindNotFound      = "not_found"
	kindConflict      = "conflict"
	kindPastDate      = "past_date"
	kindAuthorization = "authorization"
	kindInternal      = "internal"
)
