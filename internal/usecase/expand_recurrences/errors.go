package expand_recurrences

import "errors"

var (
	// ErrTenantNotFound is returned when the rule's tenant does not exist.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrServiceNotFound is returned when the rule's service does not exist.
	ErrServiceNotFound = errors.New("service not found")

	// ErrInternal is returned on unexpected failures.
	ErrInternal = errors.New("usecase: internal error")
)
