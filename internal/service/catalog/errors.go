package catalog

import "errors"

var (
	// ErrInvalidInput is returned on malformed filter parameters.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned on unexpected failures.
	ErrInternal = errors.New("service: internal error")
)
