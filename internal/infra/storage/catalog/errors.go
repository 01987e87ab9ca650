package catalog

import "errors"

var (
	// ErrServiceNotFound is returned when no service matches the lookup.
	ErrServiceNotFound = errors.New("catalog.repository: service not found")

	// ErrProfessionalNotFound is returned when no professional matches the lookup.
	ErrProfessionalNotFound = errors.New("catalog.repository: professional not found")

	// ErrBuildQuery is returned when the SQL query could not be built.
	ErrBuildQuery = errors.New("catalog.repository: failed to build query")

	// ErrExecQuery is returned when the SQL query failed to execute.
	ErrExecQuery = errors.New("catalog.repository: failed to execute query")

	// ErrScanRow is returned when a result row could not be scanned.
	ErrScanRow = errors.New("catalog.repository: failed to scan row")
)
