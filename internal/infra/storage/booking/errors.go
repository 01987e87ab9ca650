package booking

import "errors"

var (
	// ErrBookingNotFound is returned when no booking matches the lookup.
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrDuplicateCode is returned when the generated code already exists
	// for the tenant.
	ErrDuplicateCode = errors.New("booking.repository: duplicate booking code")

	// ErrLockNotAvailable is returned when the row lock could not be
	// acquired within the storage engine's lock-wait bound, or the
	// serializable transaction was aborted. Callers may retry once.
	ErrLockNotAvailable = errors.New("booking.repository: lock not available")

	// ErrBuildQuery is returned when the SQL query could not be built.
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery is returned when the SQL query failed to execute.
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow is returned when a result row could not be scanned.
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
