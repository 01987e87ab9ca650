package schedule

import "errors"

var (
	// ErrWorkingHoursNotFound is returned when the weekday has no schedule row.
	ErrWorkingHoursNotFound = errors.New("schedule.repository: working hours not found")

	// ErrSpecialDateNotFound is returned when the date has no override.
	ErrSpecialDateNotFound = errors.New("schedule.repository: special date not found")

	// ErrBuildQuery is returned when the SQL query could not be built.
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery is returned when the SQL query failed to execute.
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow is returned when a result row could not be scanned.
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)
