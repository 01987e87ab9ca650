package recurrence

import "errors"

var (
	ErrRuleNotFound = errors.New("recurrence.repository: rule not found")
	ErrBuildQuery   = errors.New("recurrence.repository: failed to build query")
	ErrExecQuery    = errors.New("recurrence.repository: failed to execute query")
	ErrScanRow      = errors.New("recurrence.repository: failed to scan row")
)
