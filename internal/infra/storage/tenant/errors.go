package tenant

import "errors"

var (
	ErrTenantNotFound = errors.New("tenant.repository: tenant not found")
	ErrBuildQuery     = errors.New("tenant.repository: failed to build query")
	ErrExecQuery      = errors.New("tenant.repository: failed to execute query")
	ErrScanRow        = errors.New("tenant.repository: failed to scan row")
)
