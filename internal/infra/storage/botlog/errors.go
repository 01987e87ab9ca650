package botlog

import "errors"

var (
	ErrBuildQuery = errors.New("botlog.repository: failed to build query")
	ErrExecQuery  = errors.New("botlog.repository: failed to execute query")
)
