package expand_recurrences

import (
	"context"

	expand "github.com/agendahub/scheduling-service/internal/usecase/expand_recurrences"
)

type RecurrenceRunner interface {
	Run(ctx context.Context, tenantID *int64, horizonDays int) (*expand.ExpandAllResult, error)
}

type Logger interface {
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}
