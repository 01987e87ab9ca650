package process_intent

import (
	"context"

	intent "github.com/agendahub/scheduling-service/internal/usecase/process_intent"
)

type ProcessIntentUseCase interface {
	Execute(ctx context.Context, req *intent.Request) (*intent.Response, error)
}

type Logger interface {
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}
