// Package recurrence wraps the expander in a single-flight guard so a
// scheduler trigger and a manual trigger can never run concurrently.
package recurrence

import (
	"context"
	"errors"
	"sync/atomic"

	expand "github.com/agendahub/scheduling-service/internal/usecase/expand_recurrences"
)

// ErrRunInProgress is returned when an expansion run is already in flight.
var ErrRunInProgress = errors.New("recurrence run already in progress")

// Expander is the usecase slice the runner drives.
type Expander interface {
	ExpandAll(ctx context.Context, tenantID *int64, horizonDays int) (*expand.ExpandAllResult, error)
}

// Logger is the printf-style logger interface of this package.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

// Runner serializes expansion runs.
type Runner struct {
	expander Expander
	logger   Logger
	running  atomic.Bool
}

// NewRunner creates a single-flight runner over the expander.
func NewRunner(expander Expander, logger Logger) *Runner {
	return &Runner{
		expander: expander,
		logger:   logger,
	}
}

// Run executes one expansion. Concurrent callers get ErrRunInProgress
// instead of a second run.
func (r *Runner) Run(ctx context.Context, tenantID *int64, horizonDays int) (*expand.ExpandAllResult, error) {
	if !r.running.CompareAndSwap(false, true) {
		r.logger.Warn("RecurrenceRunner: run rejected, another run is in flight")
		return nil, ErrRunInProgress
	}
	defer r.running.Store(false)

	r.logger.Info("RecurrenceRunner: starting run (tenant=%v, horizon=%d)", tenantID, horizonDays)
	return r.expander.ExpandAll(ctx, tenantID, horizonDays)
}
