package recurrence

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	expand "github.com/agendahub/scheduling-service/internal/usecase/expand_recurrences"
)

type blockingExpander struct {
	started chan struct{}
	release chan struct{}
	calls   int
}

func (e *blockingExpander) ExpandAll(_ context.Context, _ *int64, _ int) (*expand.ExpandAllResult, error) {
	e.calls++
	close(e.started)
	<-e.release
	return &expand.ExpandAllResult{Created: 1}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{}) {}

func TestRunner_SingleFlight(t *testing.T) {
	expander := &blockingExpander{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	runner := NewRunner(expander, nopLogger{})

	var wg sync.WaitGroup
	wg.Add(1)
	var firstResult *expand.ExpandAllResult
	var firstErr error
	go func() {
		defer wg.Done()
		firstResult, firstErr = runner.Run(context.Background(), nil, 0)
	}()

	<-expander.started

	// Second caller is rejected while the first run is in flight
	_, err := runner.Run(context.Background(), nil, 0)
	assert.ErrorIs(t, err, ErrRunInProgress)

	close(expander.release)
	wg.Wait()

	require.NoError(t, firstErr)
	assert.Equal(t, 1, firstResult.Created)
	assert.Equal(t, 1, expander.calls)
}

func TestRunner_RunsAgainAfterCompletion(t *testing.T) {
	expander := &blockingExpander{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	close(expander.release) // never block

	runner := NewRunner(expander, nopLogger{})

	_, err := runner.Run(context.Background(), nil, 0)
	require.NoError(t, err)

	expander.started = make(chan struct{})
	_, err = runner.Run(context.Background(), nil, 0)
	require.NoError(t, err)

	assert.Equal(t, 2, expander.calls)
}
