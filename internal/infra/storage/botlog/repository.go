// Package botlog records every bot command the engine processed, for
// support and auditing. One row per invocation, always a terminal outcome.
package botlog

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/agendahub/scheduling-service/pkg/dbmetrics"
	"github.com/agendahub/scheduling-service/pkg/psqlbuilder"
)

// Entry statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Entry is one processed bot command.
type Entry struct {
	RequestID       string
	TenantID        int64
	Phone           string
	Intent          string
	Status          string // success | error
	ResponseMessage string
	ErrorDetails    *string
	BookingID       *int64
}

// Repository appends bot message log entries.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository creates a botlog repository over db.
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Insert writes one entry. A missing request id gets a generated one so the
// row is always traceable.
func (r *Repository) Insert(ctx context.Context, entry Entry) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if entry.RequestID == "" {
		entry.RequestID = uuid.NewString()
	}

	query, args, err := psqlbuilder.Insert("bot_message_logs").
		Columns("request_id", "tenant_id", "phone", "intent", "status", "response_message", "error_details", "booking_id").
		Values(entry.RequestID, entry.TenantID, entry.Phone, entry.Intent, entry.Status, entry.ResponseMessage, entry.ErrorDetails, entry.BookingID).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Insert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Insert - execute query: %v", ErrExecQuery, err)
	}
	return nil
}
