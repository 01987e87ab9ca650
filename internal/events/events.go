// Package events carries domain events out of the engine. Completing a
// booking notifies the financial collaborator, which records revenue on
// its side.
package events

import "time"

// BookingCompleted is emitted exactly once when a booking transitions to
// the completed status.
type BookingCompleted struct {
	TenantID      int64
	BookingID     int64
	ClientID      int64
	ServiceID     int64
	ChargedAmount *float64
	CompletedAt   time.Time
}

// Emitter delivers domain events to the outside.
type Emitter interface {
	EmitBookingCompleted(event BookingCompleted)
}

// Logger matches the printf-style logger used across the service.
type Logger interface {
	Info(format string, v ...interface{})
}

// LogEmitter writes events to the structured log. Stands in for a message
// broker until the financial collaborator consumes events directly.
type LogEmitter struct {
	logger Logger
}

// NewLogEmitter creates a log-backed emitter.
func NewLogEmitter(logger Logger) *LogEmitter {
	return &LogEmitter{logger: logger}
}

// EmitBookingCompleted logs the event.
func (e *LogEmitter) EmitBookingCompleted(event BookingCompleted) {
	amount := 0.0
	if event.ChargedAmount != nil {
		amount = *event.ChargedAmount
	}
	e.logger.Info("event BookingCompleted: tenant=%d booking=%d client=%d service=%d amount=%.2f completed_at=%s",
		event.TenantID, event.BookingID, event.ClientID, event.ServiceID, amount,
		event.CompletedAt.Format(time.RFC3339))
}
