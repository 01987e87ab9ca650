package bookings

import (
	"context"
	"time"

	"github.com/agendahub/scheduling-service/internal/domain"
	"github.com/agendahub/scheduling-service/internal/events"
)

// BookingRepository is the storage surface the lifecycle service needs.
type BookingRepository interface {
	GetByID(ctx context.Context, tenantID, id int64) (*domain.Booking, error)
	GetByCode(ctx context.Context, tenantID int64, code string, statuses []domain.BookingStatus) (*domain.Booking, error)
	GetWithFilter(ctx context.Context, filter domain.TenantBookingsFilter) ([]*domain.Booking, error)
	CountActiveInPeriod(ctx context.Context, tenantID int64, from, to time.Time) (int, error)
	UpdateStatus(ctx context.Context, tenantID, id int64, status domain.BookingStatus) error
	Complete(ctx context.Context, tenantID, id int64, status domain.BookingStatus, chargedAmount *float64) error
}

// EventEmitter delivers domain events on terminal transitions.
type EventEmitter interface {
	EmitBookingCompleted(event events.BookingCompleted)
}

// Logger is the printf-style logger interface of this package.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
