package process_intent

import (
	"context"
	"time"

	"github.com/agendahub/scheduling-service/internal/domain"
	"github.com/agendahub/scheduling-service/internal/infra/storage/botlog"
	bookingModels "github.com/agendahub/scheduling-service/internal/service/bookings/models"
	createBooking "github.com/agendahub/scheduling-service/internal/usecase/create_booking"
	availability "github.com/agendahub/scheduling-service/internal/usecase/get_available_slots"
)

// CatalogRepository resolves services and professionals by name.
type CatalogRepository interface {
	FindServiceByName(ctx context.Context, tenantID int64, name string) (*domain.Service, error)
	ListActiveServices(ctx context.Context, tenantID int64) ([]*domain.Service, error)
	FindProfessionalByName(ctx context.Context, tenantID int64, name string) (*domain.Professional, error)
	FirstActiveProfessional(ctx context.Context, tenantID int64) (*domain.Professional, error)
}

// BookingLifecycle is the slice of the bookings service the router needs.
type BookingLifecycle interface {
	GetActiveByCode(ctx context.Context, tenantID int64, code string) (*domain.Booking, error)
	Cancel(ctx context.Context, tenantID, bookingID int64, req *bookingModels.CancelBookingRequest) (*bookingModels.BookingResponse, error)
	Confirm(ctx context.Context, tenantID, bookingID int64) (*bookingModels.BookingResponse, error)
}

// ConflictDetector attempts booking creation for the schedule intent.
type ConflictDetector interface {
	Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error)
}

// AvailabilityCalculator answers the query intent.
type AvailabilityCalculator interface {
	Execute(ctx context.Context, req *availability.Request) (*availability.Response, error)
}

// AuditLog records exactly one terminal outcome per invocation.
type AuditLog interface {
	Insert(ctx context.Context, entry botlog.Entry) error
}

// TimeProvider abstracts the clock for tests.
type TimeProvider interface {
	Now() time.Time
}

// Logger is the printf-style logger interface of this package.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the production clock.
type RealTimeProvider struct{}

// Now returns the current time.
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
