package create_booking

import (
	"context"
	"time"

	"github.com/agendahub/scheduling-service/internal/domain"
	availability "github.com/agendahub/scheduling-service/internal/usecase/get_available_slots"
)

// BookingRepository is the transactional storage surface of the detector.
type BookingRepository interface {
	// LockOverlapping locks and returns the tenant's active bookings
	// overlapping [start, end). Must run inside a transaction; the lock is
	// acquired by the same query that evaluates the overlap.
	LockOverlapping(ctx context.Context, tenantID int64, professionalID *int64, start, end time.Time) ([]*domain.Booking, error)
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// ClientRepository resolves the booking's client.
type ClientRepository interface {
	GetByID(ctx context.Context, tenantID, id int64) (*domain.Client, error)
	// GetOrCreate survives concurrent first contact for the same phone.
	GetOrCreate(ctx context.Context, client *domain.Client) (*domain.Client, error)
}

// CatalogRepository resolves services and professionals.
type CatalogRepository interface {
	GetServiceByID(ctx context.Context, tenantID, id int64) (*domain.Service, error)
	GetProfessionalByID(ctx context.Context, tenantID, id int64) (*domain.Professional, error)
}

// AvailabilityCalculator computes alternative slots after a conflict.
type AvailabilityCalculator interface {
	Execute(ctx context.Context, req *availability.Request) (*availability.Response, error)
}

// TransactionManager runs the lock-then-insert sequence atomically.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
