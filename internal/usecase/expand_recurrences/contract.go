package expand_recurrences

import (
	"context"
	"time"

	"github.com/agendahub/scheduling-service/internal/domain"
	createBooking "github.com/agendahub/scheduling-service/internal/usecase/create_booking"
)

// RecurrenceRepository stores the rules being expanded.
type RecurrenceRepository interface {
	ListAllActive(ctx context.Context) ([]*domain.RecurrenceRule, error)
	ListActive(ctx context.Context, tenantID int64) ([]*domain.RecurrenceRule, error)
	Deactivate(ctx context.Context, tenantID, id int64) error
}

// BookingRepository provides the idempotence guard for re-runs.
type BookingRepository interface {
	ExistsExact(ctx context.Context, tenantID, clientID int64, professionalID *int64, serviceID int64, start time.Time) (bool, error)
}

// CatalogRepository resolves the rule's service for its duration.
type CatalogRepository interface {
	GetServiceByID(ctx context.Context, tenantID, id int64) (*domain.Service, error)
}

// TenantRepository resolves the rule's tenant and horizon configuration.
type TenantRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Tenant, error)
	GetConfig(ctx context.Context, tenantID int64) (*domain.TenantConfig, error)
}

// ConflictDetector creates the concrete bookings; its overlap guard is the
// second line of defense after the exact-match check.
type ConflictDetector interface {
	Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error)
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
