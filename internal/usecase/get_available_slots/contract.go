package get_available_slots

import (
	"context"
	"time"

	"github.com/agendahub/scheduling-service/internal/domain"
)

// BookingRepository reads the bookings that occupy slots.
type BookingRepository interface {
	// GetOverlapping returns the tenant's pending/confirmed bookings
	// intersecting [start, end). A nil professional matches every
	// professional of the tenant.
	GetOverlapping(ctx context.Context, tenantID int64, professionalID *int64, start, end time.Time) ([]*domain.Booking, error)
}

// ScheduleRepository resolves the tenant's calendar for one date.
type ScheduleRepository interface {
	GetWorkingHours(ctx context.Context, tenantID int64, weekday domain.Weekday) (*domain.WorkingHours, error)
	GetSpecialDate(ctx context.Context, tenantID int64, date time.Time) (*domain.SpecialDate, error)
}

// CatalogRepository resolves services and professionals.
type CatalogRepository interface {
	GetServiceByID(ctx context.Context, tenantID, id int64) (*domain.Service, error)
	GetProfessionalByID(ctx context.Context, tenantID, id int64) (*domain.Professional, error)
}

// TenantRepository resolves the per-tenant engine configuration.
type TenantRepository interface {
	GetConfig(ctx context.Context, tenantID int64) (*domain.TenantConfig, error)
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
