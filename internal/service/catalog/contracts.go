package catalog

import (
	"context"
	"time"

	"github.com/agendahub/scheduling-service/internal/domain"
)

// CatalogRepository lists the tenant's bookable offerings and staff.
type CatalogRepository interface {
	ListActiveServices(ctx context.Context, tenantID int64) ([]*domain.Service, error)
	ListActiveProfessionals(ctx context.Context, tenantID int64) ([]*domain.Professional, error)
}

// ScheduleRepository lists the tenant's calendar configuration.
type ScheduleRepository interface {
	ListWorkingHours(ctx context.Context, tenantID int64) ([]*domain.WorkingHours, error)
	ListSpecialDates(ctx context.Context, tenantID int64, from, to *time.Time) ([]*domain.SpecialDate, error)
}

// Logger is the printf-style logger interface of this package.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
