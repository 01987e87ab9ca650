package get_schedule

import (
	"context"
	"time"

	"github.com/agendahub/scheduling-service/internal/service/catalog/models"
)

type CatalogService interface {
	ListWorkingHours(ctx context.Context, tenantID int64) (*models.WorkingHoursListResponse, error)
	ListSpecialDates(ctx context.Context, tenantID int64, from, to *time.Time) (*models.SpecialDateListResponse, error)
}

type Logger interface {
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}
