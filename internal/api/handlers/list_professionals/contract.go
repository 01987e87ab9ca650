package list_professionals

import (
	"context"

	"github.com/agendahub/scheduling-service/internal/service/catalog/models"
)

type CatalogService interface {
	ListProfessionals(ctx context.Context, tenantID int64) (*models.ProfessionalListResponse, error)
}

type Logger interface {
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}
