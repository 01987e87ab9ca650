package get_booking

import (
	"context"

	"github.com/agendahub/scheduling-service/internal/service/bookings/models"
)

type BookingsService interface {
	GetByID(ctx context.Context, tenantID, id int64) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}
