package get_client_bookings

import (
	"context"

	"github.com/agendahub/scheduling-service/internal/service/bookings/models"
)

type BookingsService interface {
	GetClientBookings(ctx context.Context, tenantID, clientID int64, status *string) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}
