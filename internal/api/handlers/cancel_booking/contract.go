package cancel_booking

import (
	"context"

	"github.com/agendahub/scheduling-service/internal/service/bookings/models"
)

type BookingsService interface {
	Cancel(ctx context.Context, tenantID, bookingID int64, req *models.CancelBookingRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}
