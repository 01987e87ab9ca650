package get_tenant_bookings

import (
	"context"

	"github.com/agendahub/scheduling-service/internal/service/bookings/models"
)

type BookingsService interface {
	GetTenantBookings(ctx context.Context, req *models.GetTenantBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}
