package create_booking

import (
	"time"

	"github.com/agendahub/scheduling-service/internal/domain"
)

// Request carries everything needed to attempt one booking. The client is
// either pre-resolved (ClientID, used by the recurrence expander) or
// resolved-or-created from ClientPhone.
type Request struct {
	Tenant         *domain.Tenant
	ClientID       *int64
	ClientPhone    string
	ClientName     *string
	ServiceID      int64
	ProfessionalID *int64 // nil = unassigned, conflicts checked tenant-wide
	StartAt        time.Time
	Notes          *string

	// StatusOnSuccess defaults to pending. The recurrence expander creates
	// pre-confirmed bookings.
	StatusOnSuccess  domain.BookingStatus
	RecurrenceRuleID *int64
}

// Response is the created booking.
type Response struct {
	ID             int64
	TenantID       int64
	ClientID       int64
	ServiceID      int64
	ProfessionalID *int64
	Code           string
	StartAt        time.Time
	EndAt          time.Time
	Status         string

	ServiceName      string
	ProfessionalName *string
	ClientName       string
	ClientPhone      string
	Notes            *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func fromDomainBooking(b *domain.Booking) *Response {
	return &Response{
		ID:               b.ID,
		TenantID:         b.TenantID,
		ClientID:         b.ClientID,
		ServiceID:        b.ServiceID,
		ProfessionalID:   b.ProfessionalID,
		Code:             b.Code,
		StartAt:          b.StartAt,
		EndAt:            b.EndAt,
		Status:           string(b.Status),
		ServiceName:      b.ServiceName,
		ProfessionalName: b.ProfessionalName,
		ClientName:       b.ClientName,
		ClientPhone:      b.ClientPhone,
		Notes:            b.Notes,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
}
