package models

import (
	"errors"
	"time"

	"github.com/agendahub/scheduling-service/internal/domain"
)

var (
	// ErrInvalidStatus is returned when a status string does not parse.
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request models

// CancelBookingRequest cancels a booking. Phone is set on bot-originated
// cancellations and triggers ownership verification; staff calls leave it nil.
type CancelBookingRequest struct {
	Phone  *string `json:"phone,omitempty"`
	Reason *string `json:"reason,omitempty"`
}

// UpdateStatusRequest moves a booking to a terminal status.
type UpdateStatusRequest struct {
	Status        string   `json:"status"`
	ChargedAmount *float64 `json:"chargedAmount,omitempty"`
}

// GetTenantBookingsRequest filters the tenant-wide booking listing.
type GetTenantBookingsRequest struct {
	TenantID        int64
	ProfessionalID  *int64
	ClientID        *int64
	StartDate       *time.Time
	EndDate         *time.Time
	Status          *string
	IncludeInactive bool
}

// ToDomainFilter converts the request into the storage filter.
func (r *GetTenantBookingsRequest) ToDomainFilter() (domain.TenantBookingsFilter, error) {
	filter := domain.TenantBookingsFilter{
		TenantID:        r.TenantID,
		ProfessionalID:  r.ProfessionalID,
		ClientID:        r.ClientID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response models

// BookingResponse is the booking DTO shared by every read endpoint.
type BookingResponse struct {
	ID             int64  `json:"id"`
	TenantID       int64  `json:"tenantId"`
	ClientID       int64  `json:"clientId"`
	ServiceID      int64  `json:"serviceId"`
	ProfessionalID *int64 `json:"professionalId,omitempty"`
	Code           string `json:"code"`
	StartAt        string `json:"start"` // RFC 3339
	EndAt          string `json:"end"`   // RFC 3339
	Status         string `json:"status"`

	// Denormalized for history and chat display
	ServiceName      string  `json:"serviceName"`
	ProfessionalName *string `json:"professionalName,omitempty"`
	ClientName       string  `json:"clientName"`
	ClientPhone      string  `json:"clientPhone"`

	ChargedAmount *float64 `json:"chargedAmount,omitempty"`
	Notes         *string  `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse is the list envelope. ActiveCount counts the
// pending/confirmed bookings inside the requested period.
type BookingListResponse struct {
	Bookings    []BookingResponse `json:"bookings"`
	ActiveCount int               `json:"activeCount"`
}

// Conversion helpers

// FromDomainBooking converts the domain model into the DTO.
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:               b.ID,
		TenantID:         b.TenantID,
		ClientID:         b.ClientID,
		ServiceID:        b.ServiceID,
		ProfessionalID:   b.ProfessionalID,
		Code:             b.Code,
		StartAt:          b.StartAt.Format(time.RFC3339),
		EndAt:            b.EndAt.Format(time.RFC3339),
		Status:           string(b.Status),
		ServiceName:      b.ServiceName,
		ProfessionalName: b.ProfessionalName,
		ClientName:       b.ClientName,
		ClientPhone:      b.ClientPhone,
		ChargedAmount:    b.ChargedAmount,
		Notes:            b.Notes,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
}

// FromDomainBookingList converts a slice of domain bookings.
func FromDomainBookingList(list []*domain.Booking, activeCount int) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings:    make([]BookingResponse, 0, len(list)),
		ActiveCount: activeCount,
	}
	for _, b := range list {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(b))
	}
	return resp
}

// ToDomainBookingStatus validates and converts a status string.
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	switch domain.BookingStatus(s) {
	case domain.StatusPending:
		return domain.StatusPending, nil
	case domain.StatusConfirmed:
		return domain.StatusConfirmed, nil
	case domain.StatusCancelled:
		return domain.StatusCancelled, nil
	case domain.StatusCompleted:
		return domain.StatusCompleted, nil
	case domain.StatusNoShow:
		return domain.StatusNoShow, nil
	default:
		return "", ErrInvalidStatus
	}
}
