package create_booking

import (
	"fmt"
	"time"

	"github.com/agendahub/scheduling-service/internal/domain"
	createBooking "github.com/agendahub/scheduling-service/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model. The tenant comes from the API
// key, never from the payload.
type CreateBookingRequest struct {
	ClientPhone    string  `json:"client_phone"`
	ClientName     *string `json:"client_name,omitempty"`
	ServiceID      int64   `json:"service_id"`
	ProfessionalID *int64  `json:"professional_id,omitempty"`
	Start          string  `json:"start"` // RFC 3339
	Notes          *string `json:"notes,omitempty"`
	Status         *string `json:"status,omitempty"` // pending (default) or confirmed
}

// BookingResponse HTTP response model.
type BookingResponse struct {
	Success   bool   `json:"success"`
	BookingID int64  `json:"booking_id"`
	Code      string `json:"code"`
	Status    string `json:"status"`
	Start     string `json:"start"`
	End       string `json:"end"`
}

// ToUseCaseRequest converts the HTTP request into the use case model.
func (r *CreateBookingRequest) ToUseCaseRequest(tenant *domain.Tenant) (*createBooking.Request, error) {
	start, err := time.Parse(time.RFC3339, r.Start)
	if err != nil {
		return nil, fmt.Errorf("invalid start: %v", err)
	}

	var status domain.BookingStatus
	if r.Status != nil {
		status = domain.BookingStatus(*r.Status)
	}

	return &createBooking.Request{
		Tenant:          tenant,
		ClientPhone:     r.ClientPhone,
		ClientName:      r.ClientName,
		ServiceID:       r.ServiceID,
		ProfessionalID:  r.ProfessionalID,
		StartAt:         start,
		Notes:           r.Notes,
		StatusOnSuccess: status,
	}, nil
}

// FromUseCaseResponse converts the use case response into the HTTP model.
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		Success:   true,
		BookingID: resp.ID,
		Code:      resp.Code,
		Status:    resp.Status,
		Start:     resp.StartAt.Format(time.RFC3339),
		End:       resp.EndAt.Format(time.RFC3339),
	}
}
