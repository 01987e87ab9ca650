package create_booking

import (
	"fmt"
	"time"

	"github.com/agendahub/scheduling-service/internal/domain"
)

func validateRequest(req *Request) error {
	if req == nil || req.Tenant == nil {
		return fmt.Errorf("%w: missing tenant", ErrInvalidInput)
	}
	if req.ClientID == nil && req.ClientPhone == "" {
		return fmt.Errorf("%w: missing client phone", ErrInvalidInput)
	}
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: missing service id", ErrInvalidInput)
	}
	if req.ProfessionalID != nil && *req.ProfessionalID <= 0 {
		return fmt.Errorf("%w: invalid professional id", ErrInvalidInput)
	}
	if req.StartAt.IsZero() {
		return fmt.Errorf("%w: missing start", ErrInvalidInput)
	}
	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes too long", ErrInvalidInput)
	}
	switch req.StatusOnSuccess {
	case "", domain.StatusPending, domain.StatusConfirmed:
	default:
		return fmt.Errorf("%w: invalid status on success", ErrInvalidInput)
	}
	return nil
}

func validateStart(start, now time.Time) error {
	if !start.After(now) {
		return ErrPastDate
	}
	return nil
}
