package get_available_slots

import (
	"fmt"
	"time"
)

func validateRequest(req *Request) error {
	if req == nil || req.Tenant == nil {
		return fmt.Errorf("%w: missing tenant", ErrInvalidInput)
	}
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: missing service id", ErrInvalidInput)
	}
	if req.ProfessionalID != nil && *req.ProfessionalID <= 0 {
		return fmt.Errorf("%w: invalid professional id", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidInput)
	}
	if req.Granularity != nil && *req.Granularity <= 0 {
		return fmt.Errorf("%w: invalid granularity", ErrInvalidInput)
	}
	return nil
}

// validateHorizon rejects dates beyond today+horizonDays.
func validateHorizon(date, now time.Time, horizonDays int) error {
	limit := truncateToDay(now).AddDate(0, 0, horizonDays)
	if truncateToDay(date).After(limit) {
		return ErrDateTooFarInFuture
	}
	return nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func isSameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func isDateInPast(date, now time.Time) bool {
	return truncateToDay(date).Before(truncateToDay(now))
}
