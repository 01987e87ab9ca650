// Package get_available_slots computes the bookable time slots of one
// calendar date for a tenant, service and optional professional.
package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agendahub/scheduling-service/internal/domain"
	catalogRepo "github.com/agendahub/scheduling-service/internal/infra/storage/catalog"
	scheduleRepo "github.com/agendahub/scheduling-service/internal/infra/storage/schedule"
)

// UseCase is the availability calculator.
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	catalogRepo  CatalogRepository
	tenantRepo   TenantRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase creates the availability calculator.
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	catalogRepo CatalogRepository,
	tenantRepo TenantRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		catalogRepo:  catalogRepo,
		tenantRepo:   tenantRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute resolves the day window, generates candidate slots and filters
// them against the lead time and the existing bookings. All reads, never
// blocks on booking creation.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	tenant := req.Tenant
	loc := tenant.Location()
	now := uc.timeProvider.Now().In(loc)
	date := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, loc)

	uc.logger.Info("GetAvailableSlots: tenant=%d, service=%d, professional=%v, date=%s",
		tenant.ID, req.ServiceID, req.ProfessionalID, date.Format(domain.DateFormat))

	// 1. Tenant configuration (defaults when no row exists)
	cfg, err := uc.tenantRepo.GetConfig(ctx, tenant.ID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get config for tenant=%d: %v", tenant.ID, err)
		return nil, fmt.Errorf("%w: failed to get tenant config: %v", ErrInternal, err)
	}

	granularity := cfg.SlotGranularityMinutes
	if req.Granularity != nil {
		granularity = *req.Granularity
	}

	// 2. Service determines the slot duration
	service, err := uc.catalogRepo.GetServiceByID(ctx, tenant.ID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found for tenant=%d", req.ServiceID, tenant.ID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 3. Professional must exist when named
	if req.ProfessionalID != nil {
		if _, err := uc.catalogRepo.GetProfessionalByID(ctx, tenant.ID, *req.ProfessionalID); err != nil {
			if errors.Is(err, catalogRepo.ErrProfessionalNotFound) {
				uc.logger.Warn("GetAvailableSlots: professional id=%d not found for tenant=%d", *req.ProfessionalID, tenant.ID)
				return nil, ErrProfessionalNotFound
			}
			uc.logger.Error("GetAvailableSlots: failed to get professional id=%d: %v", *req.ProfessionalID, err)
			return nil, fmt.Errorf("%w: failed to get professional: %v", ErrInternal, err)
		}
	}

	// 4. Date bounds: past dates yield no slots, far dates are rejected
	if isDateInPast(date, now) {
		return uc.emptyResponse(req, date, ""), nil
	}
	if err := validateHorizon(date, now, cfg.HorizonDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date %s beyond horizon of %d days", date.Format(domain.DateFormat), cfg.HorizonDays)
		return nil, err
	}

	// 5. Resolve the effective day window
	window, reason, description, err := uc.resolveDayWindow(ctx, tenant.ID, date)
	if err != nil {
		return nil, err
	}
	if reason != "" {
		uc.logger.Info("GetAvailableSlots: tenant=%d closed on %s (%s)", tenant.ID, date.Format(domain.DateFormat), reason)
		resp := uc.emptyResponse(req, date, reason)
		resp.ReasonDescription = description
		return resp, nil
	}

	// 6. Candidate slots at granularity steps
	candidates, err := generateCandidates(*window, service.DurationMinutes, granularity)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate candidates: %v", err)
		return nil, fmt.Errorf("%w: failed to generate candidates: %v", ErrInternal, err)
	}

	// 7. Same-day lead time
	if isSameDay(date, now) {
		cutoff, onSameDay := leadTimeCutoff(now, cfg.LeadTimeMinutes)
		if !onSameDay {
			candidates = candidates[:0]
		} else {
			candidates = filterByLeadTime(candidates, cutoff)
		}
	}

	// 8. Conflict filter against the day's active bookings
	dayStart, err := window.Open.At(date, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid window open: %v", ErrInternal, err)
	}
	dayEnd, err := window.Close.At(date, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid window close: %v", ErrInternal, err)
	}

	bookings, err := uc.bookingRepo.GetOverlapping(ctx, tenant.ID, req.ProfessionalID, dayStart, dayEnd)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	slots, err := filterByConflicts(candidates, service.DurationMinutes, date, loc, bookings)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to filter conflicts: %v", err)
		return nil, fmt.Errorf("%w: failed to filter conflicts: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailableSlots: %d slots available for tenant=%d on %s",
		len(slots), tenant.ID, date.Format(domain.DateFormat))

	return &Response{
		Date:           date,
		ServiceID:      req.ServiceID,
		ProfessionalID: req.ProfessionalID,
		Slots:          slots,
	}, nil
}

// resolveDayWindow applies the special-date override, then the weekday
// schedule. Returns a non-empty reason when the day is closed.
func (uc *UseCase) resolveDayWindow(ctx context.Context, tenantID int64, date time.Time) (*domain.DayWindow, string, string, error) {
	special, err := uc.scheduleRepo.GetSpecialDate(ctx, tenantID, date)
	if err != nil && !errors.Is(err, scheduleRepo.ErrSpecialDateNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get special date: %v", err)
		return nil, "", "", fmt.Errorf("%w: failed to get special date: %v", ErrInternal, err)
	}

	if special != nil && special.Type == domain.SpecialDateHoliday {
		return nil, domain.ReasonClosedHoliday, special.Description, nil
	}

	hours, err := uc.scheduleRepo.GetWorkingHours(ctx, tenantID, domain.WeekdayOf(date))
	if err != nil && !errors.Is(err, scheduleRepo.ErrWorkingHoursNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get working hours: %v", err)
		return nil, "", "", fmt.Errorf("%w: failed to get working hours: %v", ErrInternal, err)
	}

	if special != nil {
		// special_hours replaces open/close but keeps the weekday's break
		if special.OpenTime == nil || special.CloseTime == nil {
			return nil, domain.ReasonClosedSpecial, special.Description, nil
		}
		window := &domain.DayWindow{
			Open:  *special.OpenTime,
			Close: *special.CloseTime,
		}
		if hours != nil {
			window.BreakStart = hours.BreakStart
			window.BreakEnd = hours.BreakEnd
		}
		return window, "", "", nil
	}

	if hours == nil {
		return nil, domain.ReasonClosed, "", nil
	}

	return &domain.DayWindow{
		Open:       hours.OpenTime,
		Close:      hours.CloseTime,
		BreakStart: hours.BreakStart,
		BreakEnd:   hours.BreakEnd,
	}, "", "", nil
}

func (uc *UseCase) emptyResponse(req *Request, date time.Time, reason string) *Response {
	return &Response{
		Date:           date,
		ServiceID:      req.ServiceID,
		ProfessionalID: req.ProfessionalID,
		Slots:          []Slot{},
		Reason:         reason,
	}
}
