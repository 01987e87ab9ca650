// Package expand_recurrences turns active recurrence rules into concrete
// confirmed bookings over a rolling horizon. Runs are idempotent: an
// exact-match guard plus the conflict detector's overlap check keep
// re-runs from duplicating bookings.
package expand_recurrences

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agendahub/scheduling-service/internal/domain"
	createBooking "github.com/agendahub/scheduling-service/internal/usecase/create_booking"
)

// UseCase is the recurrence expander.
type UseCase struct {
	recurrenceRepo RecurrenceRepository
	bookingRepo    BookingRepository
	catalogRepo    CatalogRepository
	tenantRepo     TenantRepository
	detector       ConflictDetector
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase creates the recurrence expander.
func NewUseCase(
	recurrenceRepo RecurrenceRepository,
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	tenantRepo TenantRepository,
	detector ConflictDetector,
	logger Logger,
) *UseCase {
	return &UseCase{
		recurrenceRepo: recurrenceRepo,
		bookingRepo:    bookingRepo,
		catalogRepo:    catalogRepo,
		tenantRepo:     tenantRepo,
		detector:       detector,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// ExpandAll expands every active rule, optionally scoped to one tenant.
// A horizonDays of zero or less falls back to each tenant's configured
// horizon. Per-rule failures are counted, never fatal.
func (uc *UseCase) ExpandAll(ctx context.Context, tenantID *int64, horizonDays int) (*ExpandAllResult, error) {
	runAt := uc.timeProvider.Now()

	var rules []*domain.RecurrenceRule
	var err error
	if tenantID != nil {
		rules, err = uc.recurrenceRepo.ListActive(ctx, *tenantID)
	} else {
		rules, err = uc.recurrenceRepo.ListAllActive(ctx)
	}
	if err != nil {
		uc.logger.Error("ExpandAll: failed to list rules: %v", err)
		return nil, fmt.Errorf("%w: failed to list rules: %v", ErrInternal, err)
	}

	uc.logger.Info("ExpandAll: expanding %d rules (tenant=%v, horizon=%d)", len(rules), tenantID, horizonDays)

	result := &ExpandAllResult{Rules: len(rules), RunAt: runAt}
	for _, rule := range rules {
		ruleResult, err := uc.Expand(ctx, rule, horizonDays)
		if err != nil {
			uc.logger.Error("ExpandAll: rule id=%d failed: %v", rule.ID, err)
			result.Errors++
			continue
		}
		result.Created += ruleResult.Created
		result.Skipped += ruleResult.Skipped
		result.Errors += ruleResult.Errors
	}

	uc.logger.Info("ExpandAll: done, created=%d skipped=%d errors=%d", result.Created, result.Skipped, result.Errors)
	return result, nil
}

// Expand generates bookings for one rule inside its validity window.
func (uc *UseCase) Expand(ctx context.Context, rule *domain.RecurrenceRule, horizonDays int) (*ExpandResult, error) {
	tenant, err := uc.tenantRepo.GetByID(ctx, rule.TenantID)
	if err != nil {
		return nil, fmt.Errorf("%w: rule id=%d", ErrTenantNotFound, rule.ID)
	}

	loc := tenant.Location()
	now := uc.timeProvider.Now().In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	// An expired rule is deactivated and expands to nothing.
	if rule.Expired(today) {
		uc.logger.Info("Expand: rule id=%d expired on %s, deactivating", rule.ID, rule.EndDate.Format(domain.DateFormat))
		if err := uc.recurrenceRepo.Deactivate(ctx, rule.TenantID, rule.ID); err != nil {
			uc.logger.Error("Expand: failed to deactivate rule id=%d: %v", rule.ID, err)
			return nil, fmt.Errorf("%w: failed to deactivate rule: %v", ErrInternal, err)
		}
		return &ExpandResult{}, nil
	}

	if horizonDays <= 0 {
		cfg, err := uc.tenantRepo.GetConfig(ctx, rule.TenantID)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to get tenant config: %v", ErrInternal, err)
		}
		horizonDays = cfg.HorizonDays
	}

	// Fail the rule up front when its service is gone, instead of once per
	// candidate date. The detector resolves the duration itself.
	if _, err := uc.catalogRepo.GetServiceByID(ctx, rule.TenantID, rule.ServiceID); err != nil {
		return nil, fmt.Errorf("%w: rule id=%d service id=%d", ErrServiceNotFound, rule.ID, rule.ServiceID)
	}

	// Window: [max(today, start_date), min(today+horizon, end_date)]
	windowStart := today
	ruleStart := time.Date(rule.StartDate.Year(), rule.StartDate.Month(), rule.StartDate.Day(), 0, 0, 0, 0, loc)
	if ruleStart.After(windowStart) {
		windowStart = ruleStart
	}
	windowEnd := today.AddDate(0, 0, horizonDays)
	if rule.EndDate != nil {
		ruleEnd := time.Date(rule.EndDate.Year(), rule.EndDate.Month(), rule.EndDate.Day(), 0, 0, 0, 0, loc)
		if ruleEnd.Before(windowEnd) {
			windowEnd = ruleEnd
		}
	}

	result := &ExpandResult{}
	for date := windowStart; !date.After(windowEnd); date = date.AddDate(0, 0, 1) {
		if !rule.OccursOn(date) {
			continue
		}
		uc.expandCandidate(ctx, rule, tenant, date, now, result)
	}

	uc.logger.Info("Expand: rule id=%d created=%d skipped=%d errors=%d",
		rule.ID, result.Created, result.Skipped, result.Errors)
	return result, nil
}

// expandCandidate processes one candidate date. Failures count towards the
// aggregate and never abort the run.
func (uc *UseCase) expandCandidate(
	ctx context.Context,
	rule *domain.RecurrenceRule,
	tenant *domain.Tenant,
	date time.Time,
	now time.Time,
	result *ExpandResult,
) {
	start, err := rule.StartTime.At(date, tenant.Location())
	if err != nil {
		uc.logger.Error("Expand: rule id=%d has invalid start time %q: %v", rule.ID, rule.StartTime, err)
		result.Errors++
		return
	}

	// Today's occurrence may already be in the past.
	if !start.After(now) {
		result.Skipped++
		return
	}

	exists, err := uc.bookingRepo.ExistsExact(ctx, rule.TenantID, rule.ClientID, rule.ProfessionalID, rule.ServiceID, start)
	if err != nil {
		uc.logger.Error("Expand: rule id=%d exact-match check failed for %s: %v", rule.ID, start.Format(time.RFC3339), err)
		result.Errors++
		return
	}
	if exists {
		result.Skipped++
		return
	}

	_, err = uc.detector.Execute(ctx, &createBooking.Request{
		Tenant:           tenant,
		ClientID:         &rule.ClientID,
		ServiceID:        rule.ServiceID,
		ProfessionalID:   rule.ProfessionalID,
		StartAt:          start,
		StatusOnSuccess:  domain.StatusConfirmed,
		RecurrenceRuleID: &rule.ID,
	})
	if err != nil {
		if errors.Is(err, createBooking.ErrSlotConflict) || errors.Is(err, createBooking.ErrPastDate) {
			result.Skipped++
			return
		}
		uc.logger.Error("Expand: rule id=%d failed to create booking at %s: %v", rule.ID, start.Format(time.RFC3339), err)
		result.Errors++
		return
	}

	result.Created++
}
