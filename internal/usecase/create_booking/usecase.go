// Package create_booking is the conflict detector: it creates a booking
// inside a serializable transaction, locking the overlapping row set
// before evaluating it so concurrent writers serialize on the same rows.
package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agendahub/scheduling-service/internal/domain"
	bookingRepo "github.com/agendahub/scheduling-service/internal/infra/storage/booking"
	catalogRepo "github.com/agendahub/scheduling-service/internal/infra/storage/catalog"
	availability "github.com/agendahub/scheduling-service/internal/usecase/get_available_slots"
	"github.com/agendahub/scheduling-service/pkg/bookingcode"
)

const (
	// maxAttempts bounds re-runs of the transaction: one extra run for a
	// transient lock error plus re-rolls on a booking-code collision.
	maxAttempts = 3

	// maxAlternatives caps the alternative slots suggested on conflict.
	maxAlternatives = 3
)

// UseCase creates bookings.
type UseCase struct {
	bookingRepo  BookingRepository
	clientRepo   ClientRepository
	catalogRepo  CatalogRepository
	availability AvailabilityCalculator
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase creates the conflict detector.
func NewUseCase(
	bookingRepo BookingRepository,
	clientRepo ClientRepository,
	catalogRepo CatalogRepository,
	availabilityCalc AvailabilityCalculator,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		clientRepo:   clientRepo,
		catalogRepo:  catalogRepo,
		availability: availabilityCalc,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute attempts to create the booking. On an occupied slot it returns a
// ConflictError with alternative slots for the same date and professional.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Validation
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	tenant := req.Tenant
	loc := tenant.Location()
	now := uc.timeProvider.Now().In(loc)
	start := req.StartAt.In(loc)

	uc.logger.Info("CreateBooking: tenant=%d, service=%d, professional=%v, start=%s",
		tenant.ID, req.ServiceID, req.ProfessionalID, start.Format(time.RFC3339))

	if err := validateStart(start, now); err != nil {
		uc.logger.Warn("CreateBooking: start %s already elapsed", start.Format(time.RFC3339))
		return nil, err
	}

	// 2. Service determines the duration
	service, err := uc.catalogRepo.GetServiceByID(ctx, tenant.ID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found for tenant=%d", req.ServiceID, tenant.ID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	end := start.Add(time.Duration(service.DurationMinutes) * time.Minute)

	// 3. Professional must exist when named
	var professionalName *string
	if req.ProfessionalID != nil {
		professional, err := uc.catalogRepo.GetProfessionalByID(ctx, tenant.ID, *req.ProfessionalID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrProfessionalNotFound) {
				uc.logger.Warn("CreateBooking: professional id=%d not found for tenant=%d", *req.ProfessionalID, tenant.ID)
				return nil, ErrProfessionalNotFound
			}
			uc.logger.Error("CreateBooking: failed to get professional id=%d: %v", *req.ProfessionalID, err)
			return nil, fmt.Errorf("%w: failed to get professional: %v", ErrInternal, err)
		}
		professionalName = &professional.Name
	}

	// 4. Resolve the client outside the transaction
	client, err := uc.resolveClient(ctx, req)
	if err != nil {
		return nil, err
	}

	status := req.StatusOnSuccess
	if status == "" {
		status = domain.StatusPending
	}

	// 5. Lock-then-insert inside a serializable transaction. A transient
	// lock error earns exactly one retry; a booking-code collision re-rolls
	// the code with a fresh transaction.
	var result *domain.Booking
	run := func() error {
		return uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
			locked, err := uc.bookingRepo.LockOverlapping(txCtx, tenant.ID, req.ProfessionalID, start, end)
			if err != nil {
				return err
			}
			if len(locked) > 0 {
				uc.logger.Warn("CreateBooking: slot occupied, %d overlapping bookings for tenant=%d", len(locked), tenant.ID)
				return ErrSlotConflict
			}

			code, err := bookingcode.Generate()
			if err != nil {
				return fmt.Errorf("%w: failed to generate code: %v", ErrInternal, err)
			}

			booking := &domain.Booking{
				TenantID:         tenant.ID,
				ClientID:         client.ID,
				ServiceID:        req.ServiceID,
				ProfessionalID:   req.ProfessionalID,
				Code:             code,
				StartAt:          start,
				EndAt:            end,
				Status:           status,
				Notes:            notesWithCode(req.Notes, code),
				RecurrenceRuleID: req.RecurrenceRuleID,
				ServiceName:      service.Name,
				ProfessionalName: professionalName,
				ClientName:       client.Name,
				ClientPhone:      client.Phone,
			}

			created, err := uc.bookingRepo.Create(txCtx, booking)
			if err != nil {
				return err
			}
			result = created
			return nil
		})
	}

	transientRetried := false
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err = run()
		if err == nil {
			break
		}
		if errors.Is(err, bookingRepo.ErrDuplicateCode) {
			uc.logger.Warn("CreateBooking: booking code collision on attempt %d, re-rolling", attempt)
			continue
		}
		if errors.Is(err, bookingRepo.ErrLockNotAvailable) && !transientRetried {
			transientRetried = true
			uc.logger.Warn("CreateBooking: transient lock error on attempt %d, retrying once", attempt)
			continue
		}
		break
	}

	if err != nil {
		// A transient lock error that survived its retry is treated as a
		// conflict: someone else holds the rows we need.
		if errors.Is(err, ErrSlotConflict) || errors.Is(err, bookingRepo.ErrLockNotAvailable) {
			return nil, uc.conflictError(ctx, req, start)
		}
		if errors.Is(err, ErrInternal) || errors.Is(err, ErrInvalidInput) {
			return nil, err
		}
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: created booking id=%d code=%s for tenant=%d", result.ID, result.Code, tenant.ID)
	return fromDomainBooking(result), nil
}

// resolveClient fetches the pre-resolved client or gets-or-creates one by
// normalized phone.
func (uc *UseCase) resolveClient(ctx context.Context, req *Request) (*domain.Client, error) {
	if req.ClientID != nil {
		client, err := uc.clientRepo.GetByID(ctx, req.Tenant.ID, *req.ClientID)
		if err != nil {
			uc.logger.Warn("CreateBooking: client id=%d not found for tenant=%d: %v", *req.ClientID, req.Tenant.ID, err)
			return nil, ErrClientNotFound
		}
		return client, nil
	}

	name := req.ClientPhone
	if req.ClientName != nil && *req.ClientName != "" {
		name = *req.ClientName
	}
	client, err := uc.clientRepo.GetOrCreate(ctx, &domain.Client{
		TenantID: req.Tenant.ID,
		Name:     name,
		Phone:    req.ClientPhone,
		Origin:   domain.OriginWhatsApp,
		Active:   true,
	})
	if err != nil {
		uc.logger.Error("CreateBooking: failed to resolve client by phone: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve client: %v", ErrInternal, err)
	}
	return client, nil
}

// conflictError computes alternative slots for the same date, professional
// and duration. Alternative lookup failures degrade to an empty list.
func (uc *UseCase) conflictError(ctx context.Context, req *Request, start time.Time) error {
	resp, err := uc.availability.Execute(ctx, &availability.Request{
		Tenant:         req.Tenant,
		ServiceID:      req.ServiceID,
		ProfessionalID: req.ProfessionalID,
		Date:           start,
	})
	if err != nil {
		uc.logger.Warn("CreateBooking: failed to compute alternatives: %v", err)
		return &ConflictError{Alternatives: []time.Time{}}
	}

	// Prefer slots after the requested start, then fall back to earlier ones.
	after := make([]time.Time, 0, len(resp.Slots))
	before := make([]time.Time, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		if slot.StartAt.After(start) {
			after = append(after, slot.StartAt)
		} else if !slot.StartAt.Equal(start) {
			before = append(before, slot.StartAt)
		}
	}

	alternatives := after
	if len(alternatives) < maxAlternatives {
		alternatives = append(alternatives, before...)
	}
	if len(alternatives) > maxAlternatives {
		alternatives = alternatives[:maxAlternatives]
	}

	return &ConflictError{Alternatives: alternatives}
}

// notesWithCode echoes the booking code into the notes so chat replies can
// show it inline.
func notesWithCode(notes *string, code string) *string {
	text := "Código: " + code
	if notes != nil && *notes != "" {
		text = *notes + "\n" + text
	}
	return &text
}
