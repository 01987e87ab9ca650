// Package process_intent maps bot intents (schedule, cancel, query,
// confirm) onto the engine's operations. Stateless and single-turn: every
// invocation carries full context and produces exactly one terminal
// result, which is always written to the audit log.
package process_intent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/agendahub/scheduling-service/internal/domain"
	"github.com/agendahub/scheduling-service/internal/infra/storage/botlog"
	catalogRepo "github.com/agendahub/scheduling-service/internal/infra/storage/catalog"
	bookingsService "github.com/agendahub/scheduling-service/internal/service/bookings"
	bookingModels "github.com/agendahub/scheduling-service/internal/service/bookings/models"
	createBooking "github.com/agendahub/scheduling-service/internal/usecase/create_booking"
	availability "github.com/agendahub/scheduling-service/internal/usecase/get_available_slots"
	"github.com/agendahub/scheduling-service/pkg/phone"
	"github.com/agendahub/scheduling-service/pkg/ptr"
)

const dateTimeLayout = "2006-01-02 15:04"

// UseCase is the intent router.
type UseCase struct {
	catalogRepo  CatalogRepository
	lifecycle    BookingLifecycle
	detector     ConflictDetector
	availability AvailabilityCalculator
	auditLog     AuditLog
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase creates the intent router.
func NewUseCase(
	catalogRepository CatalogRepository,
	lifecycle BookingLifecycle,
	detector ConflictDetector,
	availabilityCalc AvailabilityCalculator,
	auditLog AuditLog,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalogRepo:  catalogRepository,
		lifecycle:    lifecycle,
		detector:     detector,
		availability: availabilityCalc,
		auditLog:     auditLog,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute routes one bot command. Domain failures (unknown service, slot
// conflict, phone mismatch) are terminal responses, not errors; the error
// return is reserved for unexpected internal failures.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req == nil || req.Tenant == nil {
		return nil, fmt.Errorf("%w: missing tenant", ErrInvalidInput)
	}

	uc.logger.Info("ProcessIntent: tenant=%d, intent=%s, request_id=%s", req.Tenant.ID, req.Intent, req.RequestID)

	resp := uc.route(ctx, req)
	uc.audit(ctx, req, resp)

	return resp, nil
}

func (uc *UseCase) route(ctx context.Context, req *Request) *Response {
	if req.Phone == "" {
		return failure(kindValidation, msgInvalidPayload)
	}

	switch req.Intent {
	case IntentSchedule:
		if req.Schedule == nil {
			return failure(kindValidation, msgInvalidPayload)
		}
		return uc.handleSchedule(ctx, req)
	case IntentCancel:
		if req.Cancel == nil || req.Cancel.Code == "" {
			return failure(kindValidation, msgInvalidPayload)
		}
		return uc.handleCancel(ctx, req)
	case IntentQuery:
		if req.Query == nil {
			return failure(kindValidation, msgInvalidPayload)
		}
		return uc.handleQuery(ctx, req)
	case IntentConfirm:
		if req.Confirm == nil || req.Confirm.Code == "" {
			return failure(kindValidation, msgInvalidPayload)
		}
		return uc.handleConfirm(ctx, req)
	default:
		uc.logger.Warn("ProcessIntent: unknown intent %q for tenant=%d", req.Intent, req.Tenant.ID)
		return failure(kindValidation, msgInvalidPayload)
	}
}

func (uc *UseCase) handleSchedule(ctx context.Context, req *Request) *Response {
	tenant := req.Tenant
	data := req.Schedule

	service, resp := uc.resolveService(ctx, tenant.ID, data.Service)
	if resp != nil {
		return resp
	}

	professionalID, resp := uc.resolveProfessional(ctx, tenant.ID, data.Professional)
	if resp != nil {
		return resp
	}

	start, err := time.ParseInLocation(dateTimeLayout, data.Date+" "+data.Time, tenant.Location())
	if err != nil {
		uc.logger.Warn("ProcessIntent: invalid date/time %q %q: %v", data.Date, data.Time, err)
		return failure(kindValidation, msgInvalidPayload)
	}

	var name *string
	if data.ClientName != "" {
		name = &data.ClientName
	}
	var notes *string
	if data.Notes != "" {
		notes = &data.Notes
	}

	created, err := uc.detector.Execute(ctx, &createBooking.Request{
		Tenant:         tenant,
		ClientPhone:    phone.Normalize(req.Phone),
		ClientName:     name,
		ServiceID:      service.ID,
		ProfessionalID: professionalID,
		StartAt:        start,
		Notes:          notes,
	})
	if err != nil {
		var conflict *createBooking.ConflictError
		switch {
		case errors.As(err, &conflict):
			return failure(kindConflict, conflictMessage(conflict, tenant.Location()))
		case errors.Is(err, createBooking.ErrPastDate):
			return failure(kindPastDate, msgPastDate)
		case errors.Is(err, createBooking.ErrServiceNotFound):
			return uc.serviceNotFound(ctx, tenant.ID)
		case errors.Is(err, createBooking.ErrProfessionalNotFound):
			return failure(kindNotFound, msgProfessionalMissing)
		case errors.Is(err, createBooking.ErrInvalidInput):
			return failure(kindValidation, msgInvalidPayload)
		default:
			uc.logger.Error("ProcessIntent: schedule failed for tenant=%d: %v", tenant.ID, err)
			return failure(kindInternal, msgInternal)
		}
	}

	message := fmt.Sprintf(msgScheduled,
		created.StartAt.Format(domain.DisplayDateFormat),
		created.StartAt.Format("15:04"),
		created.Code)
	return &Response{
		Success:   true,
		Message:   message,
		BookingID: &created.ID,
		Code:      &created.Code,
	}
}

func (uc *UseCase) handleCancel(ctx context.Context, req *Request) *Response {
	tenant := req.Tenant
	code := strings.ToUpper(strings.TrimSpace(req.Cancel.Code))

	booking, err := uc.lifecycle.GetActiveByCode(ctx, tenant.ID, code)
	if err != nil {
		if errors.Is(err, bookingsService.ErrBookingNotFound) {
			return failure(kindNotFound, fmt.Sprintf(msgCancelNotFound, code))
		}
		uc.logger.Error("ProcessIntent: cancel lookup failed for tenant=%d code=%s: %v", tenant.ID, code, err)
		return failure(kindInternal, msgInternal)
	}

	_, err = uc.lifecycle.Cancel(ctx, tenant.ID, booking.ID, &bookingModels.CancelBookingRequest{Phone: &req.Phone})
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrAccessDenied):
			return failure(kindAuthorization, msgCancelNotAllowed)
		case errors.Is(err, bookingsService.ErrBookingNotFound), errors.Is(err, bookingsService.ErrCannotCancel):
			return failure(kindNotFound, fmt.Sprintf(msgCancelNotFound, code))
		default:
			uc.logger.Error("ProcessIntent: cancel failed for booking id=%d: %v", booking.ID, err)
			return failure(kindInternal, msgInternal)
		}
	}

	return &Response{
		Success:   true,
		Message:   fmt.Sprintf(msgCancelled, code),
		BookingID: &booking.ID,
		Code:      &code,
	}
}

func (uc *UseCase) handleConfirm(ctx context.Context, req *Request) *Response {
	tenant := req.Tenant
	code := strings.ToUpper(strings.TrimSpace(req.Confirm.Code))

	booking, err := uc.lifecycle.GetActiveByCode(ctx, tenant.ID, code)
	if err != nil {
		if errors.Is(err, bookingsService.ErrBookingNotFound) {
			return failure(kindNotFound, msgConfirmNotFound)
		}
		uc.logger.Error("ProcessIntent: confirm lookup failed for tenant=%d code=%s: %v", tenant.ID, code, err)
		return failure(kindInternal, msgInternal)
	}

	if !booking.CanBeConfirmed() {
		return failure(kindNotFound, msgConfirmNotFound)
	}

	if _, err := uc.lifecycle.Confirm(ctx, tenant.ID, booking.ID); err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrBookingNotFound), errors.Is(err, bookingsService.ErrCannotConfirm):
			return failure(kindNotFound, msgConfirmNotFound)
		default:
			uc.logger.Error("ProcessIntent: confirm failed for booking id=%d: %v", booking.ID, err)
			return failure(kindInternal, msgInternal)
		}
	}

	return &Response{
		Success:   true,
		Message:   fmt.Sprintf(msgConfirmed, code),
		BookingID: &booking.ID,
		Code:      &code,
	}
}

func (uc *UseCase) handleQuery(ctx context.Context, req *Request) *Response {
	tenant := req.Tenant
	data := req.Query
	loc := tenant.Location()

	service, resp := uc.resolveService(ctx, tenant.ID, data.Service)
	if resp != nil {
		return resp
	}

	// Unlike schedule, an unnamed professional means "any", not "the first".
	var professionalID *int64
	if data.Professional != "" {
		professionalID, resp = uc.resolveProfessional(ctx, tenant.ID, data.Professional)
		if resp != nil {
			return resp
		}
	}

	date := uc.timeProvider.Now().In(loc)
	if data.Date != "" {
		parsed, err := time.ParseInLocation(domain.DateFormat, data.Date, loc)
		if err != nil {
			uc.logger.Warn("ProcessIntent: invalid query date %q: %v", data.Date, err)
			return failure(kindValidation, msgInvalidPayload)
		}
		date = parsed
	}

	result, err := uc.availability.Execute(ctx, &availability.Request{
		Tenant:         tenant,
		ServiceID:      service.ID,
		ProfessionalID: professionalID,
		Date:           date,
	})
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrDateTooFarInFuture):
			return failure(kindValidation, msgDateTooFar)
		case errors.Is(err, availability.ErrServiceNotFound):
			return uc.serviceNotFound(ctx, tenant.ID)
		case errors.Is(err, availability.ErrProfessionalNotFound):
			return failure(kindNotFound, msgProfessionalMissing)
		case errors.Is(err, availability.ErrInvalidInput):
			return failure(kindValidation, msgInvalidPayload)
		default:
			uc.logger.Error("ProcessIntent: query failed for tenant=%d: %v", tenant.ID, err)
			return failure(kindInternal, msgInternal)
		}
	}

	display := date.Format(domain.DisplayDateFormat)

	if result.Reason != "" {
		// Special-date descriptions are surfaced verbatim.
		message := result.ReasonDescription
		if message == "" {
			message = fmt.Sprintf(msgDayClosed, display)
		}
		return &Response{Success: true, Message: message, Slots: []string{}}
	}

	if len(result.Slots) == 0 {
		return &Response{Success: true, Message: fmt.Sprintf(msgNoSlots, display), Slots: []string{}}
	}

	times := make([]string, 0, len(result.Slots))
	for _, slot := range result.Slots {
		times = append(times, slot.Time.String())
	}

	return &Response{
		Success: true,
		Message: fmt.Sprintf(msgSlots, display, strings.Join(times, ", ")),
		Slots:   times,
	}
}

// resolveService matches a service by case-insensitive substring. An empty
// name falls back to the tenant's first active service.
func (uc *UseCase) resolveService(ctx context.Context, tenantID int64, name string) (*domain.Service, *Response) {
	if name == "" {
		services, err := uc.catalogRepo.ListActiveServices(ctx, tenantID)
		if err != nil {
			uc.logger.Error("ProcessIntent: failed to list services for tenant=%d: %v", tenantID, err)
			return nil, failure(kindInternal, msgInternal)
		}
		if len(services) == 0 {
			return nil, failure(kindNotFound, msgNoServices)
		}
		return services[0], nil
	}

	service, err := uc.catalogRepo.FindServiceByName(ctx, tenantID, name)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			return nil, uc.serviceNotFound(ctx, tenantID)
		}
		uc.logger.Error("ProcessIntent: service lookup failed for tenant=%d: %v", tenantID, err)
		return nil, failure(kindInternal, msgInternal)
	}
	return service, nil
}

// resolveProfessional matches by name, or falls back to the tenant's first
// active professional when unnamed. A tenant without professionals books
// unassigned.
func (uc *UseCase) resolveProfessional(ctx context.Context, tenantID int64, name string) (*int64, *Response) {
	if name != "" {
		professional, err := uc.catalogRepo.FindProfessionalByName(ctx, tenantID, name)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrProfessionalNotFound) {
				return nil, failure(kindNotFound, msgProfessionalMissing)
			}
			uc.logger.Error("ProcessIntent: professional lookup failed for tenant=%d: %v", tenantID, err)
			return nil, failure(kindInternal, msgInternal)
		}
		return ptr.Ptr(professional.ID), nil
	}

	professional, err := uc.catalogRepo.FirstActiveProfessional(ctx, tenantID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrProfessionalNotFound) {
			return nil, nil
		}
		uc.logger.Error("ProcessIntent: default professional lookup failed for tenant=%d: %v", tenantID, err)
		return nil, failure(kindInternal, msgInternal)
	}
	return ptr.Ptr(professional.ID), nil
}

// serviceNotFound builds the error reply listing what the tenant offers.
func (uc *UseCase) serviceNotFound(ctx context.Context, tenantID int64) *Response {
	services, err := uc.catalogRepo.ListActiveServices(ctx, tenantID)
	if err != nil || len(services) == 0 {
		return failure(kindNotFound, msgNoServices)
	}
	names := make([]string, 0, len(services))
	for _, s := range services {
		names = append(names, s.Name)
	}
	return failure(kindNotFound, fmt.Sprintf(msgServiceNotFound, strings.Join(names, ", ")))
}

// audit records the terminal outcome. Logging failures are reported but
// never turn a processed command into an error.
func (uc *UseCase) audit(ctx context.Context, req *Request, resp *Response) {
	entry := botlog.Entry{
		RequestID:       req.RequestID,
		TenantID:        req.Tenant.ID,
		Phone:           phone.Normalize(req.Phone),
		Intent:          req.Intent,
		Status:          botlog.StatusSuccess,
		ResponseMessage: resp.Message,
		BookingID:       resp.BookingID,
	}
	if !resp.Success {
		entry.Status = botlog.StatusError
		kind := resp.ErrorKind
		entry.ErrorDetails = &kind
	}

	if err := uc.auditLog.Insert(ctx, entry); err != nil {
		uc.logger.Error("ProcessIntent: failed to write audit log for tenant=%d: %v", req.Tenant.ID, err)
	}
}

func failure(kind, message string) *Response {
	return &Response{Success: false, Message: message, ErrorKind: kind}
}

// conflictMessage renders the taken-slot reply with the detector's
// alternatives as local wall-clock times.
func conflictMessage(conflict *createBooking.ConflictError, loc *time.Location) string {
	if len(conflict.Alternatives) == 0 {
		return msgConflictNoAlts
	}
	times := make([]string, 0, len(conflict.Alternatives))
	for _, alt := range conflict.Alternatives {
		times = append(times, alt.In(loc).Format("15:04"))
	}
	return fmt.Sprintf(msgConflict, strings.Join(times, ", "))
}
