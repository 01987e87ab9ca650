// Package bookings implements the booking lifecycle: lookups, cancellation,
// confirmation and the terminal transitions (completed, no-show).
package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agendahub/scheduling-service/internal/domain"
	"github.com/agendahub/scheduling-service/internal/events"
	bookingRepo "github.com/agendahub/scheduling-service/internal/infra/storage/booking"
	"github.com/agendahub/scheduling-service/internal/service/bookings/models"
	"github.com/agendahub/scheduling-service/pkg/phone"
)

// Service handles booking lifecycle operations.
type Service struct {
	bookingRepo BookingRepository
	emitter     EventEmitter
	logger      Logger
}

// NewService creates a booking lifecycle service.
func NewService(bookingRepo BookingRepository, emitter EventEmitter, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		emitter:     emitter,
		logger:      logger,
	}
}

// GetByID fetches a tenant's booking.
func (s *Service) GetByID(ctx context.Context, tenantID, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for tenant=%d", id, tenantID)

	booking, err := s.bookingRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found for tenant=%d", id, tenantID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// GetActiveByCode locates a pending or confirmed booking by its chat code.
func (s *Service) GetActiveByCode(ctx context.Context, tenantID int64, code string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByCode(ctx, tenantID, code, domain.ActiveStatuses)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetActiveByCode: repository error for code=%s: %v", code, err)
		return nil, fmt.Errorf("%w: GetActiveByCode - repository error: %v", ErrInternal, err)
	}
	return booking, nil
}

// Cancel cancels a pending or confirmed booking. When req.Phone is set the
// caller must be the booking's client: the phones are compared after
// normalization and a mismatch is an authorization failure.
func (s *Service) Cancel(ctx context.Context, tenantID, bookingID int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d for tenant=%d", bookingID, tenantID)

	booking, err := s.bookingRepo.GetByID(ctx, tenantID, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found for tenant=%d", bookingID, tenantID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if req.Phone != nil && !phone.Match(*req.Phone, booking.ClientPhone) {
		s.logger.Warn("Cancel: phone mismatch for booking id=%d", bookingID)
		return nil, ErrAccessDenied
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return nil, ErrCannotCancel
	}

	if err := s.updateStatus(ctx, tenantID, bookingID, domain.StatusCancelled); err != nil {
		return nil, err
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	booking.Status = domain.StatusCancelled
	return models.FromDomainBooking(booking), nil
}

// Confirm moves a pending booking to confirmed.
func (s *Service) Confirm(ctx context.Context, tenantID, bookingID int64) (*models.BookingResponse, error) {
	s.logger.Info("Confirm: confirming booking id=%d for tenant=%d", bookingID, tenantID)

	booking, err := s.bookingRepo.GetByID(ctx, tenantID, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Confirm: booking id=%d not found for tenant=%d", bookingID, tenantID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Confirm: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Confirm - repository error: %v", ErrInternal, err)
	}

	if !booking.CanBeConfirmed() {
		s.logger.Warn("Confirm: booking id=%d cannot be confirmed, status=%s", bookingID, booking.Status)
		return nil, ErrCannotConfirm
	}

	if err := s.updateStatus(ctx, tenantID, bookingID, domain.StatusConfirmed); err != nil {
		return nil, err
	}

	s.logger.Info("Confirm: successfully confirmed booking id=%d", bookingID)
	booking.Status = domain.StatusConfirmed
	return models.FromDomainBooking(booking), nil
}

// UpdateStatus applies a terminal transition (completed or no_show) to an
// active booking. Completing emits the BookingCompleted event.
func (s *Service) UpdateStatus(ctx context.Context, tenantID, bookingID int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: booking id=%d to status=%s for tenant=%d", bookingID, req.Status, tenantID)

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}
	if newStatus != domain.StatusCompleted && newStatus != domain.StatusNoShow {
		s.logger.Warn("UpdateStatus: status=%s is not a terminal transition", newStatus)
		return nil, ErrInvalidStatus
	}

	booking, err := s.bookingRepo.GetByID(ctx, tenantID, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found for tenant=%d", bookingID, tenantID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	if !booking.IsActive() {
		s.logger.Warn("UpdateStatus: booking id=%d is not active, status=%s", bookingID, booking.Status)
		return nil, ErrInvalidStatus
	}

	if err := s.bookingRepo.Complete(ctx, tenantID, bookingID, newStatus, req.ChargedAmount); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	booking.Status = newStatus
	if req.ChargedAmount != nil {
		booking.ChargedAmount = req.ChargedAmount
	}

	if newStatus == domain.StatusCompleted {
		s.emitter.EmitBookingCompleted(events.BookingCompleted{
			TenantID:      booking.TenantID,
			BookingID:     booking.ID,
			ClientID:      booking.ClientID,
			ServiceID:     booking.ServiceID,
			ChargedAmount: booking.ChargedAmount,
			CompletedAt:   time.Now(),
		})
	}

	s.logger.Info("UpdateStatus: booking id=%d moved to status=%s", bookingID, newStatus)
	return models.FromDomainBooking(booking), nil
}

// GetTenantBookings lists a tenant's bookings with period/status filters.
func (s *Service) GetTenantBookings(ctx context.Context, req *models.GetTenantBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetTenantBookings: tenant=%d", req.TenantID)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetTenantBookings: invalid filter for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	list, err := s.bookingRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetTenantBookings: repository error for tenant=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: GetTenantBookings - repository error: %v", ErrInternal, err)
	}

	activeCount := countActive(list)
	if req.StartDate != nil && req.EndDate != nil {
		activeCount, err = s.bookingRepo.CountActiveInPeriod(ctx, req.TenantID, *req.StartDate, req.EndDate.AddDate(0, 0, 1))
		if err != nil {
			s.logger.Error("GetTenantBookings: count error for tenant=%d: %v", req.TenantID, err)
			return nil, fmt.Errorf("%w: GetTenantBookings - count error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("GetTenantBookings: fetched %d bookings for tenant=%d", len(list), req.TenantID)
	return models.FromDomainBookingList(list, activeCount), nil
}

// GetClientBookings lists one client's bookings, optionally by status.
func (s *Service) GetClientBookings(ctx context.Context, tenantID, clientID int64, status *string) (*models.BookingListResponse, error) {
	s.logger.Info("GetClientBookings: tenant=%d client=%d", tenantID, clientID)

	req := &models.GetTenantBookingsRequest{
		TenantID:        tenantID,
		ClientID:        &clientID,
		Status:          status,
		IncludeInactive: true,
	}
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetClientBookings: invalid status for client=%d: %v", clientID, err)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	list, err := s.bookingRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetClientBookings: repository error for client=%d: %v", clientID, err)
		return nil, fmt.Errorf("%w: GetClientBookings - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(list, countActive(list)), nil
}

func (s *Service) updateStatus(ctx context.Context, tenantID, bookingID int64, status domain.BookingStatus) error {
	if err := s.bookingRepo.UpdateStatus(ctx, tenantID, bookingID, status); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("updateStatus: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: updateStatus - repository error: %v", ErrInternal, err)
	}
	return nil
}

func countActive(list []*domain.Booking) int {
	count := 0
	for _, b := range list {
		if b.IsActive() {
			count++
		}
	}
	return count
}
