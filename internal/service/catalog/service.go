// Package catalog exposes the read-only tenant catalog: services,
// professionals, working hours and special dates. The bot collaborator
// enumerates these when composing replies.
package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/agendahub/scheduling-service/internal/service/catalog/models"
)

// Service lists the tenant catalog.
type Service struct {
	catalogRepo  CatalogRepository
	scheduleRepo ScheduleRepository
	logger       Logger
}

// NewService creates a catalog service.
func NewService(catalogRepo CatalogRepository, scheduleRepo ScheduleRepository, logger Logger) *Service {
	return &Service{
		catalogRepo:  catalogRepo,
		scheduleRepo: scheduleRepo,
		logger:       logger,
	}
}

// ListServices returns the tenant's active services.
func (s *Service) ListServices(ctx context.Context, tenantID int64) (*models.ServiceListResponse, error) {
	list, err := s.catalogRepo.ListActiveServices(ctx, tenantID)
	if err != nil {
		s.logger.Error("ListServices: repository error for tenant=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: ListServices - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainServices(list), nil
}

// ListProfessionals returns the tenant's active professionals.
func (s *Service) ListProfessionals(ctx context.Context, tenantID int64) (*models.ProfessionalListResponse, error) {
	list, err := s.catalogRepo.ListActiveProfessionals(ctx, tenantID)
	if err != nil {
		s.logger.Error("ListProfessionals: repository error for tenant=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: ListProfessionals - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainProfessionals(list), nil
}

// ListWorkingHours returns the tenant's weekly schedule.
func (s *Service) ListWorkingHours(ctx context.Context, tenantID int64) (*models.WorkingHoursListResponse, error) {
	list, err := s.scheduleRepo.ListWorkingHours(ctx, tenantID)
	if err != nil {
		s.logger.Error("ListWorkingHours: repository error for tenant=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: ListWorkingHours - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainWorkingHours(list), nil
}

// ListSpecialDates returns the tenant's calendar overrides in [from, to].
func (s *Service) ListSpecialDates(ctx context.Context, tenantID int64, from, to *time.Time) (*models.SpecialDateListResponse, error) {
	if from != nil && to != nil && to.Before(*from) {
		s.logger.Warn("ListSpecialDates: inverted period for tenant=%d", tenantID)
		return nil, fmt.Errorf("%w: period end before start", ErrInvalidInput)
	}

	list, err := s.scheduleRepo.ListSpecialDates(ctx, tenantID, from, to)
	if err != nil {
		s.logger.Error("ListSpecialDates: repository error for tenant=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: ListSpecialDates - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainSpecialDates(list), nil
}
