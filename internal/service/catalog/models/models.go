package models

import (
	"github.com/agendahub/scheduling-service/internal/domain"
)

// ServiceResponse is the bookable-offering DTO.
type ServiceResponse struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description,omitempty"`
	Price           *float64 `json:"price,omitempty"`
	DurationMinutes int      `json:"durationMinutes"`
}

// ServiceListResponse is the services list envelope.
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// ProfessionalResponse is the staff-member DTO.
type ProfessionalResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ProfessionalListResponse is the professionals list envelope.
type ProfessionalListResponse struct {
	Professionals []ProfessionalResponse `json:"professionals"`
}

// WorkingHoursResponse is one weekday's opening window.
type WorkingHoursResponse struct {
	Weekday    int     `json:"weekday"` // 0=Monday .. 6=Sunday
	OpenTime   string  `json:"openTime"`
	CloseTime  string  `json:"closeTime"`
	BreakStart *string `json:"breakStart,omitempty"`
	BreakEnd   *string `json:"breakEnd,omitempty"`
}

// WorkingHoursListResponse is the working-hours list envelope.
type WorkingHoursListResponse struct {
	WorkingHours []WorkingHoursResponse `json:"workingHours"`
}

// SpecialDateResponse is one calendar override.
type SpecialDateResponse struct {
	Date        string  `json:"date"` // YYYY-MM-DD
	Type        string  `json:"type"` // holiday | special_hours
	Description string  `json:"description,omitempty"`
	OpenTime    *string `json:"openTime,omitempty"`
	CloseTime   *string `json:"closeTime,omitempty"`
}

// SpecialDateListResponse is the special-dates list envelope.
type SpecialDateListResponse struct {
	SpecialDates []SpecialDateResponse `json:"specialDates"`
}

// Conversion helpers

// FromDomainServices converts domain services.
func FromDomainServices(list []*domain.Service) *ServiceListResponse {
	resp := &ServiceListResponse{Services: make([]ServiceResponse, 0, len(list))}
	for _, s := range list {
		resp.Services = append(resp.Services, ServiceResponse{
			ID:              s.ID,
			Name:            s.Name,
			Description:     s.Description,
			Price:           s.Price,
			DurationMinutes: s.DurationMinutes,
		})
	}
	return resp
}

// FromDomainProfessionals converts domain professionals.
func FromDomainProfessionals(list []*domain.Professional) *ProfessionalListResponse {
	resp := &ProfessionalListResponse{Professionals: make([]ProfessionalResponse, 0, len(list))}
	for _, p := range list {
		resp.Professionals = append(resp.Professionals, ProfessionalResponse{
			ID:   p.ID,
			Name: p.Name,
		})
	}
	return resp
}

// FromDomainWorkingHours converts domain working hours.
func FromDomainWorkingHours(list []*domain.WorkingHours) *WorkingHoursListResponse {
	resp := &WorkingHoursListResponse{WorkingHours: make([]WorkingHoursResponse, 0, len(list))}
	for _, wh := range list {
		item := WorkingHoursResponse{
			Weekday:   int(wh.Weekday),
			OpenTime:  wh.OpenTime.String(),
			CloseTime: wh.CloseTime.String(),
		}
		if wh.BreakStart != nil {
			v := wh.BreakStart.String()
			item.BreakStart = &v
		}
		if wh.BreakEnd != nil {
			v := wh.BreakEnd.String()
			item.BreakEnd = &v
		}
		resp.WorkingHours = append(resp.WorkingHours, item)
	}
	return resp
}

// FromDomainSpecialDates converts domain special dates.
func FromDomainSpecialDates(list []*domain.SpecialDate) *SpecialDateListResponse {
	resp := &SpecialDateListResponse{SpecialDates: make([]SpecialDateResponse, 0, len(list))}
	for _, sd := range list {
		item := SpecialDateResponse{
			Date:        sd.Date.Format(domain.DateFormat),
			Type:        string(sd.Type),
			Description: sd.Description,
		}
		if sd.OpenTime != nil {
			v := sd.OpenTime.String()
			item.OpenTime = &v
		}
		if sd.CloseTime != nil {
			v := sd.CloseTime.String()
			item.CloseTime = &v
		}
		resp.SpecialDates = append(resp.SpecialDates, item)
	}
	return resp
}
