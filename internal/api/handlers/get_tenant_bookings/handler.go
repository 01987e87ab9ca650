package get_tenant_bookings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/agendahub/scheduling-service/internal/api/handlers"
	"github.com/agendahub/scheduling-service/internal/api/middleware"
	"github.com/agendahub/scheduling-service/internal/domain"
	"github.com/agendahub/scheduling-service/internal/service/bookings"
	"github.com/agendahub/scheduling-service/internal/service/bookings/models"
)

const (
	msgMissingTenant = "tenant não autenticado"
	msgInvalidFilter = "filtro inválido, verifique datas e status"
)

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings?start_date=&end_date=&professional_id=&client_id=&status=&include_inactive=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenant, ok := middleware.GetTenant(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings - Missing tenant in context")
		handlers.RespondUnauthorized(w, msgMissingTenant)
		return
	}

	req, err := parseFilter(r, tenant.ID)
	if err != nil {
		h.logger.Warn("GET /bookings - Invalid filter for tenant=%d: %v", tenant.ID, err)
		handlers.RespondBadRequest(w, msgInvalidFilter)
		return
	}

	list, err := h.service.GetTenantBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidFilter)
		default:
			h.logger.Error("GET /bookings - Failed: tenant=%d, error=%v", tenant.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list)
}

func parseFilter(r *http.Request, tenantID int64) (*models.GetTenantBookingsRequest, error) {
	query := r.URL.Query()
	req := &models.GetTenantBookingsRequest{TenantID: tenantID}

	if raw := query.Get("start_date"); raw != "" {
		date, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, err
		}
		req.StartDate = &date
	}
	if raw := query.Get("end_date"); raw != "" {
		date, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, err
		}
		req.EndDate = &date
	}
	if raw := query.Get("professional_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		req.ProfessionalID = &id
	}
	if raw := query.Get("client_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		req.ClientID = &id
	}
	if raw := query.Get("status"); raw != "" {
		req.Status = &raw
	}
	if raw := query.Get("include_inactive"); raw != "" {
		include, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = include
	}

	return req, nil
}
