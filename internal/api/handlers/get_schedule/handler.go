package get_schedule

import (
	"errors"
	"net/http"
	"time"

	"github.com/agendahub/scheduling-service/internal/api/handlers"
	"github.com/agendahub/scheduling-service/internal/api/middleware"
	"github.com/agendahub/scheduling-service/internal/domain"
	"github.com/agendahub/scheduling-service/internal/service/catalog"
)

const (
	msgMissingTenant = "tenant não autenticado"
	msgInvalidPeriod = "período inválido, use o formato AAAA-MM-DD"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleWorkingHours GET /api/v1/schedule/working-hours
func (h *Handler) HandleWorkingHours(w http.ResponseWriter, r *http.Request) {
	tenant, ok := middleware.GetTenant(r.Context())
	if !ok {
		h.logger.Warn("GET /schedule/working-hours - Missing tenant in context")
		handlers.RespondUnauthorized(w, msgMissingTenant)
		return
	}

	list, err := h.service.ListWorkingHours(r.Context(), tenant.ID)
	if err != nil {
		h.logger.Error("GET /schedule/working-hours - Failed: tenant=%d, error=%v", tenant.ID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list)
}

// HandleSpecialDates GET /api/v1/schedule/special-dates?from=&to=
func (h *Handler) HandleSpecialDates(w http.ResponseWriter, r *http.Request) {
	tenant, ok := middleware.GetTenant(r.Context())
	if !ok {
		h.logger.Warn("GET /schedule/special-dates - Missing tenant in context")
		handlers.RespondUnauthorized(w, msgMissingTenant)
		return
	}

	query := r.URL.Query()
	var from, to *time.Time
	if raw := query.Get("from"); raw != "" {
		date, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidPeriod)
			return
		}
		from = &date
	}
	if raw := query.Get("to"); raw != "" {
		date, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidPeriod)
			return
		}
		to = &date
	}

	list, err := h.service.ListSpecialDates(r.Context(), tenant.ID, from, to)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidPeriod)
		default:
			h.logger.Error("GET /schedule/special-dates - Failed: tenant=%d, error=%v", tenant.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list)
}
