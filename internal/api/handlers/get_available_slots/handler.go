package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/agendahub/scheduling-service/internal/api/handlers"
	"github.com/agendahub/scheduling-service/internal/api/middleware"
	"github.com/agendahub/scheduling-service/internal/domain"
	availability "github.com/agendahub/scheduling-service/internal/usecase/get_available_slots"
	"github.com/agendahub/scheduling-service/pkg/ptr"
)

const (
	msgMissingTenant   = "tenant não autenticado"
	msgInvalidDate     = "data inválida, use o formato AAAA-MM-DD"
	msgInvalidService  = "service_id inválido"
	msgInvalidProf     = "professional_id inválido"
	msgInvalidGran     = "granularity inválida"
	msgServiceMissing  = "serviço não encontrado"
	msgProfMissing     = "profissional não encontrado"
	msgDateBeyondLimit = "data além do horizonte de agendamento"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability?date=2026-01-15&service_id=7&professional_id=3
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenant, ok := middleware.GetTenant(r.Context())
	if !ok {
		h.logger.Warn("GET /availability - Missing tenant in context")
		handlers.RespondUnauthorized(w, msgMissingTenant)
		return
	}

	query := r.URL.Query()

	date, err := time.Parse(domain.DateFormat, query.Get("date"))
	if err != nil {
		h.logger.Warn("GET /availability - Invalid date %q: %v", query.Get("date"), err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	serviceID, err := strconv.ParseInt(query.Get("service_id"), 10, 64)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid service_id %q", query.Get("service_id"))
		handlers.RespondBadRequest(w, msgInvalidService)
		return
	}

	req := &availability.Request{
		Tenant:    tenant,
		ServiceID: serviceID,
		Date:      date,
	}

	if raw := query.Get("professional_id"); raw != "" {
		professionalID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.logger.Warn("GET /availability - Invalid professional_id %q", raw)
			handlers.RespondBadRequest(w, msgInvalidProf)
			return
		}
		req.ProfessionalID = ptr.Ptr(professionalID)
	}

	if raw := query.Get("granularity"); raw != "" {
		granularity, err := strconv.Atoi(raw)
		if err != nil {
			h.logger.Warn("GET /availability - Invalid granularity %q", raw)
			handlers.RespondBadRequest(w, msgInvalidGran)
			return
		}
		req.Granularity = ptr.Ptr(granularity)
	}

	resp, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("GET /availability - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, availability.ErrDateTooFarInFuture):
			handlers.RespondBadRequest(w, msgDateBeyondLimit)

		case errors.Is(err, availability.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceMissing)

		case errors.Is(err, availability.ErrProfessionalNotFound):
			handlers.RespondNotFound(w, msgProfMissing)

		default:
			h.logger.Error("GET /availability - Failed: tenant=%d, error=%v", tenant.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability - %d slots for tenant=%d on %s", len(resp.Slots), tenant.ID, query.Get("date"))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(resp))
}
