package cancel_booking

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/agendahub/scheduling-service/internal/api/handlers"
	"github.com/agendahub/scheduling-service/internal/api/middleware"
	"github.com/agendahub/scheduling-service/internal/service/bookings"
	"github.com/agendahub/scheduling-service/internal/service/bookings/models"
)

const (
	msgMissingTenant   = "tenant não autenticado"
	msgInvalidID       = "identificador de agendamento inválido"
	msgInvalidBody     = "corpo da requisição inválido"
	msgBookingNotFound = "agendamento não encontrado"
	msgPhoneMismatch   = "o agendamento pertence a outro telefone"
	msgCannotCancel    = "o agendamento não pode mais ser cancelado"
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

// Handle POST /api/v1/bookings/{id}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenant, ok := middleware.GetTenant(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/cancel - Missing tenant in context")
		handlers.RespondUnauthorized(w, msgMissingTenant)
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	// The body is optional: staff cancellations send nothing.
	req := &models.CancelBookingRequest{}
	if err := handlers.DecodeJSON(r, req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("POST /bookings/{id}/cancel - Invalid body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	booking, err := h.service.Cancel(r.Context(), tenant.ID, id, req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)
		case errors.Is(err, bookings.ErrAccessDenied):
			handlers.RespondForbidden(w, msgPhoneMismatch)
		case errors.Is(err, bookings.ErrCannotCancel):
			handlers.RespondBadRequest(w, msgCannotCancel)
		default:
			h.logger.Error("POST /bookings/{id}/cancel - Failed: tenant=%d, id=%d, error=%v", tenant.ID, id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/cancel - Cancelled booking id=%d for tenant=%d", id, tenant.ID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
