package confirm_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/agendahub/scheduling-service/internal/api/handlers"
	"github.com/agendahub/scheduling-service/internal/api/middleware"
	"github.com/agendahub/scheduling-service/internal/service/bookings"
)

const (
	msgMissingTenant   = "tenant não autenticado"
	msgInvalidID       = "identificador de agendamento inválido"
	msgBookingNotFound = "agendamento não encontrado"
	msgCannotConfirm   = "apenas agendamentos pendentes podem ser confirmados"
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

// Handle POST /api/v1/bookings/{id}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenant, ok := middleware.GetTenant(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/confirm - Missing tenant in context")
		handlers.RespondUnauthorized(w, msgMissingTenant)
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	booking, err := h.service.Confirm(r.Context(), tenant.ID, id)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)
		case errors.Is(err, bookings.ErrCannotConfirm):
			handlers.RespondBadRequest(w, msgCannotConfirm)
		default:
			h.logger.Error("POST /bookings/{id}/confirm - Failed: tenant=%d, id=%d, error=%v", tenant.ID, id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/confirm - Confirmed booking id=%d for tenant=%d", id, tenant.ID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
