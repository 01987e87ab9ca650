package update_booking_status

import (
	"errors"
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
	msgInvalidStatus   = "status deve ser completed ou no_show"
	msgBookingNotFound = "agendamento não encontrado"
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

// Handle PATCH /api/v1/bookings/{id}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenant, ok := middleware.GetTenant(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id}/status - Missing tenant in context")
		handlers.RespondUnauthorized(w, msgMissingTenant)
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	req := &models.UpdateStatusRequest{}
	if err := handlers.DecodeJSON(r, req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	booking, err := h.service.UpdateStatus(r.Context(), tenant.ID, id, req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)
		case errors.Is(err, bookings.ErrInvalidStatus), errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidStatus)
		default:
			h.logger.Error("PATCH /bookings/{id}/status - Failed: tenant=%d, id=%d, error=%v", tenant.ID, id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/status - Booking id=%d moved to %s for tenant=%d", id, booking.Status, tenant.ID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
