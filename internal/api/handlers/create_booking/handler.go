package create_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/agendahub/scheduling-service/internal/api/handlers"
	"github.com/agendahub/scheduling-service/internal/api/middleware"
	createBooking "github.com/agendahub/scheduling-service/internal/usecase/create_booking"
)

const (
	msgInvalidBody    = "corpo da requisição inválido"
	msgMissingTenant  = "tenant não autenticado"
	msgClientNotFound = "cliente não encontrado"
	msgServiceMissing = "serviço não encontrado"
	msgProfMissing    = "profissional não encontrado"
	msgPastDate       = "o horário solicitado já passou"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenant, ok := middleware.GetTenant(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing tenant in context")
		handlers.RespondUnauthorized(w, msgMissingTenant)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	ucReq, err := req.ToUseCaseRequest(tenant)
	if err != nil {
		h.logger.Warn("POST /bookings - Invalid request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), ucReq)
	if err != nil {
		var conflict *createBooking.ConflictError
		switch {
		case errors.As(err, &conflict):
			h.logger.Warn("POST /bookings - Slot conflict: tenant=%d, %d alternatives", tenant.ID, len(conflict.Alternatives))
			handlers.RespondConflict(w, formatAlternatives(conflict.Alternatives))

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBody)

		case errors.Is(err, createBooking.ErrPastDate):
			h.logger.Warn("POST /bookings - Start already elapsed: tenant=%d", tenant.ID)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, createBooking.ErrClientNotFound):
			handlers.RespondNotFound(w, msgClientNotFound)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceMissing)

		case errors.Is(err, createBooking.ErrProfessionalNotFound):
			handlers.RespondNotFound(w, msgProfMissing)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: tenant=%d, error=%v", tenant.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: tenant=%d, booking_id=%d, code=%s", tenant.ID, resp.ID, resp.Code)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(resp))
}

func formatAlternatives(alternatives []time.Time) []string {
	formatted := make([]string, 0, len(alternatives))
	for _, alt := range alternatives {
		formatted = append(formatted, alt.Format(time.RFC3339))
	}
	return formatted
}
