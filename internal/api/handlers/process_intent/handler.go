package process_intent

import (
	"net/http"

	"github.com/agendahub/scheduling-service/internal/api/handlers"
	"github.com/agendahub/scheduling-service/internal/api/middleware"
)

const (
	msgMissingTenant = "tenant não autenticado"
	msgInvalidBody   = "corpo da requisição inválido"
)

type Handler struct {
	useCase ProcessIntentUseCase
	logger  Logger
}

func NewHandler(useCase ProcessIntentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bot/commands
//
// Domain failures come back as 200 with success=false so the bot can
// forward the message as-is. Only transport and internal failures use
// HTTP error statuses.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenant, ok := middleware.GetTenant(r.Context())
	if !ok {
		h.logger.Warn("POST /bot/commands - Missing tenant in context")
		handlers.RespondUnauthorized(w, msgMissingTenant)
		return
	}

	req := &BotCommandRequest{}
	if err := handlers.DecodeJSON(r, req); err != nil {
		h.logger.Warn("POST /bot/commands - Invalid body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(tenant))
	if err != nil {
		h.logger.Error("POST /bot/commands - Failed: tenant=%d, intent=%s, error=%v", tenant.ID, req.Intent, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
