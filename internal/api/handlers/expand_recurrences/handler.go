package expand_recurrences

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/agendahub/scheduling-service/internal/api/handlers"
	"github.com/agendahub/scheduling-service/internal/jobs/recurrence"
	expand "github.com/agendahub/scheduling-service/internal/usecase/expand_recurrences"
)

const (
	msgInvalidTenantID = "tenant_id inválido"
	msgInvalidHorizon  = "horizon_days inválido"
	msgRunInProgress   = "uma expansão já está em andamento"
	msgTenantNotFound  = "tenant não encontrado"
)

type Handler struct {
	runner RecurrenceRunner
	logger Logger
}

func NewHandler(runner RecurrenceRunner, logger Logger) *Handler {
	return &Handler{
		runner: runner,
		logger: logger,
	}
}

// Handle POST /internal/recurrences/expand?tenant_id=&horizon_days=
//
// Operational endpoint: triggers the same run the scheduler performs.
// Without tenant_id it expands every tenant's active rules.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var tenantID *int64
	if raw := query.Get("tenant_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidTenantID)
			return
		}
		tenantID = &id
	}

	horizonDays := 0
	if raw := query.Get("horizon_days"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days < 0 {
			handlers.RespondBadRequest(w, msgInvalidHorizon)
			return
		}
		horizonDays = days
	}

	result, err := h.runner.Run(r.Context(), tenantID, horizonDays)
	if err != nil {
		switch {
		case errors.Is(err, recurrence.ErrRunInProgress):
			handlers.RespondJSON(w, http.StatusConflict, handlers.ErrorResponse{
				Error:   "run_in_progress",
				Message: msgRunInProgress,
			})
		case errors.Is(err, expand.ErrTenantNotFound):
			handlers.RespondNotFound(w, msgTenantNotFound)
		default:
			h.logger.Error("POST /recurrences/expand - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /recurrences/expand - Done: rules=%d, created=%d, skipped=%d, errors=%d",
		result.Rules, result.Created, result.Skipped, result.Errors)
	handlers.RespondJSON(w, http.StatusOK, result)
}
