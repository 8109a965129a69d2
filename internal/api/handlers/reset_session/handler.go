package reset_session

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-PoolBooking/internal/api/handlers"
)

type Handler struct {
	service VerificationService
	logger  Logger
}

func NewHandler(service VerificationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/verification/sessions/{sessionId}
// Идемпотентно: удаление несуществующей сессии тоже возвращает 204
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	if err := h.service.Reset(r.Context(), sessionID); err != nil {
		h.logger.Error("DELETE /verification/sessions/{id} - Failed to reset: session_id=%s, error=%v", sessionID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /verification/sessions/{id} - Session reset: session_id=%s", sessionID)
	handlers.RespondNoContent(w)
}
