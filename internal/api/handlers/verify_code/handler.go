package verify_code

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-PoolBooking/internal/api/handlers"
	"github.com/m04kA/SMC-PoolBooking/internal/service/verification"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidCodeFormat   = "код должен состоять из 4 цифр"
	msgSessionNotFound     = "сессия не найдена, введите телефон заново"
	msgSessionExpired      = "сессия истекла, введите телефон заново"
	msgUpstreamUnavailable = "не удалось проверить код, попробуйте еще раз"
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

// Handle POST /api/v1/verification/sessions/{sessionId}/verify
// Неверный и отброшенный код возвращаются со статусом 200 и outcome в теле
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	var req VerifyCodeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /verification/sessions/{id}/verify - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.VerifyCode(r.Context(), sessionID, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, verification.ErrInvalidCodeFormat):
			h.logger.Warn("POST /verification/sessions/{id}/verify - Invalid code format: session_id=%s", sessionID)
			handlers.RespondBadRequest(w, msgInvalidCodeFormat)

		case errors.Is(err, verification.ErrSessionNotFound):
			h.logger.Warn("POST /verification/sessions/{id}/verify - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, verification.ErrSessionExpired):
			h.logger.Warn("POST /verification/sessions/{id}/verify - Session expired: session_id=%s", sessionID)
			handlers.RespondError(w, http.StatusGone, msgSessionExpired)

		case errors.Is(err, verification.ErrUpstreamUnavailable):
			h.logger.Error("POST /verification/sessions/{id}/verify - Upstream unavailable: session_id=%s, error=%v", sessionID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgUpstreamUnavailable)

		default:
			h.logger.Error("POST /verification/sessions/{id}/verify - Failed to verify: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /verification/sessions/{id}/verify - session_id=%s, outcome=%s", sessionID, result.Outcome)
	handlers.RespondJSON(w, http.StatusOK, FromVerifyResult(sessionID, result))
}
