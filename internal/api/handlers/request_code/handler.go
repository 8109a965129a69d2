package request_code

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-PoolBooking/internal/api/handlers"
	"github.com/m04kA/SMC-PoolBooking/internal/service/verification"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidPhone       = "некорректный номер телефона, ожидается российский номер из 11 цифр"
	msgCodeRequestFailed  = "не удалось отправить SMS-код, попробуйте еще раз"
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

// Handle POST /api/v1/verification/sessions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req RequestCodeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /verification/sessions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	session, err := h.service.RequestCode(r.Context(), req.Phone)
	if err != nil {
		switch {
		case errors.Is(err, verification.ErrInvalidPhone):
			h.logger.Warn("POST /verification/sessions - Invalid phone")
			handlers.RespondBadRequest(w, msgInvalidPhone)

		case errors.Is(err, verification.ErrCodeRequestFailed):
			h.logger.Error("POST /verification/sessions - Code request failed: %v", err)
			handlers.RespondError(w, http.StatusBadGateway, msgCodeRequestFailed)

		default:
			h.logger.Error("POST /verification/sessions - Failed to create session: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /verification/sessions - Session created: session_id=%s", session.ID)
	handlers.RespondJSON(w, http.StatusCreated, FromDomainSession(session))
}
