package get_booking_history

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-PoolBooking/internal/api/handlers"
	"github.com/m04kA/SMC-PoolBooking/internal/service/bookings"
	"github.com/m04kA/SMC-PoolBooking/internal/service/bookings/models"
)

const (
	msgInvalidLimit    = "некорректный параметр limit"
	msgInvalidParams   = "некорректные параметры запроса"
	msgSessionNotFound = "сессия не найдена"
	msgAccessDenied    = "сначала подтвердите телефон кодом из SMS"
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

// Handle GET /api/v1/verification/sessions/{sessionId}/bookings
// Query params: limit (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	req := &models.GetHistoryRequest{SessionID: sessionID}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			h.logger.Warn("GET /verification/sessions/{id}/bookings - Invalid limit: %v", err)
			handlers.RespondBadRequest(w, msgInvalidLimit)
			return
		}
		req.Limit = limit
	}

	result, err := h.service.GetHistory(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /verification/sessions/{id}/bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, bookings.ErrSessionNotFound):
			h.logger.Warn("GET /verification/sessions/{id}/bookings - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /verification/sessions/{id}/bookings - Access denied: session_id=%s", sessionID)
			handlers.RespondError(w, http.StatusForbidden, msgAccessDenied)

		default:
			h.logger.Error("GET /verification/sessions/{id}/bookings - Failed to get history: session_id=%s, error=%v",
				sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /verification/sessions/{id}/bookings - Found %d attempts: session_id=%s",
		len(result.Attempts), sessionID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
