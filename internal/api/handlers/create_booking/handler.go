package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-PoolBooking/internal/api/handlers"
	"github.com/m04kA/SMC-PoolBooking/internal/service/verification"
	createBooking "github.com/m04kA/SMC-PoolBooking/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidInput        = "укажите сессию, прием и 4-значный код"
	msgSessionNotFound     = "сессия не найдена, введите телефон заново"
	msgSessionExpired      = "сессия истекла, введите телефон заново"
	msgSubmissionIgnored   = "запрос уже обрабатывается или этот код уже был отклонен"
	msgUpstreamUnavailable = "не удалось проверить код, попробуйте еще раз"
	msgSetPassword         = "не удалось авторизоваться в системе записи, введите телефон заново"
	msgClientProfile       = "не удалось получить профиль клиента, введите телефон заново"
	msgBooking             = "не удалось записаться на выбранное время"
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
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		var bookingErr *createBooking.BookingError

		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: session_id=%s, error=%v", req.SessionID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrSessionNotFound):
			h.logger.Warn("POST /bookings - Session not found: session_id=%s", req.SessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, createBooking.ErrSessionExpired):
			h.logger.Warn("POST /bookings - Session expired: session_id=%s", req.SessionID)
			handlers.RespondError(w, http.StatusGone, msgSessionExpired)

		case errors.Is(err, createBooking.ErrInvalidCode):
			h.logger.Warn("POST /bookings - Invalid code: session_id=%s", req.SessionID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, verification.MsgInvalidCode)

		case errors.Is(err, createBooking.ErrSubmissionIgnored):
			h.logger.Info("POST /bookings - Submission ignored: session_id=%s", req.SessionID)
			handlers.RespondError(w, http.StatusConflict, msgSubmissionIgnored)

		case errors.Is(err, createBooking.ErrUpstreamUnavailable):
			h.logger.Error("POST /bookings - Upstream unavailable: session_id=%s, error=%v", req.SessionID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgUpstreamUnavailable)

		case errors.As(err, &bookingErr):
			h.logger.Warn("POST /bookings - Step %s failed: session_id=%s, detail=%s",
				bookingErr.Step, req.SessionID, bookingErr.Detail)
			handlers.RespondErrorDetail(w, http.StatusBadGateway, stepMessage(bookingErr), bookingErr.Detail)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: session_id=%s, error=%v", req.SessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: session_id=%s, appointment_id=%s, sms=%s",
		req.SessionID, result.Appointment.ID, result.SMSNotificationStatus)
	handlers.RespondJSON(w, http.StatusCreated, FromDomainOutcome(result))
}

func stepMessage(err *createBooking.BookingError) string {
	switch {
	case errors.Is(err, createBooking.ErrSetPassword):
		return msgSetPassword
	case errors.Is(err, createBooking.ErrClientProfile):
		return msgClientProfile
	default:
		return msgBooking
	}
}
