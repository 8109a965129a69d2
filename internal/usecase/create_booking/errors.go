package create_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-PoolBooking/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrSessionNotFound возвращается, когда сессия подтверждения не найдена
	ErrSessionNotFound = errors.New("create_booking: session not found")

	// ErrSessionExpired возвращается, когда сессию нужно начинать заново с ввода телефона
	ErrSessionExpired = errors.New("create_booking: session expired")

	// ErrInvalidCode возвращается, когда CRM отклонила код подтверждения
	ErrInvalidCode = errors.New("create_booking: invalid confirmation code")

	// ErrSubmissionIgnored возвращается, когда отправка отброшена (повтор кода, проверка уже идет)
	ErrSubmissionIgnored = errors.New("create_booking: submission ignored")

	// ErrUpstreamUnavailable возвращается, когда проверка кода не состоялась из-за сетевой ошибки
	ErrUpstreamUnavailable = errors.New("create_booking: upstream unavailable")

	// ErrSetPassword возвращается при ошибке установки пароля по pass_token
	ErrSetPassword = errors.New("create_booking: set password failed")

	// ErrClientProfile возвращается при ошибке получения профиля клиента
	ErrClientProfile = errors.New("create_booking: client profile failed")

	// ErrBooking возвращается при ошибке бронирования приема
	ErrBooking = errors.New("create_booking: booking failed")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// BookingError ошибка шага транзакции с исходным текстом CRM
type BookingError struct {
	Step   domain.BookingStep
	Err    error
	Detail string
}

func (e *BookingError) Error() string {
	if e.Detail == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Detail)
}

func (e *BookingError) Unwrap() error {
	return e.Err
}
