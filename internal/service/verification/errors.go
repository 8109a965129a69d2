package verification

import "errors"

var (
	// ErrInvalidPhone возвращается, когда номер не приводится к формату 7XXXXXXXXXX
	ErrInvalidPhone = errors.New("verification: invalid phone number")

	// ErrInvalidCodeFormat возвращается, когда код не из 4 цифр
	ErrInvalidCodeFormat = errors.New("verification: code must be 4 digits")

	// ErrSessionNotFound возвращается, когда сессия не найдена или истекла
	ErrSessionNotFound = errors.New("verification: session not found")

	// ErrSessionExpired возвращается, когда pass_token уже израсходован и нужно начать заново
	ErrSessionExpired = errors.New("verification: session expired, restart from phone entry")

	// ErrNotVerified возвращается при попытке использовать неподтвержденную сессию
	ErrNotVerified = errors.New("verification: session is not verified")

	// ErrSessionBusy возвращается, когда сессией уже владеет другая операция
	ErrSessionBusy = errors.New("verification: session is busy")

	// ErrCodeRequestFailed возвращается, когда CRM не отправила SMS-код
	ErrCodeRequestFailed = errors.New("verification: failed to request confirmation code")

	// ErrUpstreamUnavailable возвращается при недоступности CRM во время проверки кода
	ErrUpstreamUnavailable = errors.New("verification: upstream unavailable")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("verification: internal error")
)
