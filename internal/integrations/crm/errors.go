package crm

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable возвращается, когда CRM недоступна (сетевая ошибка, таймаут)
	ErrUnavailable = errors.New("crm client: upstream unavailable")

	// ErrUpstream возвращается при ответе CRM со статусом не 2xx
	ErrUpstream = errors.New("crm client: upstream error")

	// ErrInvalidResponse возвращается при некорректном теле ответа
	ErrInvalidResponse = errors.New("crm client: invalid response")

	// ErrCodeRejected возвращается, когда CRM не выдала pass_token на код подтверждения
	ErrCodeRejected = errors.New("crm client: confirmation code rejected")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("crm client: internal error")
)

// UpstreamError ошибка CRM с сохранением исходного текста ответа
type UpstreamError struct {
	Operation  string
	StatusCode int
	Detail     string // текст ошибки из JSON или сырое тело ответа
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %s: status %d: %s", ErrUpstream.Error(), e.Operation, e.StatusCode, e.Detail)
}

func (e *UpstreamError) Unwrap() error {
	return ErrUpstream
}
