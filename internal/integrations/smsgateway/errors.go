package smsgateway

import "errors"

var (
	// ErrUnavailable возвращается при сетевой ошибке или таймауте
	ErrUnavailable = errors.New("sms gateway: unavailable")

	// ErrNotAccepted возвращается, когда шлюз не принял сообщение (статус не Enroute)
	ErrNotAccepted = errors.New("sms gateway: message not accepted")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("sms gateway: internal error")
)
