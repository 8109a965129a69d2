package create_booking

import "time"

// Request модель запроса на бронирование.
// Code можно не передавать, если сессия уже подтверждена
type Request struct {
	SessionID     string
	Code          string
	AppointmentID string
}

// SMSOptions параметры подтверждающего SMS
type SMSOptions struct {
	SenderID             string
	UseRecipientTimeZone string
	Location             *time.Location // часовой пояс бассейна для разбора времени CRM
}

// Step статусы шагов для метрик
const (
	stepStatusOK      = "ok"
	stepStatusError   = "error"
	stepStatusIgnored = "ignored"
)
