package models

import (
	"time"

	"github.com/m04kA/SMC-PoolBooking/internal/domain"
)

const (
	// DefaultHistoryLimit количество записей истории по умолчанию
	DefaultHistoryLimit = 20
	// MaxHistoryLimit максимальное количество записей истории
	MaxHistoryLimit = 100
)

// Request модели

// GetHistoryRequest запрос истории бронирований по подтвержденной сессии
type GetHistoryRequest struct {
	SessionID string `json:"sessionId"`
	Limit     int    `json:"limit,omitempty"`
}

// Response модели

// AttemptResponse одна попытка бронирования
type AttemptResponse struct {
	ID            int64     `json:"id"`
	AppointmentID string    `json:"appointmentId"`
	Step          string    `json:"step"`
	Success       bool      `json:"success"`
	ErrorText     *string   `json:"errorText,omitempty"`
	SMSStatus     *string   `json:"smsStatus,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// AttemptListResponse ответ со списком попыток
type AttemptListResponse struct {
	Phone    string            `json:"phone"`
	Attempts []AttemptResponse `json:"attempts"`
}

// Методы конвертации

// FromDomainAttempt конвертирует domain модель в DTO
func FromDomainAttempt(a *domain.BookingAttempt) *AttemptResponse {
	if a == nil {
		return nil
	}

	resp := &AttemptResponse{
		ID:            a.ID,
		AppointmentID: a.AppointmentID,
		Step:          string(a.Step),
		Success:       a.Success,
		CreatedAt:     a.CreatedAt,
	}

	if a.ErrorText != "" {
		text := a.ErrorText
		resp.ErrorText = &text
	}
	if a.SMSStatus != "" {
		status := string(a.SMSStatus)
		resp.SMSStatus = &status
	}

	return resp
}

// FromDomainAttemptList конвертирует список domain моделей в DTO
func FromDomainAttemptList(phone string, attempts []*domain.BookingAttempt) *AttemptListResponse {
	resp := &AttemptListResponse{
		Phone:    phone,
		Attempts: make([]AttemptResponse, 0, len(attempts)),
	}

	for _, attempt := range attempts {
		if attemptResp := FromDomainAttempt(attempt); attemptResp != nil {
			resp.Attempts = append(resp.Attempts, *attemptResp)
		}
	}

	return resp
}
