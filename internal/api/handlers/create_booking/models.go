package create_booking

import (
	"time"

	"github.com/m04kA/SMC-PoolBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-PoolBooking/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	SessionID     string `json:"sessionId"`
	Code          string `json:"code,omitempty"` // не нужен, если сессия уже подтверждена
	AppointmentID string `json:"appointmentId"`
}

// AppointmentResponse забронированный прием
type AppointmentResponse struct {
	ID      string  `json:"id"`
	Title   string  `json:"title,omitempty"`
	StartAt *string `json:"startAt,omitempty"` // RFC 3339
	RawTime string  `json:"rawTime,omitempty"`
}

// CustomerResponse клиент записи
type CustomerResponse struct {
	FirstName  string `json:"firstName,omitempty"`
	LastName   string `json:"lastName,omitempty"`
	Patronymic string `json:"patronymic,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	Appointment           AppointmentResponse `json:"appointment"`
	Customer              CustomerResponse    `json:"customer"`
	SMSNotificationStatus string              `json:"smsNotificationStatus"`
	SMSDetail             string              `json:"smsDetail,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() *createBooking.Request {
	return &createBooking.Request{
		SessionID:     r.SessionID,
		Code:          r.Code,
		AppointmentID: r.AppointmentID,
	}
}

// FromDomainOutcome конвертирует результат транзакции в HTTP response
func FromDomainOutcome(o *domain.BookingOutcome) *BookingResponse {
	resp := &BookingResponse{
		Appointment: AppointmentResponse{
			ID:      o.Appointment.ID,
			Title:   o.Appointment.Title,
			RawTime: o.Appointment.RawTime,
		},
		Customer: CustomerResponse{
			FirstName:  o.Customer.FirstName,
			LastName:   o.Customer.LastName,
			Patronymic: o.Customer.Patronymic,
			Phone:      o.Customer.Phone,
		},
		SMSNotificationStatus: string(o.SMSNotificationStatus),
		SMSDetail:             o.SMSDetail,
	}

	if o.Appointment.StartAt != nil {
		start := o.Appointment.StartAt.Format(time.RFC3339)
		resp.Appointment.StartAt = &start
	}

	return resp
}
