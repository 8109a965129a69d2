package domain

import "time"

// SMSStatus is the outcome of the confirmation SMS
type SMSStatus string

const (
	SMSStatusSent    SMSStatus = "sent"
	SMSStatusFailed  SMSStatus = "failed"
	SMSStatusSkipped SMSStatus = "skipped-insufficient-data"
)

// BookingStep names one step of the booking transaction
type BookingStep string

const (
	BookingStepVerifyCode  BookingStep = "verify_code"
	BookingStepSetPassword BookingStep = "set_password"
	BookingStepClient      BookingStep = "client_profile"
	BookingStepBook        BookingStep = "book"
	BookingStepNotify      BookingStep = "notify"
)

// BookedAppointment is the appointment as echoed back by the CRM after booking
type BookedAppointment struct {
	ID      string
	Title   string
	StartAt *time.Time
	RawTime string // upstream value when it could not be parsed
}

// Customer is the client identity resolved by the CRM
type Customer struct {
	FirstName  string
	LastName   string
	Patronymic string
	Phone      string
}

// FullName returns the polite address form, first name and patronymic.
// LastName is left out on purpose
func (c *Customer) FullName() string {
	name := ""
	for _, part := range []string{c.FirstName, c.Patronymic} {
		if part == "" {
			continue
		}
		if name != "" {
			name += " "
		}
		name += part
	}
	return name
}

// BookingOutcome is the result of a successful booking transaction
type BookingOutcome struct {
	Appointment           BookedAppointment
	Customer              Customer
	SMSNotificationStatus SMSStatus
	SMSDetail             string
}

// BookingAttempt is one finished booking transaction, successful or not
type BookingAttempt struct {
	ID            int64
	SessionID     string
	Phone         string
	AppointmentID string
	Step          BookingStep // last step reached
	Success       bool
	ErrorText     string
	SMSStatus     SMSStatus
	CreatedAt     time.Time
}
