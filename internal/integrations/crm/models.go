package crm

import (
	"bytes"
	"encoding/json"
	"strings"
)

// FlexString строка, которая в JSON может прийти как число
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

func (f FlexString) String() string {
	return string(f)
}

// SlotsResponse ответ GET /api/slots
type SlotsResponse struct {
	Slots []Slot `json:"slots"`
}

// Slot запись о приеме из CRM
type Slot struct {
	AppointmentID FlexString `json:"appointment_id"`
	StartDate     string     `json:"start_date"`
	ServiceID     FlexString `json:"service_id"`
	Location      string     `json:"location,omitempty"`
	Title         string     `json:"title,omitempty"`
}

// ConfirmPhoneRequest тело POST /api/confirm_phone
type ConfirmPhoneRequest struct {
	Phone            string `json:"phone"`
	ConfirmationCode string `json:"confirmation_code,omitempty"`
	RequestID        string `json:"request_id"`
	Method           string `json:"method"`
}

// ConfirmPhoneResponse ответ confirm_phone: токен может быть на верхнем уровне или в data
type ConfirmPhoneResponse struct {
	PassToken string `json:"pass_token"`
	Data      *struct {
		PassToken string `json:"pass_token"`
	} `json:"data"`
}

// Token возвращает pass_token с любого уровня вложенности
func (r *ConfirmPhoneResponse) Token() string {
	if r.PassToken != "" {
		return r.PassToken
	}
	if r.Data != nil {
		return r.Data.PassToken
	}
	return ""
}

// SetPasswordRequest тело POST /api/set_password
type SetPasswordRequest struct {
	Phone     string `json:"phone"`
	PassToken string `json:"pass_token"`
}

type tokenFields struct {
	UserToken      string `json:"usertoken"`
	UserTokenSnake string `json:"user_token"`
	Token          string `json:"token"`
}

func (t tokenFields) first() string {
	for _, v := range []string{t.UserToken, t.UserTokenSnake, t.Token} {
		if v != "" {
			return v
		}
	}
	return ""
}

// SetPasswordResponse ответ set_password, токен пользователя опционален
type SetPasswordResponse struct {
	tokenFields
	Data *tokenFields `json:"data"`
}

// UserToken возвращает токен пользователя, если CRM его вернула
func (r *SetPasswordResponse) UserToken() string {
	if v := r.tokenFields.first(); v != "" {
		return v
	}
	if r.Data != nil {
		return r.Data.first()
	}
	return ""
}

// UserTokenRequest тело запросов, авторизованных токеном пользователя
type UserTokenRequest struct {
	UserToken string `json:"usertoken"`
}

// ClientProfile профиль клиента. Все поля опциональны
type ClientProfile struct {
	ID      FlexString `json:"id"`
	Name    string     `json:"name"`
	Surname string     `json:"surname"`
	Phone   FlexString `json:"phone"`
}

// BookRequest тело POST /api/book
type BookRequest struct {
	AppointmentID string `json:"appointment_id"`
	UserToken     string `json:"usertoken"`
}

// BookResponse ответ book: { data: { data: { appointment, customer } } }
type BookResponse struct {
	Data struct {
		Data struct {
			Appointment BookedAppointment `json:"appointment"`
			Customer    BookedCustomer    `json:"customer"`
		} `json:"data"`
	} `json:"data"`
}

// BookedAppointment забронированный прием
type BookedAppointment struct {
	ID            FlexString `json:"id"`
	AppointmentID FlexString `json:"appointment_id"`
	Title         string     `json:"title"`
	Name          string     `json:"name"`
	StartDate     string     `json:"start_date"`
	Start         string     `json:"start"`
}

// Identifier возвращает идентификатор приема
func (a *BookedAppointment) Identifier() string {
	return firstNonEmpty(a.AppointmentID.String(), a.ID.String())
}

// DisplayTitle возвращает название приема
func (a *BookedAppointment) DisplayTitle() string {
	return firstNonEmpty(a.Title, a.Name)
}

// StartValue возвращает время начала в формате CRM
func (a *BookedAppointment) StartValue() string {
	return firstNonEmpty(a.StartDate, a.Start)
}

// BookedCustomer клиент, на которого оформлена запись
type BookedCustomer struct {
	FirstName  string     `json:"first_name"`
	Name       string     `json:"name"`
	LastName   string     `json:"last_name"`
	Surname    string     `json:"surname"`
	Patronymic string     `json:"patronymic"`
	MiddleName string     `json:"middle_name"`
	Phone      FlexString `json:"phone"`
}

func (c *BookedCustomer) First() string  { return firstNonEmpty(c.FirstName, c.Name) }
func (c *BookedCustomer) Last() string   { return firstNonEmpty(c.LastName, c.Surname) }
func (c *BookedCustomer) Middle() string { return firstNonEmpty(c.Patronymic, c.MiddleName) }

// errorBody возможные формы JSON-ошибки CRM
type errorBody struct {
	Error   json.RawMessage `json:"error"`
	Message string          `json:"message"`
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
