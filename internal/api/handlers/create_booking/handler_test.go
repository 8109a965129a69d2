package create_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PoolBooking/internal/api/handlers"
	"github.com/m04kA/SMC-PoolBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-PoolBooking/internal/usecase/create_booking"
)

type MockUseCase struct {
	mock.Mock
}

func (m *MockUseCase) Execute(ctx context.Context, req *createBooking.Request) (*domain.BookingOutcome, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingOutcome), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const requestBody = `{"sessionId":"s1","code":"1234","appointmentId":"a1"}`

func TestHandler_Handle(t *testing.T) {
	start := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	useCase := new(MockUseCase)
	useCase.On("Execute", mock.Anything, &createBooking.Request{SessionID: "s1", Code: "1234", AppointmentID: "a1"}).
		Return(&domain.BookingOutcome{
			Appointment:           domain.BookedAppointment{ID: "a1", Title: "Свободное плавание", StartAt: &start},
			Customer:              domain.Customer{FirstName: "Иван", Phone: "79991234567"},
			SMSNotificationStatus: domain.SMSStatusSent,
		}, nil)

	h := NewHandler(useCase, nopLogger{})
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(requestBody)))

	require.Equal(t, http.StatusCreated, rec.Code)

	var body BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "a1", body.Appointment.ID)
	require.NotNil(t, body.Appointment.StartAt)
	assert.Equal(t, "2025-06-02T09:00:00Z", *body.Appointment.StartAt)
	assert.Equal(t, "Иван", body.Customer.FirstName)
	assert.Equal(t, "sent", body.SMSNotificationStatus)
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
		wantDetail string
	}{
		{name: "invalid input", err: createBooking.ErrInvalidInput, wantStatus: http.StatusBadRequest, wantError: msgInvalidInput},
		{name: "not found", err: createBooking.ErrSessionNotFound, wantStatus: http.StatusNotFound, wantError: msgSessionNotFound},
		{name: "expired", err: createBooking.ErrSessionExpired, wantStatus: http.StatusGone, wantError: msgSessionExpired},
		{name: "invalid code", err: createBooking.ErrInvalidCode, wantStatus: http.StatusUnprocessableEntity, wantError: "неверный код"},
		{name: "ignored", err: createBooking.ErrSubmissionIgnored, wantStatus: http.StatusConflict, wantError: msgSubmissionIgnored},
		{name: "upstream", err: createBooking.ErrUpstreamUnavailable, wantStatus: http.StatusBadGateway, wantError: msgUpstreamUnavailable},
		{
			name:       "set password",
			err:        &createBooking.BookingError{Step: domain.BookingStepSetPassword, Err: createBooking.ErrSetPassword, Detail: "token expired"},
			wantStatus: http.StatusBadGateway,
			wantError:  msgSetPassword,
			wantDetail: "token expired",
		},
		{
			name:       "book raw text",
			err:        &createBooking.BookingError{Step: domain.BookingStepBook, Err: createBooking.ErrBooking, Detail: "Appointment is already taken"},
			wantStatus: http.StatusBadGateway,
			wantError:  msgBooking,
			wantDetail: "Appointment is already taken",
		},
		{name: "internal", err: createBooking.ErrInternal, wantStatus: http.StatusInternalServerError, wantError: "внутренняя ошибка сервера"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useCase := new(MockUseCase)
			useCase.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			h := NewHandler(useCase, nopLogger{})
			rec := httptest.NewRecorder()
			h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(requestBody)))

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantError, body.Error)
			assert.Equal(t, tt.wantDetail, body.Detail)
		})
	}
}

func TestHandler_Handle_InvalidBody(t *testing.T) {
	useCase := new(MockUseCase)
	h := NewHandler(useCase, nopLogger{})

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(`{"sessionId":1}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	useCase.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}
