package get_booking_history

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PoolBooking/internal/service/bookings"
	"github.com/m04kA/SMC-PoolBooking/internal/service/bookings/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) GetHistory(ctx context.Context, req *models.GetHistoryRequest) (*models.AttemptListResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AttemptListResponse), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newRequest(query string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/verification/sessions/s1/bookings"+query, nil)
	return mux.SetURLVars(req, map[string]string{"sessionId": "s1"})
}

func TestHandler_Handle(t *testing.T) {
	service := new(MockService)
	service.On("GetHistory", mock.Anything, &models.GetHistoryRequest{SessionID: "s1", Limit: 5}).
		Return(&models.AttemptListResponse{
			Phone:    "79991234567",
			Attempts: []models.AttemptResponse{{ID: 1, AppointmentID: "a1", Step: "book", Success: true}},
		}, nil)

	h := NewHandler(service, nopLogger{})
	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest("?limit=5"))

	require.Equal(t, http.StatusOK, rec.Code)

	var body models.AttemptListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "79991234567", body.Phone)
	require.Len(t, body.Attempts, 1)
	assert.Equal(t, "a1", body.Attempts[0].AppointmentID)
}

func TestHandler_Handle_InvalidLimit(t *testing.T) {
	service := new(MockService)
	h := NewHandler(service, nopLogger{})

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest("?limit=abc"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	service.AssertNotCalled(t, "GetHistory", mock.Anything, mock.Anything)
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "invalid input", err: bookings.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "not found", err: bookings.ErrSessionNotFound, wantStatus: http.StatusNotFound},
		{name: "access denied", err: bookings.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "internal", err: bookings.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(MockService)
			service.On("GetHistory", mock.Anything, mock.Anything).Return(nil, tt.err)

			h := NewHandler(service, nopLogger{})
			rec := httptest.NewRecorder()
			h.Handle(rec, newRequest(""))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
