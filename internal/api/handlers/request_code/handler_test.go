package request_code

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PoolBooking/internal/domain"
	"github.com/m04kA/SMC-PoolBooking/internal/service/verification"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) RequestCode(ctx context.Context, rawPhone string) (*domain.VerificationSession, error) {
	args := m.Called(ctx, rawPhone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VerificationSession), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestHandler_Handle(t *testing.T) {
	service := new(MockService)
	service.On("RequestCode", mock.Anything, "8 999 123-45-67").Return(&domain.VerificationSession{
		ID: "s1", Phone: "79991234567", State: domain.SessionStateCodeRequested,
	}, nil)

	h := NewHandler(service, nopLogger{})
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/verification/sessions",
		strings.NewReader(`{"phone":"8 999 123-45-67"}`)))

	require.Equal(t, http.StatusCreated, rec.Code)

	var body SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "s1", body.SessionID)
	assert.Equal(t, "79991234567", body.Phone)
	assert.Equal(t, "code_requested", body.State)
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{name: "bad body", body: `{`, wantStatus: http.StatusBadRequest},
		{name: "invalid phone", body: `{"phone":"123"}`, err: verification.ErrInvalidPhone, wantStatus: http.StatusBadRequest},
		{name: "upstream", body: `{"phone":"79991234567"}`, err: verification.ErrCodeRequestFailed, wantStatus: http.StatusBadGateway},
		{name: "internal", body: `{"phone":"79991234567"}`, err: verification.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(MockService)
			if tt.err != nil {
				service.On("RequestCode", mock.Anything, mock.Anything).Return(nil, tt.err)
			}

			h := NewHandler(service, nopLogger{})
			rec := httptest.NewRecorder()
			h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/verification/sessions", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
