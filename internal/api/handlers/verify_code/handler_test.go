package verify_code

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PoolBooking/internal/domain"
	"github.com/m04kA/SMC-PoolBooking/internal/service/verification"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) VerifyCode(ctx context.Context, sessionID, code string) (*verification.VerifyResult, error) {
	args := m.Called(ctx, sessionID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*verification.VerifyResult), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/verification/sessions/s1/verify", strings.NewReader(body))
	return mux.SetURLVars(req, map[string]string{"sessionId": "s1"})
}

func TestHandler_Handle_Outcomes(t *testing.T) {
	tests := []struct {
		name    string
		result  *verification.VerifyResult
		outcome string
		message string
	}{
		{
			name:    "verified",
			result:  &verification.VerifyResult{Outcome: verification.OutcomeVerified, Session: &domain.VerificationSession{State: domain.SessionStateVerified}},
			outcome: "verified",
		},
		{
			name:    "rejected",
			result:  &verification.VerifyResult{Outcome: verification.OutcomeRejected, Message: verification.MsgInvalidCode},
			outcome: "rejected",
			message: "неверный код",
		},
		{
			name:    "dropped",
			result:  &verification.VerifyResult{Outcome: verification.OutcomeDropped},
			outcome: "dropped",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(MockService)
			service.On("VerifyCode", mock.Anything, "s1", "1234").Return(tt.result, nil)

			h := NewHandler(service, nopLogger{})
			rec := httptest.NewRecorder()
			h.Handle(rec, newRequest(`{"code":"1234"}`))

			require.Equal(t, http.StatusOK, rec.Code)

			var body VerifyCodeResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "s1", body.SessionID)
			assert.Equal(t, tt.outcome, body.Outcome)
			assert.Equal(t, tt.message, body.Message)
		})
	}
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "format", err: verification.ErrInvalidCodeFormat, wantStatus: http.StatusBadRequest},
		{name: "not found", err: verification.ErrSessionNotFound, wantStatus: http.StatusNotFound},
		{name: "expired", err: verification.ErrSessionExpired, wantStatus: http.StatusGone},
		{name: "upstream", err: verification.ErrUpstreamUnavailable, wantStatus: http.StatusBadGateway},
		{name: "internal", err: verification.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(MockService)
			service.On("VerifyCode", mock.Anything, "s1", "12").Return(nil, tt.err)

			h := NewHandler(service, nopLogger{})
			rec := httptest.NewRecorder()
			h.Handle(rec, newRequest(`{"code":"12"}`))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
