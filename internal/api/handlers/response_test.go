package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Phone string `json:"phone"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid", body: `{"phone":"79991234567"}`},
		{name: "empty", body: ``, wantErr: true},
		{name: "unknown field", body: `{"phone":"1","extra":true}`, wantErr: true},
		{name: "trailing object", body: `{"phone":"1"}{"phone":"2"}`, wantErr: true},
		{name: "broken", body: `{"phone":`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))

			var dst payload
			err := DecodeJSON(req, &dst)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "79991234567", dst.Phone)
		})
	}
}

func TestRespondErrorDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondErrorDetail(rec, http.StatusBadGateway, "ошибка", "Appointment is already taken")

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ошибка", body.Error)
	assert.Equal(t, "Appointment is already taken", body.Detail)
}

func TestRespondInternalError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondInternalError(rec)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"внутренняя ошибка сервера"}`, rec.Body.String())
}
