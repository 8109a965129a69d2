package verify_code

import "github.com/m04kA/SMC-PoolBooking/internal/service/verification"

// VerifyCodeRequest HTTP request model
type VerifyCodeRequest struct {
	Code string `json:"code"`
}

// VerifyCodeResponse HTTP response model
type VerifyCodeResponse struct {
	SessionID string `json:"sessionId"`
	Outcome   string `json:"outcome"` // verified | rejected | dropped
	State     string `json:"state,omitempty"`
	Message   string `json:"message,omitempty"`
}

// FromVerifyResult конвертирует результат проверки в HTTP response
func FromVerifyResult(sessionID string, result *verification.VerifyResult) *VerifyCodeResponse {
	resp := &VerifyCodeResponse{
		SessionID: sessionID,
		Outcome:   string(result.Outcome),
		Message:   result.Message,
	}
	if result.Session != nil {
		resp.State = string(result.Session.State)
	}
	return resp
}
