package request_code

import "github.com/m04kA/SMC-PoolBooking/internal/domain"

// RequestCodeRequest HTTP request model
type RequestCodeRequest struct {
	Phone string `json:"phone"`
}

// SessionResponse HTTP response model
type SessionResponse struct {
	SessionID string `json:"sessionId"`
	Phone     string `json:"phone"`
	State     string `json:"state"`
}

// FromDomainSession конвертирует сессию в HTTP response
func FromDomainSession(s *domain.VerificationSession) *SessionResponse {
	return &SessionResponse{
		SessionID: s.ID,
		Phone:     s.Phone,
		State:     string(s.State),
	}
}
