package domain

import "time"

// SessionState is the state of a phone verification session
type SessionState string

const (
	SessionStateIdle          SessionState = "idle"
	SessionStateCodeRequested SessionState = "code_requested"
	SessionStateVerifying     SessionState = "verifying"
	SessionStateVerified      SessionState = "verified"
	SessionStateRejected      SessionState = "rejected"
	SessionStateBooking       SessionState = "booking" // pass token claimed by a booking transaction
	SessionStateCompleted     SessionState = "completed"
	SessionStateExpired       SessionState = "expired"
)

// VerificationSession is the ephemeral state of one booking attempt
type VerificationSession struct {
	ID             string          `json:"id"`
	Phone          string          `json:"phone"`
	RequestID      string          `json:"request_id"`
	State          SessionState    `json:"state"`
	AttemptedCodes map[string]bool `json:"attempted_codes"`
	PassToken      string          `json:"pass_token,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// NewVerificationSession creates a session waiting for a confirmation code
func NewVerificationSession(id, phone, requestID string, now time.Time) *VerificationSession {
	return &VerificationSession{
		ID:             id,
		Phone:          phone,
		RequestID:      requestID,
		State:          SessionStateCodeRequested,
		AttemptedCodes: make(map[string]bool),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// WasAttempted returns true if the code was already tried and rejected
func (s *VerificationSession) WasAttempted(code string) bool {
	return s.AttemptedCodes[code]
}

// RememberRejected adds a rejected code to the attempted set
func (s *VerificationSession) RememberRejected(code string) {
	if s.AttemptedCodes == nil {
		s.AttemptedCodes = make(map[string]bool)
	}
	s.AttemptedCodes[code] = true
}

// AcceptsCode returns true if a code submission may be verified in the current state
func (s *VerificationSession) AcceptsCode() bool {
	return s.State == SessionStateCodeRequested || s.State == SessionStateRejected
}

// IsVerifying returns true while a verification call is in flight
func (s *VerificationSession) IsVerifying() bool {
	return s.State == SessionStateVerifying
}

// IsVerified returns true if a pass token has been issued and not yet consumed
func (s *VerificationSession) IsVerified() bool {
	return s.State == SessionStateVerified && s.PassToken != ""
}

// IsBooking returns true while a booking transaction owns the pass token
func (s *VerificationSession) IsBooking() bool {
	return s.State == SessionStateBooking
}

// IsClosed returns true if the session can no longer be used
func (s *VerificationSession) IsClosed() bool {
	return s.State == SessionStateCompleted || s.State == SessionStateExpired
}
