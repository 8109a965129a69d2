package verify_code

import (
	"context"

	"github.com/m04kA/SMC-PoolBooking/internal/service/verification"
)

type VerificationService interface {
	VerifyCode(ctx context.Context, sessionID, code string) (*verification.VerifyResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
