package request_code

import (
	"context"

	"github.com/m04kA/SMC-PoolBooking/internal/domain"
)

type VerificationService interface {
	RequestCode(ctx context.Context, rawPhone string) (*domain.VerificationSession, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
