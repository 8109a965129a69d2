package create_booking

import (
	"context"

	"github.com/m04kA/SMC-PoolBooking/internal/domain"
	"github.com/m04kA/SMC-PoolBooking/internal/integrations/crm"
	"github.com/m04kA/SMC-PoolBooking/internal/integrations/smsgateway"
	"github.com/m04kA/SMC-PoolBooking/internal/service/verification"
)

// Verifier интерфейс сервиса подтверждения телефона
type Verifier interface {
	VerifyCode(ctx context.Context, sessionID, code string) (*verification.VerifyResult, error)
	Claim(ctx context.Context, sessionID string) (*domain.VerificationSession, error)
	Expire(ctx context.Context, sessionID string) error
	Complete(ctx context.Context, sessionID string) error
}

// CRMClient интерфейс клиента CRM для оформления записи
type CRMClient interface {
	SetPassword(ctx context.Context, phone, passToken string) (string, error)
	GetClient(ctx context.Context, userToken string) (*crm.ClientProfile, error)
	Book(ctx context.Context, appointmentID, userToken string) (*crm.BookResponse, error)
}

// SMSSender интерфейс SMS-шлюза
type SMSSender interface {
	Send(ctx context.Context, msg smsgateway.Message) error
}

// Journal журнал попыток бронирования
type Journal interface {
	Record(ctx context.Context, attempt *domain.BookingAttempt) (*domain.BookingAttempt, error)
}

// Metrics интерфейс учета шагов транзакции
type Metrics interface {
	ObserveBookingStep(step, status string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
