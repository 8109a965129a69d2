package bookings

import (
	"context"

	"github.com/m04kA/SMC-PoolBooking/internal/domain"
)

// JournalRepository интерфейс журнала попыток бронирования
type JournalRepository interface {
	ListByPhone(ctx context.Context, phone string, limit uint64) ([]*domain.BookingAttempt, error)
}

// SessionReader интерфейс чтения сессий подтверждения
type SessionReader interface {
	Get(ctx context.Context, sessionID string) (*domain.VerificationSession, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
