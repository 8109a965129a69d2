package verification

import (
	"context"
	"time"

	"github.com/m04kA/SMC-PoolBooking/internal/domain"
)

// SessionStore хранилище сессий подтверждения
type SessionStore interface {
	Get(ctx context.Context, id string) (*domain.VerificationSession, error)
	Save(ctx context.Context, session *domain.VerificationSession) error
	Delete(ctx context.Context, id string) error
}

// Locker блокировка "одна проверка кода в полете" на сессию
type Locker interface {
	// TryLock возвращает токен владельца, если блокировка захвачена
	TryLock(ctx context.Context, id string) (token string, ok bool, err error)
	// Unlock снимает блокировку, только если она все еще принадлежит token
	Unlock(ctx context.Context, id, token string) error
}

// CRMClient интерфейс клиента CRM для подтверждения телефона
type CRMClient interface {
	RequestCode(ctx context.Context, phone, requestID string) error
	ConfirmCode(ctx context.Context, phone, code, requestID string) (string, error)
}

// Metrics интерфейс учета результатов проверки
type Metrics interface {
	ObserveVerification(outcome string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
