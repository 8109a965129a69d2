package verification

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PoolBooking/internal/domain"
	sessionStorage "github.com/m04kA/SMC-PoolBooking/internal/infra/storage/session"
	crmClient "github.com/m04kA/SMC-PoolBooking/internal/integrations/crm"
	"github.com/m04kA/SMC-PoolBooking/pkg/phone"
)

var codePattern = regexp.MustCompile(`^\d{4}$`)

// Service сервис подтверждения телефона по SMS-коду.
//
// Состояния сессии: code_requested -> verifying -> verified | rejected.
// Из verified сессию забирает транзакция бронирования (booking), после чего
// она либо удаляется (успех), либо помечается expired.
type Service struct {
	store        SessionStore
	locker       Locker
	crm          CRMClient
	metrics      Metrics
	timeProvider TimeProvider
	newID        func() string
	logger       Logger
}

// NewService создает новый экземпляр сервиса подтверждения
func NewService(
	store SessionStore,
	locker Locker,
	crm CRMClient,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		store:        store,
		locker:       locker,
		crm:          crm,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		newID:        uuid.NewString,
		logger:       logger,
	}
}

// RequestCode нормализует номер, запрашивает SMS-код и создает новую сессию.
// Невалидный номер отклоняется до любого сетевого вызова
func (s *Service) RequestCode(ctx context.Context, rawPhone string) (*domain.VerificationSession, error) {
	normalized, ok := phone.NormalizeAndValidate(rawPhone)
	if !ok {
		s.logger.Warn("RequestCode: invalid phone format, normalized=%q", normalized)
		return nil, ErrInvalidPhone
	}

	sessionID := s.newID()
	requestID := s.newID()

	if err := s.crm.RequestCode(ctx, normalized, requestID); err != nil {
		s.logger.Error("RequestCode: session=%s failed to request code: %v", sessionID, err)
		return nil, fmt.Errorf("%w: %v", ErrCodeRequestFailed, err)
	}

	session := domain.NewVerificationSession(sessionID, normalized, requestID, s.timeProvider.Now())
	if err := s.store.Save(ctx, session); err != nil {
		s.logger.Error("RequestCode: failed to save session=%s: %v", sessionID, err)
		return nil, fmt.Errorf("%w: save session: %v", ErrInternal, err)
	}

	s.logger.Info("RequestCode: session=%s created, request_id=%s", sessionID, requestID)
	return session, nil
}

// VerifyCode проверяет код подтверждения.
//
// Отправка отбрасывается без сетевого вызова (OutcomeDropped), если проверка по
// этой сессии уже идет, сессия заблокирована предыдущей попыткой или этот код уже
// был отклонен. Иначе выполняется ровно один вызов confirm_phone.
func (s *Service) VerifyCode(ctx context.Context, sessionID, code string) (*VerifyResult, error) {
	code = strings.TrimSpace(code)
	if !codePattern.MatchString(code) {
		return nil, ErrInvalidCodeFormat
	}

	lockToken, locked, err := s.locker.TryLock(ctx, sessionID)
	if err != nil {
		s.logger.Error("VerifyCode: session=%s lock failed: %v", sessionID, err)
		return nil, fmt.Errorf("%w: lock: %v", ErrInternal, err)
	}
	if !locked {
		s.logger.Info("VerifyCode: session=%s verification in flight, submission dropped", sessionID)
		s.metrics.ObserveVerification(string(OutcomeDropped))
		return &VerifyResult{Outcome: OutcomeDropped}, nil
	}
	defer s.unlock(ctx, sessionID, lockToken)

	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	switch {
	case session.IsClosed():
		return nil, ErrSessionExpired
	case session.State == domain.SessionStateVerified:
		// код уже принят, повторная отправка не требует вызова CRM
		return &VerifyResult{Outcome: OutcomeVerified, Session: session}, nil
	case session.IsVerifying(), session.IsBooking(), !session.AcceptsCode():
		s.logger.Info("VerifyCode: session=%s is %s, submission dropped", sessionID, session.State)
		s.metrics.ObserveVerification(string(OutcomeDropped))
		return &VerifyResult{Outcome: OutcomeDropped, Session: session}, nil
	case session.WasAttempted(code):
		s.logger.Info("VerifyCode: session=%s code already rejected, submission dropped", sessionID)
		s.metrics.ObserveVerification(string(OutcomeDropped))
		return &VerifyResult{Outcome: OutcomeDropped, Session: session, Message: MsgInvalidCode}, nil
	}

	previousState := session.State
	session.State = domain.SessionStateVerifying
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	token, err := s.crm.ConfirmCode(ctx, session.Phone, code, session.RequestID)

	// результат вызова сохраняется даже при отмене контекста запроса
	persistCtx := context.WithoutCancel(ctx)

	if err != nil {
		if errors.Is(err, crmClient.ErrCodeRejected) {
			session.RememberRejected(code)
			session.State = domain.SessionStateRejected
			if err := s.save(persistCtx, session); err != nil {
				return nil, err
			}
			s.logger.Warn("VerifyCode: session=%s code rejected: %v", sessionID, err)
			s.metrics.ObserveVerification(string(OutcomeRejected))
			return &VerifyResult{Outcome: OutcomeRejected, Session: session, Message: MsgInvalidCode}, nil
		}

		// сетевая ошибка: код не запоминаем, пользователь может повторить
		session.State = previousState
		if saveErr := s.save(persistCtx, session); saveErr != nil {
			s.logger.Error("VerifyCode: session=%s failed to restore state: %v", sessionID, saveErr)
		}
		s.logger.Error("VerifyCode: session=%s upstream error: %v", sessionID, err)
		s.metrics.ObserveVerification("error")
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	session.PassToken = token
	session.State = domain.SessionStateVerified
	if err := s.save(persistCtx, session); err != nil {
		return nil, err
	}

	s.logger.Info("VerifyCode: session=%s verified", sessionID)
	s.metrics.ObserveVerification(string(OutcomeVerified))
	return &VerifyResult{Outcome: OutcomeVerified, Session: session}, nil
}

// Claim передает pass_token подтвержденной сессии транзакции бронирования.
// Одновременно сессией может владеть только одна транзакция
func (s *Service) Claim(ctx context.Context, sessionID string) (*domain.VerificationSession, error) {
	lockToken, locked, err := s.locker.TryLock(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: lock: %v", ErrInternal, err)
	}
	if !locked {
		return nil, ErrSessionBusy
	}
	defer s.unlock(ctx, sessionID, lockToken)

	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	switch {
	case session.IsClosed():
		return nil, ErrSessionExpired
	case session.IsBooking(), session.IsVerifying():
		return nil, ErrSessionBusy
	case !session.IsVerified():
		return nil, ErrNotVerified
	}

	session.State = domain.SessionStateBooking
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Info("Claim: session=%s claimed for booking", sessionID)
	return session, nil
}

// Expire помечает сессию израсходованной: pass_token больше не используется,
// пользователь должен заново ввести телефон
func (s *Service) Expire(ctx context.Context, sessionID string) error {
	session, err := s.load(ctx, sessionID)
	if err != nil {
		return err
	}

	session.State = domain.SessionStateExpired
	session.PassToken = ""
	if err := s.save(ctx, session); err != nil {
		return err
	}

	s.logger.Info("Expire: session=%s expired", sessionID)
	return nil
}

// Complete завершает сессию после успешного бронирования
func (s *Service) Complete(ctx context.Context, sessionID string) error {
	return s.Reset(ctx, sessionID)
}

// Reset удаляет сессию (отказ пользователя или перезапуск сценария)
func (s *Service) Reset(ctx context.Context, sessionID string) error {
	if err := s.store.Delete(ctx, sessionID); err != nil {
		s.logger.Error("Reset: failed to delete session=%s: %v", sessionID, err)
		return fmt.Errorf("%w: delete session: %v", ErrInternal, err)
	}
	return nil
}

// Get возвращает текущее состояние сессии
func (s *Service) Get(ctx context.Context, sessionID string) (*domain.VerificationSession, error) {
	return s.load(ctx, sessionID)
}

func (s *Service) load(ctx context.Context, sessionID string) (*domain.VerificationSession, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sessionStorage.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		s.logger.Error("verification: failed to load session=%s: %v", sessionID, err)
		return nil, fmt.Errorf("%w: load session: %v", ErrInternal, err)
	}
	return session, nil
}

func (s *Service) save(ctx context.Context, session *domain.VerificationSession) error {
	session.UpdatedAt = s.timeProvider.Now()
	if err := s.store.Save(ctx, session); err != nil {
		s.logger.Error("verification: failed to save session=%s: %v", session.ID, err)
		return fmt.Errorf("%w: save session: %v", ErrInternal, err)
	}
	return nil
}

func (s *Service) unlock(ctx context.Context, sessionID, token string) {
	if err := s.locker.Unlock(context.WithoutCancel(ctx), sessionID, token); err != nil {
		s.logger.Error("verification: failed to unlock session=%s: %v", sessionID, err)
	}
}
