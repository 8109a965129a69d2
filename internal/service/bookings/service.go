package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-PoolBooking/internal/domain"
	"github.com/m04kA/SMC-PoolBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-PoolBooking/internal/service/verification"
)

// Service сервис истории бронирований.
// История доступна только по сессии с подтвержденным телефоном
type Service struct {
	journal  JournalRepository
	sessions SessionReader
	logger   Logger
}

// NewService создает новый экземпляр сервиса истории
func NewService(
	journal JournalRepository,
	sessions SessionReader,
	logger Logger,
) *Service {
	return &Service{
		journal:  journal,
		sessions: sessions,
		logger:   logger,
	}
}

// GetHistory получает последние попытки бронирования для телефона сессии
func (s *Service) GetHistory(ctx context.Context, req *models.GetHistoryRequest) (*models.AttemptListResponse, error) {
	if strings.TrimSpace(req.SessionID) == "" {
		return nil, fmt.Errorf("%w: sessionId is required", ErrInvalidInput)
	}

	limit := req.Limit
	switch {
	case limit < 0 || limit > models.MaxHistoryLimit:
		return nil, fmt.Errorf("%w: limit must be within 1..%d", ErrInvalidInput, models.MaxHistoryLimit)
	case limit == 0:
		limit = models.DefaultHistoryLimit
	}

	s.logger.Info("GetHistory: fetching attempts for session=%s, limit=%d", req.SessionID, limit)

	session, err := s.sessions.Get(ctx, req.SessionID)
	if err != nil {
		if errors.Is(err, verification.ErrSessionNotFound) {
			s.logger.Warn("GetHistory: session=%s not found", req.SessionID)
			return nil, ErrSessionNotFound
		}
		s.logger.Error("GetHistory: failed to get session=%s: %v", req.SessionID, err)
		return nil, fmt.Errorf("%w: GetHistory - session error: %v", ErrInternal, err)
	}

	if !phoneConfirmed(session) {
		s.logger.Warn("GetHistory: session=%s is %s, access denied", req.SessionID, session.State)
		return nil, ErrAccessDenied
	}

	attempts, err := s.journal.ListByPhone(ctx, session.Phone, uint64(limit))
	if err != nil {
		s.logger.Error("GetHistory: repository error for session=%s: %v", req.SessionID, err)
		return nil, fmt.Errorf("%w: GetHistory - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetHistory: successfully fetched %d attempts for session=%s", len(attempts), req.SessionID)
	return models.FromDomainAttemptList(session.Phone, attempts), nil
}

// phoneConfirmed проверяет, что CRM уже подтвердила телефон сессии
func phoneConfirmed(session *domain.VerificationSession) bool {
	return session.IsVerified() || session.IsBooking()
}
