package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PoolBooking/internal/domain"
)

// purgeInterval как часто Save и TryLock вычищают истекшие записи
const purgeInterval = time.Minute

type memoryLock struct {
	token string
	until time.Time
}

type memoryEntry struct {
	session   domain.VerificationSession
	expiresAt time.Time
}

// MemoryStore хранилище сессий в памяти процесса.
// Хранит копии, поэтому изменения вызывающего кода не видны без Save
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]memoryEntry
	locks    map[string]memoryLock
	ttl      time.Duration
	lockTTL  time.Duration
	now      func() time.Time

	lastPurge time.Time
}

// NewMemoryStore создает хранилище в памяти
func NewMemoryStore(ttl, lockTTL time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]memoryEntry),
		locks:    make(map[string]memoryLock),
		ttl:      ttl,
		lockTTL:  lockTTL,
		now:      time.Now,
	}
}

func (s *MemoryStore) Get(_ context.Context, id string) (*domain.VerificationSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if s.now().After(entry.expiresAt) {
		delete(s.sessions, id)
		return nil, ErrSessionNotFound
	}

	return clone(&entry.session), nil
}

func (s *MemoryStore) Save(_ context.Context, session *domain.VerificationSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.purgeExpired(now)

	s.sessions[session.ID] = memoryEntry{
		session:   *clone(session),
		expiresAt: now.Add(s.ttl),
	}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	delete(s.locks, id)
	return nil
}

// TryLock захватывает блокировку проверки кода, если она свободна
func (s *MemoryStore) TryLock(_ context.Context, id string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.purgeExpired(now)

	if lock, ok := s.locks[id]; ok && now.Before(lock.until) {
		return "", false, nil
	}

	token := uuid.NewString()
	s.locks[id] = memoryLock{token: token, until: now.Add(s.lockTTL)}
	return token, true, nil
}

// Unlock снимает блокировку, если ее не перехватил другой владелец после истечения TTL
func (s *MemoryStore) Unlock(_ context.Context, id, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if lock, ok := s.locks[id]; ok && lock.token == token {
		delete(s.locks, id)
	}
	return nil
}

// purgeExpired удаляет брошенные сессии и истекшие блокировки.
// Вызывается под s.mu
func (s *MemoryStore) purgeExpired(now time.Time) {
	if now.Sub(s.lastPurge) < purgeInterval {
		return
	}
	s.lastPurge = now

	for id, entry := range s.sessions {
		if now.After(entry.expiresAt) {
			delete(s.sessions, id)
		}
	}
	for id, lock := range s.locks {
		if !now.Before(lock.until) {
			delete(s.locks, id)
		}
	}
}

func clone(src *domain.VerificationSession) *domain.VerificationSession {
	dst := *src
	dst.AttemptedCodes = make(map[string]bool, len(src.AttemptedCodes))
	for code, tried := range src.AttemptedCodes {
		dst.AttemptedCodes[code] = tried
	}
	return &dst
}
