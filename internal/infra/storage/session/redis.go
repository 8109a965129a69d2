package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-PoolBooking/internal/domain"
)

// RedisStore хранилище сессий в Redis, общее для нескольких экземпляров сервиса
type RedisStore struct {
	client  *redis.Client
	ttl     time.Duration
	lockTTL time.Duration
}

// NewRedisStore создает хранилище поверх клиента Redis
func NewRedisStore(client *redis.Client, ttl, lockTTL time.Duration) *RedisStore {
	return &RedisStore{
		client:  client,
		ttl:     ttl,
		lockTTL: lockTTL,
	}
}

func (s *RedisStore) Get(ctx context.Context, id string) (*domain.VerificationSession, error) {
	data, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("%w: Get: %v", ErrBackend, err)
	}

	var session domain.VerificationSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if session.AttemptedCodes == nil {
		session.AttemptedCodes = make(map[string]bool)
	}
	return &session, nil
}

func (s *RedisStore) Save(ctx context.Context, session *domain.VerificationSession) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}
	if err := s.client.Set(ctx, sessionKey(session.ID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Save: %v", ErrBackend, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, sessionKey(id), lockKey(id)).Err(); err != nil {
		return fmt.Errorf("%w: Delete: %v", ErrBackend, err)
	}
	return nil
}

// unlockScript удаляет ключ блокировки, только если в нем токен владельца
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// TryLock захватывает блокировку через SETNX с TTL, значение ключа - токен владельца
func (s *RedisStore) TryLock(ctx context.Context, id string) (string, bool, error) {
	token := uuid.NewString()
	ok, err := s.client.SetNX(ctx, lockKey(id), token, s.lockTTL).Result()
	if err != nil {
		return "", false, fmt.Errorf("%w: TryLock: %v", ErrBackend, err)
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

func (s *RedisStore) Unlock(ctx context.Context, id, token string) error {
	if err := unlockScript.Run(ctx, s.client, []string{lockKey(id)}, token).Err(); err != nil {
		return fmt.Errorf("%w: Unlock: %v", ErrBackend, err)
	}
	return nil
}

func sessionKey(id string) string {
	return "pool:session:" + id
}

func lockKey(id string) string {
	return "pool:session:" + id + ":lock"
}
