package redis

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/blake2b"

	"github.com/edusaas/portal-gate/internal/core/ports"
)

const defaultSessionTTL = 24 * time.Hour

// SessionStorage keeps each session's values in one Redis hash.
// Key format: gate:session:<blake2b-128 of the session id>
// Every write pushes the hash's expiry out by ttl.
type SessionStorage struct {
	client *redis.Client
	ttl    time.Duration
}

var _ ports.SessionStorage = (*SessionStorage)(nil)

// NewSessionStorage wraps client. A non-positive ttl uses defaultSessionTTL.
func NewSessionStorage(client *redis.Client, ttl time.Duration) *SessionStorage {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionStorage{client: client, ttl: ttl}
}

func (s *SessionStorage) Get(ctx context.Context, sessionID, key string) (string, bool, error) {
	v, err := s.client.HGet(ctx, s.key(sessionID), key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("session get %s: %w", key, err)
	}
	return v, true, nil
}

func (s *SessionStorage) Set(ctx context.Context, sessionID, key, value string) error {
	k := s.key(sessionID)
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, k, key, value)
	pipe.Expire(ctx, k, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("session set %s: %w", key, err)
	}
	return nil
}

func (s *SessionStorage) Delete(ctx context.Context, sessionID, key string) error {
	if err := s.client.HDel(ctx, s.key(sessionID), key).Err(); err != nil {
		return fmt.Errorf("session delete %s: %w", key, err)
	}
	return nil
}

func (s *SessionStorage) DeleteSession(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("session drop: %w", err)
	}
	return nil
}

func (s *SessionStorage) key(sessionID string) string {
	h, _ := blake2b.New(16, nil)
	_, _ = h.Write([]byte(sessionID))
	return "gate:session:" + hex.EncodeToString(h.Sum(nil))
}
