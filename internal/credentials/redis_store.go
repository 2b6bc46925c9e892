package credentials

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix  = "cred:" // cred:{session_id}
	DefaultTTL = 30 * 24 * time.Hour
)

// RedisStore keeps credentials in Redis so they survive API restarts.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) key(sessionID string) string {
	return keyPrefix + sessionID
}

func (s *RedisStore) Set(ctx context.Context, sessionID, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrBlankCredential
	}
	if err := s.client.Set(ctx, s.key(sessionID), key, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store credential: %w", err)
	}
	return nil
}

func (s *RedisStore) IsSet(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(sessionID)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check credential: %w", err)
	}
	return n > 0, nil
}

// Get refreshes the TTL on read so an active session keeps its key.
func (s *RedisStore) Get(ctx context.Context, sessionID string) (string, error) {
	v, err := s.client.GetEx(ctx, s.key(sessionID), s.ttl).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get credential: %w", err)
	}
	return v, nil
}

func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to clear credential: %w", err)
	}
	return nil
}
