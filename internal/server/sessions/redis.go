package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"motoreg/internal/common"
)

const keyPrefix = "session:"

// RedisStore keeps session tokens in Redis so browser sessions survive
// server restarts and can be shared across replicas. TTL handling is left
// to Redis key expiry.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(addr string) *RedisStore {
	return &RedisStore{client: redis.NewClient(&redis.Options{Addr: addr})}
}

// Ping verifies connectivity; called once at startup.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (string, error) {
	token, err := s.client.Get(ctx, keyPrefix+sessionID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", common.ErrNotFound
		}
		return "", fmt.Errorf("session cache error: %w", err)
	}
	return token, nil
}

func (s *RedisStore) Set(ctx context.Context, sessionID, token string, ttl time.Duration) error {
	if err := s.client.Set(ctx, keyPrefix+sessionID, token, ttl).Err(); err != nil {
		return fmt.Errorf("session cache error: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, keyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("session cache error: %w", err)
	}
	return nil
}
