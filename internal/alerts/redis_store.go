package alerts

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore shares the throttle window across processes via SETNX with a
// TTL equal to the window.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Allow implements ThrottleStore.
func (s *RedisStore) Allow(ctx context.Context, key string, window time.Duration) (bool, error) {

	ok, err := s.client.SetNX(ctx, "alert:"+key, 1, window).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check alert throttle key: %w", err)
	}

	return ok, nil
}
