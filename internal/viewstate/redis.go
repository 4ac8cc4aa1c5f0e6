package viewstate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/weddingdesk/core/internal/infrastructure/config"
	"github.com/weddingdesk/core/internal/infrastructure/logger"
)

const redisKeyPrefix = "viewstate:"

// RedisStore keeps view state in Redis so the same dashboard state
// follows an organizer across devices.
type RedisStore struct {
	client *redis.Client
	log    *logger.Logger
}

// NewRedisStore connects to Redis with a short retry loop and returns
// the store.
func NewRedisStore(cfg config.RedisConfig, log *logger.Logger) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.GetAddr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	var lastErr error
	for attempt := 1; attempt <= 5; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_, lastErr = client.Ping(ctx).Result()
		cancel()
		if lastErr == nil {
			log.Infow("redis connected", "addr", cfg.GetAddr())
			return &RedisStore{client: client, log: log}, nil
		}
		log.Warnw("redis connection failed, retrying", "attempt", attempt, "error", lastErr)
		time.Sleep(2 * time.Second)
	}
	return nil, fmt.Errorf("failed to connect to redis: %w", lastErr)
}

// Get returns the value for key, or ErrKeyNotFound.
func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	v, err := s.client.Get(ctx, redisKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get view state key: %w", err)
	}
	return v, nil
}

// Set stores the value with no expiration.
func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, redisKeyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set view state key: %w", err)
	}
	return nil
}

// Delete removes the key.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, redisKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to delete view state key: %w", err)
	}
	return nil
}

// Close releases the client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
