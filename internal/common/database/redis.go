// internal/common/database/redis.go
package database

import (
	"context"
	"fmt"
	"time"

	"hr-assistant/internal/common/config"
	apperrors "hr-assistant/internal/common/errors"

	"github.com/redis/go-redis/v9"
)

// RedisClient wraps the client holding the shared intent catalog.
type RedisClient struct {
	Client *redis.Client
}

func NewRedis(cfg config.RedisConfig) *RedisClient {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	return &RedisClient{Client: rdb}
}

func (c *RedisClient) Ping(ctx context.Context) error {
	if err := c.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (c *RedisClient) Close() error {
	if c.Client != nil {
		return c.Client.Close()
	}
	return nil
}

// Set stores value without expiry when expiration is zero.
func (c *RedisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return c.Client.Set(ctx, key, value, expiration).Err()
}

// ConnectRedis builds the client and pings it with backoff.
func ConnectRedis(ctx context.Context, cfg config.RedisConfig, policy RetryPolicy, log Logger) (*RedisClient, error) {
	client := NewRedis(cfg)

	err := RetryWithBackoff(ctx, policy, log, "redis connect", client.Ping)
	if err != nil {
		_ = client.Close()
		return nil, apperrors.NewDatabaseConnectionFailedError(err)
	}
	return client, nil
}
