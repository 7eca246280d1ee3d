package database

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tech-up/commerce-api/internal/config"
)

// NewRedisClient connects to Redis for the response cache and the rate
// limiter. On failure it returns nil and callers degrade gracefully by
// disabling both features; Redis is never required for checkout.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil
	}
	return client
}
