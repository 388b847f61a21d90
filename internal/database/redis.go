package database

import (
	"context"
	"fmt"
	"time"

	"github.com/recipebox/backend/config"
	"github.com/recipebox/backend/internal/logger"
	"github.com/redis/go-redis/v9"
)

// NewRedisClient creates a Redis client for the write rate limiter. It returns
// nil without error when no Redis URL is configured.
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	if cfg.RedisURL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	if opts.Password == "" {
		opts.Password = cfg.RedisPassword
	}

	client := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Logger.Info().Str("addr", opts.Addr).Msg("Successfully connected to Redis")
	return client, nil
}
