// Package redis constructs the client for the optional quote cache.
package redis

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"stock_ingest/internal/platform/config"
)

// NewClient connects to Redis and verifies the connection with a ping.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       0,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Error("redis connection failed", "address", cfg.Addr(), "error", err)
		return nil, err
	}

	slog.Info("redis connection successful", "address", cfg.Addr())
	return rdb, nil
}
