// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package redis opens the client behind the public product cache.

The cache is read-through: entries carry a TTL and admin writes drop them,
so losing Redis costs latency, never correctness. Connect still refuses to
start against an unreachable server so a misconfigured REDIS_URL is caught
at boot rather than at the first request.
*/
package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultPoolSize = 10
	opTimeout       = 2 * time.Second
)

// Settings describe the cache connection. PoolSize 0 means the default.
type Settings struct {
	URL      string
	PoolSize int
}

func (settings Settings) options() (*redis.Options, error) {
	options, err := redis.ParseURL(settings.URL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid URL: %w", err)
	}

	options.PoolSize = defaultPoolSize
	if settings.PoolSize > 0 {
		options.PoolSize = settings.PoolSize
	}
	options.MinIdleConns = options.PoolSize / 5

	// Cache calls sit on the request path; fail fast and fall back to the DB.
	options.DialTimeout = opTimeout
	options.ReadTimeout = opTimeout
	options.WriteTimeout = opTimeout
	options.MaxRetries = 1

	return options, nil
}

// Connect parses settings, dials and pings the server.
func Connect(ctx context.Context, settings Settings, logger *slog.Logger) (*redis.Client, error) {
	options, err := settings.options()
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(options)
	if err := Ping(ctx, client); err != nil {
		_ = client.Close()
		return nil, err
	}

	logger.Info("redis_connected",
		slog.String("addr", options.Addr),
		slog.Int("db", options.DB),
		slog.Int("pool_size", options.PoolSize),
	)
	return client, nil
}

// Ping backs the readiness probe.
func Ping(ctx context.Context, client *redis.Client) error {
	pingCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("redis: ping failed: %w", err)
	}
	return nil
}
