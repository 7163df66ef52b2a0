// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package product

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/ffshop/internal/platform/constants"
)

// CachedRepository serves [Repository.Get] from Redis and drops the cached
// entry on every write. Redis failures are logged and the call falls
// through to the wrapped repository.
type CachedRepository struct {
	Repository

	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedRepository wraps next with a read-through cache.
func NewCachedRepository(next Repository, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedRepository {
	return &CachedRepository{Repository: next, client: client, ttl: ttl, logger: logger}
}

func cacheKey(id int64) string {
	return constants.RedisPrefixProduct + strconv.FormatInt(id, 10)
}

// Get implements [Repository].
func (repository *CachedRepository) Get(ctx context.Context, id int64) (*Product, error) {
	key := cacheKey(id)

	raw, err := repository.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		p := &Product{}
		if err := json.Unmarshal(raw, p); err == nil {
			return p, nil
		}
		repository.logger.WarnContext(ctx, "product_cache_corrupt", slog.String("key", key))
	case !errors.Is(err, redis.Nil):
		repository.logger.WarnContext(ctx, "product_cache_get_failed", slog.String("key", key), slog.String("error", err.Error()))
	}

	p, err := repository.Repository.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(p); err == nil {
		if err := repository.client.Set(ctx, key, payload, repository.ttl).Err(); err != nil {
			repository.logger.WarnContext(ctx, "product_cache_set_failed", slog.String("key", key), slog.String("error", err.Error()))
		}
	}
	return p, nil
}

// Update implements [Repository].
func (repository *CachedRepository) Update(ctx context.Context, p *Product, images []ImageChange) error {
	err := repository.Repository.Update(ctx, p, images)
	repository.invalidate(ctx, p.ID)
	return err
}

// Delete implements [Repository].
func (repository *CachedRepository) Delete(ctx context.Context, id int64) error {
	err := repository.Repository.Delete(ctx, id)
	repository.invalidate(ctx, id)
	return err
}

// AdjustStock implements [Repository].
func (repository *CachedRepository) AdjustStock(ctx context.Context, id int64, delta int) (*Product, error) {
	p, err := repository.Repository.AdjustStock(ctx, id, delta)
	repository.invalidate(ctx, id)
	return p, err
}

func (repository *CachedRepository) invalidate(ctx context.Context, id int64) {
	if err := repository.client.Del(ctx, cacheKey(id)).Err(); err != nil {
		repository.logger.WarnContext(ctx, "product_cache_invalidate_failed",
			slog.Int64("product_id", id),
			slog.String("error", err.Error()),
		)
	}
}
