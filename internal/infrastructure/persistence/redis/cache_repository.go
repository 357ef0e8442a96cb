package redis

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/mealsmith/v2/internal/infrastructure/config"
	"github.com/mealsmith/v2/internal/ports/outbound"
)

// CacheRepository is the Redis-backed pick cache. With the cache
// disabled (the default) every lookup misses while writes still go
// through, so turning it on later needs no data backfill.
type CacheRepository struct {
	client *redis.Client
	cfg    config.PickCacheConfig
	logger *zap.Logger
}

// NewCacheRepository creates the pick cache adapter
func NewCacheRepository(client *redis.Client, cfg config.PickCacheConfig, logger *zap.Logger) outbound.CacheRepository {
	return &CacheRepository{
		client: client,
		cfg:    cfg,
		logger: logger.Named("pick-cache"),
	}
}

// Get looks up a cached value. Disabled caches always miss; Redis
// errors are reported as misses with the error attached.
func (r *CacheRepository) Get(ctx context.Context, key string) (string, bool, error) {
	if !r.cfg.Enabled {
		return "", false, nil
	}

	val, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		r.logger.Debug("Cache get failed", zap.String("key", key), zap.Error(err))
		return "", false, err
	}
	return val, true, nil
}

// Set stores a value with the configured TTL
func (r *CacheRepository) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, key, value, r.cfg.TTL).Err(); err != nil {
		r.logger.Debug("Cache set failed", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}
