package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/venue-compass/internal/domain"
	"github.com/venue-compass/internal/domain/repository"
	"go.uber.org/zap"
)

// statsKey - ключ кеша агрегированной статистики поисков
const statsKey = "stats:search"

type cacheRepository struct {
	redis  *Redis
	logger *zap.Logger
}

// NewCacheRepository создает новый репозиторий кеша
func NewCacheRepository(redis *Redis, logger *zap.Logger) repository.CacheRepository {
	return &cacheRepository{
		redis:  redis,
		logger: logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.redis.Client().Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // Cache miss
		}
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, err
	}
	return data, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.redis.Client().Set(ctx, key, value, ttl).Err(); err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	if err := r.redis.Client().Del(ctx, key).Err(); err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

func (r *cacheRepository) GetVenues(ctx context.Context, key string) ([]*domain.Establishment, error) {
	data, err := r.Get(ctx, key)
	if err != nil || data == nil {
		return nil, err
	}

	var venues []*domain.Establishment
	if err := json.Unmarshal(data, &venues); err != nil {
		r.logger.Warn("Failed to unmarshal cached venues, dropping entry",
			zap.String("key", key),
			zap.Error(err),
		)
		_ = r.Delete(ctx, key)
		return nil, nil
	}
	return venues, nil
}

func (r *cacheRepository) SetVenues(ctx context.Context, key string, venues []*domain.Establishment, ttl time.Duration) error {
	data, err := json.Marshal(venues)
	if err != nil {
		return err
	}
	return r.Set(ctx, key, data, ttl)
}

func (r *cacheRepository) GetStats(ctx context.Context) (*domain.SearchStats, error) {
	data, err := r.Get(ctx, statsKey)
	if err != nil || data == nil {
		return nil, err
	}

	var stats domain.SearchStats
	if err := json.Unmarshal(data, &stats); err != nil {
		r.logger.Warn("Failed to unmarshal cached stats", zap.Error(err))
		return nil, nil
	}
	return &stats, nil
}

func (r *cacheRepository) SetStats(ctx context.Context, stats *domain.SearchStats, ttl time.Duration) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return r.Set(ctx, statsKey, data, ttl)
}
