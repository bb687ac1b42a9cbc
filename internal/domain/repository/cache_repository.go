package repository

import (
	"context"
	"time"

	"github.com/venue-compass/internal/domain"
)

// CacheRepository определяет методы для работы с кешем
type CacheRepository interface {
	// Get получает значение из кеша по ключу
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение в кеше с TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete удаляет значение из кеша
	Delete(ctx context.Context, key string) error

	// GetVenues получает список заведений из кеша;
	// nil без ошибки означает промах
	GetVenues(ctx context.Context, key string) ([]*domain.Establishment, error)

	// SetVenues сохраняет список заведений в кеше
	SetVenues(ctx context.Context, key string, venues []*domain.Establishment, ttl time.Duration) error

	// GetStats получает статистику из кеша
	GetStats(ctx context.Context) (*domain.SearchStats, error)

	// SetStats сохраняет статистику в кеше
	SetStats(ctx context.Context, stats *domain.SearchStats, ttl time.Duration) error
}
