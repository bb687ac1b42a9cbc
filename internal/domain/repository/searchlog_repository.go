package repository

import (
	"context"

	"github.com/venue-compass/internal/domain"
)

// SearchLogRepository определяет методы для хранения журнала поисков
type SearchLogRepository interface {
	// InsertEvents сохраняет пачку событий поиска
	InsertEvents(ctx context.Context, events []*domain.SearchEvent) error

	// Aggregate возвращает агрегированную статистику по журналу
	Aggregate(ctx context.Context) (*domain.SearchStats, error)
}
