package repository

import (
	"context"
	"errors"

	"github.com/venue-compass/internal/domain"
)

// ErrRateLimited - все попытки запроса завершились ответом
// "too many requests" на каждом из эндпоинтов
var ErrRateLimited = errors.New("geo data service: rate limited on all endpoints")

// OverpassRepository определяет методы для запросов к сервису геоданных
type OverpassRepository interface {
	// QueryAround возвращает заведения указанных категорий
	// в радиусе (в метрах) вокруг точки
	QueryAround(
		ctx context.Context,
		center domain.Point,
		radiusMeters float64,
		types []domain.VenueType,
	) ([]*domain.Establishment, error)

	// QueryBoundingBox возвращает заведения указанных категорий
	// внутри прямоугольной области
	QueryBoundingBox(
		ctx context.Context,
		box domain.BoundingBox,
		types []domain.VenueType,
	) ([]*domain.Establishment, error)
}
