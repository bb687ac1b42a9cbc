package repository

import (
	"context"

	"github.com/venue-compass/internal/domain"
)

// GeocodeRepository определяет методы для геокодирования названий городов
type GeocodeRepository interface {
	// SearchCity возвращает ранжированный список совпадений по имени
	SearchCity(ctx context.Context, name string, limit int) ([]domain.CityMatch, error)
}
