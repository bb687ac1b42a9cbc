package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/venue-compass/internal/domain"
	"github.com/venue-compass/internal/domain/repository"
	"github.com/venue-compass/internal/pkg/errors"
	"github.com/venue-compass/internal/usecase/dto"
)

const defaultSuggestLimit = 5

// CityUseCase - use case для подсказок и разрешения городов
type CityUseCase struct {
	geocodeRepo repository.GeocodeRepository
	logger      *zap.Logger
}

// NewCityUseCase - создание нового CityUseCase
func NewCityUseCase(geocodeRepo repository.GeocodeRepository, logger *zap.Logger) *CityUseCase {
	return &CityUseCase{
		geocodeRepo: geocodeRepo,
		logger:      logger,
	}
}

// Suggest возвращает ранжированный список городов по частичному названию
func (uc *CityUseCase) Suggest(ctx context.Context, req dto.SuggestCitiesRequest) (*dto.SuggestCitiesResponse, error) {
	if req.Limit == 0 {
		req.Limit = defaultSuggestLimit
	}

	matches, err := uc.geocodeRepo.SearchCity(ctx, strings.TrimSpace(req.Query), req.Limit)
	if err != nil {
		uc.logger.Error("Failed to search cities", zap.String("query", req.Query), zap.Error(err))
		return nil, errors.ErrUpstreamUnavailable
	}

	cities := make([]dto.CitySuggestion, 0, len(matches))
	for _, m := range matches {
		cities = append(cities, dto.CitySuggestion{
			Name:       m.Name,
			Lat:        m.Lat,
			Lon:        m.Lon,
			Bounds:     m.BoundingBox,
			Importance: m.Importance,
		})
	}

	return &dto.SuggestCitiesResponse{
		Cities: cities,
		Total:  len(cities),
	}, nil
}

// ResolveBest возвращает наиболее релевантное совпадение по названию города
func (uc *CityUseCase) ResolveBest(ctx context.Context, name string) (*domain.CityMatch, error) {
	matches, err := uc.geocodeRepo.SearchCity(ctx, strings.TrimSpace(name), 1)
	if err != nil {
		uc.logger.Error("Failed to resolve city", zap.String("city", name), zap.Error(err))
		return nil, errors.ErrUpstreamUnavailable
	}
	if len(matches) == 0 {
		return nil, errors.ErrCityNotFound
	}

	best := matches[0]
	return &best, nil
}
