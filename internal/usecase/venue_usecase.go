package usecase

import (
	"context"
	stderrors "errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/venue-compass/internal/domain"
	"github.com/venue-compass/internal/domain/repository"
	"github.com/venue-compass/internal/pkg/errors"
	"github.com/venue-compass/internal/pkg/utils"
	"github.com/venue-compass/internal/usecase/dto"
)

// cityFallbackRadiusKm - радиус поиска вокруг центра города без границ
const cityFallbackRadiusKm = 20.0

// emptyResultsHint - подсказка клиенту: пустой результат это не ошибка
const emptyResultsHint = "no venues found, try widening the search radius or adding categories"

// VenueUseCase - use case для поиска заведений
type VenueUseCase struct {
	overpassRepo repository.OverpassRepository
	cacheRepo    repository.CacheRepository
	streamRepo   repository.StreamRepository
	cityUC       *CityUseCase
	logger       *zap.Logger
	cacheTTL     time.Duration
	group        singleflight.Group
}

// NewVenueUseCase - создание нового VenueUseCase.
// streamRepo может быть nil, тогда события поиска не публикуются.
func NewVenueUseCase(
	overpassRepo repository.OverpassRepository,
	cacheRepo repository.CacheRepository,
	streamRepo repository.StreamRepository,
	cityUC *CityUseCase,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *VenueUseCase {
	return &VenueUseCase{
		overpassRepo: overpassRepo,
		cacheRepo:    cacheRepo,
		streamRepo:   streamRepo,
		cityUC:       cityUC,
		logger:       logger,
		cacheTTL:     cacheTTL,
	}
}

// SearchNearby - поиск заведений в радиусе вокруг точки
func (uc *VenueUseCase) SearchNearby(ctx context.Context, req dto.NearbyVenuesRequest) (*dto.VenuesResponse, error) {
	started := time.Now()

	if !utils.ValidateCoordinates(req.Lat, req.Lon) {
		return nil, errors.ErrInvalidCoordinates
	}
	if !utils.ValidateRadius(req.RadiusKm) {
		return nil, errors.ErrInvalidRadius
	}

	types, err := normalizeCategories(req.Categories)
	if err != nil {
		return nil, err
	}

	// Координаты в ключе округляются до двух знаков, чтобы близкие
	// позиции попадали в одну запись кеша
	cacheKey := fmt.Sprintf("venues:proximity:%.2f:%.2f:%.1f:%s",
		req.Lat, req.Lon, req.RadiusKm, joinTypes(types))

	center := domain.Point{Lat: req.Lat, Lon: req.Lon}
	venues, cached, err := uc.fetchVenues(ctx, cacheKey, func(ctx context.Context) ([]*domain.Establishment, error) {
		return uc.overpassRepo.QueryAround(ctx, center, req.RadiusKm*1000, types)
	})
	if err != nil {
		return nil, err
	}

	results := uc.buildResults(venues, &center, req.OpenOnly)

	uc.publishEvent(ctx, &domain.SearchEvent{
		ID:          uuid.New(),
		Mode:        domain.SearchModeProximity,
		Categories:  types,
		RadiusKm:    req.RadiusKm,
		ResultCount: len(results),
		CacheHit:    cached,
		DurationMs:  float64(time.Since(started).Microseconds()) / 1000,
		CreatedAt:   time.Now().UTC(),
	})

	return &dto.VenuesResponse{
		Venues: results,
		Total:  len(results),
		Cached: cached,
		Hint:   hintFor(results),
	}, nil
}

// SearchCity - поиск заведений в области выбранного города
func (uc *VenueUseCase) SearchCity(ctx context.Context, req dto.CityVenuesRequest) (*dto.VenuesResponse, error) {
	started := time.Now()

	types, err := normalizeCategories(req.Categories)
	if err != nil {
		return nil, err
	}

	cityName := strings.TrimSpace(req.City)
	if cityName == "" {
		return nil, errors.ErrInvalidRequest
	}

	cacheKey := fmt.Sprintf("venues:city:%s:%s",
		strings.ToLower(cityName), joinTypes(types))

	venues, cached, err := uc.fetchVenues(ctx, cacheKey, func(ctx context.Context) ([]*domain.Establishment, error) {
		match, err := uc.cityUC.ResolveBest(ctx, cityName)
		if err != nil {
			return nil, err
		}
		if match.BoundingBox != nil {
			return uc.overpassRepo.QueryBoundingBox(ctx, *match.BoundingBox, types)
		}
		// Нет границ города - ищем вокруг его центра
		center := domain.Point{Lat: match.Lat, Lon: match.Lon}
		return uc.overpassRepo.QueryAround(ctx, center, cityFallbackRadiusKm*1000, types)
	})
	if err != nil {
		return nil, err
	}

	var ref *domain.Point
	if req.RefLat != nil && req.RefLon != nil {
		if !utils.ValidateCoordinates(*req.RefLat, *req.RefLon) {
			return nil, errors.ErrInvalidCoordinates
		}
		ref = &domain.Point{Lat: *req.RefLat, Lon: *req.RefLon}
	}

	results := uc.buildResults(venues, ref, req.OpenOnly)

	uc.publishEvent(ctx, &domain.SearchEvent{
		ID:          uuid.New(),
		Mode:        domain.SearchModeCity,
		Categories:  types,
		City:        cityName,
		ResultCount: len(results),
		CacheHit:    cached,
		DurationMs:  float64(time.Since(started).Microseconds()) / 1000,
		CreatedAt:   time.Now().UTC(),
	})

	return &dto.VenuesResponse{
		Venues: results,
		Total:  len(results),
		Cached: cached,
		Hint:   hintFor(results),
	}, nil
}

// hintFor возвращает подсказку для пустого результата, чтобы клиент
// мог отличить "ничего не найдено" от ошибки запроса
func hintFor(results []dto.VenueResult) string {
	if len(results) == 0 {
		return emptyResultsHint
	}
	return ""
}

// fetchVenues возвращает заведения из кеша либо выполняет fetch.
// Одновременные запросы с одинаковым ключом схлопываются в один fetch.
func (uc *VenueUseCase) fetchVenues(
	ctx context.Context,
	cacheKey string,
	fetch func(ctx context.Context) ([]*domain.Establishment, error),
) ([]*domain.Establishment, bool, error) {
	cached, err := uc.cacheRepo.GetVenues(ctx, cacheKey)
	if err != nil {
		// Недоступный кеш не блокирует поиск
		uc.logger.Warn("Venue cache read failed", zap.String("key", cacheKey), zap.Error(err))
	}
	if cached != nil {
		uc.logger.Debug("Venue cache hit", zap.String("key", cacheKey))
		return cached, true, nil
	}

	// Замыкание выполняет только лидер схлопнутой группы; остальные
	// получают его результат и отчитываются как cache hit
	fetched := false
	result, err, _ := uc.group.Do(cacheKey, func() (interface{}, error) {
		fetched = true
		venues, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		if err := uc.cacheRepo.SetVenues(ctx, cacheKey, venues, uc.cacheTTL); err != nil {
			uc.logger.Warn("Venue cache write failed", zap.String("key", cacheKey), zap.Error(err))
		}
		return venues, nil
	})
	if err != nil {
		return nil, false, mapFetchError(err)
	}

	return result.([]*domain.Establishment), !fetched, nil
}

// mapFetchError переводит ошибки источника данных в ошибки API
func mapFetchError(err error) error {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	if stderrors.Is(err, repository.ErrRateLimited) {
		return errors.ErrTooManyRequests
	}
	return errors.ErrUpstreamUnavailable
}

// buildResults фильтрует заведения и добавляет расстояние и азимут
// от опорной точки. При наличии точки результаты сортируются по расстоянию.
func (uc *VenueUseCase) buildResults(venues []*domain.Establishment, ref *domain.Point, openOnly bool) []dto.VenueResult {
	results := make([]dto.VenueResult, 0, len(venues))
	for _, v := range venues {
		if openOnly && !v.Open {
			continue
		}

		var distanceKm, bearing *float64
		if ref != nil {
			d := utils.HaversineDistance(ref.Lat, ref.Lon, v.Lat, v.Lon)
			b := utils.InitialBearing(ref.Lat, ref.Lon, v.Lat, v.Lon)
			distanceKm, bearing = &d, &b
		}
		results = append(results, dto.ConvertVenueResult(*v, distanceKm, bearing))
	}

	if ref != nil {
		sort.Slice(results, func(i, j int) bool {
			return *results[i].DistanceKm < *results[j].DistanceKm
		})
	} else {
		sort.Slice(results, func(i, j int) bool {
			return results[i].Name < results[j].Name
		})
	}

	return results
}

// publishEvent отправляет событие поиска в стрим статистики
func (uc *VenueUseCase) publishEvent(ctx context.Context, event *domain.SearchEvent) {
	if uc.streamRepo == nil {
		return
	}
	if err := uc.streamRepo.PublishToStream(ctx, domain.StreamSearchLog, event); err != nil {
		// Статистика не должна ломать поиск
		uc.logger.Warn("Failed to publish search event", zap.Error(err))
	}
}

// normalizeCategories валидирует, дедуплицирует и сортирует категории
func normalizeCategories(categories []string) ([]domain.VenueType, error) {
	if len(categories) == 0 {
		return nil, errors.ErrInvalidRequest
	}

	seen := make(map[domain.VenueType]bool, len(categories))
	types := make([]domain.VenueType, 0, len(categories))
	for _, c := range categories {
		if !domain.IsValidVenueType(c) {
			return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
				"category": c,
			})
		}
		t := domain.VenueType(c)
		if seen[t] {
			continue
		}
		seen[t] = true
		types = append(types, t)
	}

	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types, nil
}

func joinTypes(types []domain.VenueType) string {
	parts := make([]string, 0, len(types))
	for _, t := range types {
		parts = append(parts, string(t))
	}
	return strings.Join(parts, ",")
}
