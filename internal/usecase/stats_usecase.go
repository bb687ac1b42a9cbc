package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/venue-compass/internal/domain"
	"github.com/venue-compass/internal/domain/repository"
	"github.com/venue-compass/internal/usecase/dto"
)

// StatsUseCase обрабатывает бизнес-логику для статистики поисков
type StatsUseCase struct {
	searchLogRepo repository.SearchLogRepository
	cacheRepo     repository.CacheRepository
	logger        *zap.Logger
	cacheTTL      time.Duration
}

// NewStatsUseCase создает новый экземпляр StatsUseCase. Кеш живет
// cacheTTL, но воркер обновляет его раньше после обработки очередной
// пачки событий
func NewStatsUseCase(
	searchLogRepo repository.SearchLogRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *StatsUseCase {
	return &StatsUseCase{
		searchLogRepo: searchLogRepo,
		cacheRepo:     cacheRepo,
		logger:        logger,
		cacheTTL:      cacheTTL,
	}
}

// GetStatistics возвращает статистику, используя кеш когда возможно
func (uc *StatsUseCase) GetStatistics(ctx context.Context) (*dto.SearchStatsResponse, error) {
	// 1. Проверяем кеш
	cached, err := uc.cacheRepo.GetStats(ctx)
	if err == nil && cached != nil {
		uc.logger.Debug("Statistics fetched from cache")
		return convertStats(cached), nil
	}
	if err != nil {
		uc.logger.Warn("Failed to get stats from cache", zap.Error(err))
	}

	// 2. Агрегируем из БД
	stats, err := uc.Refresh(ctx)
	if err != nil {
		return nil, err
	}
	return convertStats(stats), nil
}

// Refresh агрегирует журнал поисков и обновляет кеш
func (uc *StatsUseCase) Refresh(ctx context.Context) (*domain.SearchStats, error) {
	stats, err := uc.searchLogRepo.Aggregate(ctx)
	if err != nil {
		return nil, fmt.Errorf("aggregate search log: %w", err)
	}

	if err := uc.cacheRepo.SetStats(ctx, stats, uc.cacheTTL); err != nil {
		uc.logger.Warn("Failed to cache stats", zap.Error(err))
		// Не возвращаем ошибку, т.к. данные уже получены
	}

	return stats, nil
}

func convertStats(s *domain.SearchStats) *dto.SearchStatsResponse {
	return &dto.SearchStatsResponse{
		TotalSearches: s.TotalSearches,
		CacheHits:     s.CacheHits,
		ByMode:        s.ByMode,
		ByCategory:    s.ByCategory,
		AvgDurationMs: s.AvgDurationMs,
		AvgResults:    s.AvgResults,
		LastSearchAt:  s.LastSearchAt,
	}
}
