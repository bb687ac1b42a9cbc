package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/venue-compass/internal/domain"
	"github.com/venue-compass/internal/usecase"
)

func TestStatsUseCase_GetStatistics(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	lastSearch := time.Date(2026, 8, 29, 18, 0, 0, 0, time.UTC)
	dbStats := &domain.SearchStats{
		TotalSearches: 42,
		CacheHits:     30,
		ByMode:        map[string]int{"proximity": 40, "city": 2},
		ByCategory:    map[string]int{"bar": 35, "restaurant": 7},
		AvgDurationMs: 120.5,
		AvgResults:    14.2,
		LastSearchAt:  &lastSearch,
	}

	t.Run("returns cached stats without touching database", func(t *testing.T) {
		mockLog := &MockSearchLogRepository{}
		mockCache := &MockCacheRepository{}

		mockCache.On("GetStats", mock.Anything).Return(dbStats, nil)

		uc := usecase.NewStatsUseCase(mockLog, mockCache, logger, time.Hour)

		resp, err := uc.GetStatistics(ctx)
		require.NoError(t, err)
		assert.Equal(t, 42, resp.TotalSearches)
		assert.Equal(t, 30, resp.CacheHits)
		mockLog.AssertNotCalled(t, "Aggregate")
	})

	t.Run("aggregates and caches on miss with configured TTL", func(t *testing.T) {
		mockLog := &MockSearchLogRepository{}
		mockCache := &MockCacheRepository{}

		mockCache.On("GetStats", mock.Anything).Return(nil, nil)
		mockLog.On("Aggregate", mock.Anything).Return(dbStats, nil)
		mockCache.On("SetStats", mock.Anything, dbStats, 90*time.Second).Return(nil)

		uc := usecase.NewStatsUseCase(mockLog, mockCache, logger, 90*time.Second)

		resp, err := uc.GetStatistics(ctx)
		require.NoError(t, err)
		assert.Equal(t, 42, resp.TotalSearches)
		assert.Equal(t, map[string]int{"bar": 35, "restaurant": 7}, resp.ByCategory)
		mockCache.AssertCalled(t, "SetStats", mock.Anything, dbStats, 90*time.Second)
	})

	t.Run("cache write failure does not fail the request", func(t *testing.T) {
		mockLog := &MockSearchLogRepository{}
		mockCache := &MockCacheRepository{}

		mockCache.On("GetStats", mock.Anything).Return(nil, nil)
		mockLog.On("Aggregate", mock.Anything).Return(dbStats, nil)
		mockCache.On("SetStats", mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

		uc := usecase.NewStatsUseCase(mockLog, mockCache, logger, time.Hour)

		resp, err := uc.GetStatistics(ctx)
		require.NoError(t, err)
		assert.Equal(t, 42, resp.TotalSearches)
	})
}
