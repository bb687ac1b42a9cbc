package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/venue-compass/internal/domain"
	"github.com/venue-compass/internal/pkg/errors"
	"github.com/venue-compass/internal/usecase"
	"github.com/venue-compass/internal/usecase/dto"
)

func TestCityUseCase_Suggest(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("returns ranked suggestions", func(t *testing.T) {
		mockGeocode := &MockGeocodeRepository{}
		mockGeocode.On("SearchCity", mock.Anything, "Lyo", 5).Return([]domain.CityMatch{
			{Name: "Lyon, France", Lat: 45.7640, Lon: 4.8357, Importance: 0.87},
			{Name: "Lyons, Colorado", Lat: 40.2247, Lon: -105.2714, Importance: 0.42},
		}, nil)

		uc := usecase.NewCityUseCase(mockGeocode, logger)

		resp, err := uc.Suggest(ctx, dto.SuggestCitiesRequest{Query: "Lyo"})
		require.NoError(t, err)
		require.Equal(t, 2, resp.Total)
		assert.Equal(t, "Lyon, France", resp.Cities[0].Name)
		assert.Greater(t, resp.Cities[0].Importance, resp.Cities[1].Importance)
	})

	t.Run("upstream failure maps to upstream error", func(t *testing.T) {
		mockGeocode := &MockGeocodeRepository{}
		mockGeocode.On("SearchCity", mock.Anything, "Lyo", 5).Return(nil, assert.AnError)

		uc := usecase.NewCityUseCase(mockGeocode, logger)

		_, err := uc.Suggest(ctx, dto.SuggestCitiesRequest{Query: "Lyo"})
		assert.ErrorIs(t, err, errors.ErrUpstreamUnavailable)
	})
}

func TestCityUseCase_ResolveBest(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("picks the top match", func(t *testing.T) {
		mockGeocode := &MockGeocodeRepository{}
		mockGeocode.On("SearchCity", mock.Anything, "Lyon", 1).Return([]domain.CityMatch{
			{Name: "Lyon, France", Lat: 45.7640, Lon: 4.8357, Importance: 0.87},
		}, nil)

		uc := usecase.NewCityUseCase(mockGeocode, logger)

		match, err := uc.ResolveBest(ctx, " Lyon ")
		require.NoError(t, err)
		assert.Equal(t, "Lyon, France", match.Name)
	})

	t.Run("no matches", func(t *testing.T) {
		mockGeocode := &MockGeocodeRepository{}
		mockGeocode.On("SearchCity", mock.Anything, "Atlantis", 1).Return([]domain.CityMatch{}, nil)

		uc := usecase.NewCityUseCase(mockGeocode, logger)

		_, err := uc.ResolveBest(ctx, "Atlantis")
		assert.ErrorIs(t, err, errors.ErrCityNotFound)
	})
}
