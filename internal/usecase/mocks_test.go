package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/venue-compass/internal/domain"
)

// MockOverpassRepository is a mock of OverpassRepository
type MockOverpassRepository struct {
	mock.Mock
}

func (m *MockOverpassRepository) QueryAround(ctx context.Context, center domain.Point, radiusMeters float64, types []domain.VenueType) ([]*domain.Establishment, error) {
	args := m.Called(ctx, center, radiusMeters, types)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Establishment), args.Error(1)
}

func (m *MockOverpassRepository) QueryBoundingBox(ctx context.Context, box domain.BoundingBox, types []domain.VenueType) ([]*domain.Establishment, error) {
	args := m.Called(ctx, box, types)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Establishment), args.Error(1)
}

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) GetVenues(ctx context.Context, key string) ([]*domain.Establishment, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Establishment), args.Error(1)
}

func (m *MockCacheRepository) SetVenues(ctx context.Context, key string, venues []*domain.Establishment, ttl time.Duration) error {
	args := m.Called(ctx, key, venues, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) GetStats(ctx context.Context) (*domain.SearchStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SearchStats), args.Error(1)
}

func (m *MockCacheRepository) SetStats(ctx context.Context, stats *domain.SearchStats, ttl time.Duration) error {
	args := m.Called(ctx, stats, ttl)
	return args.Error(0)
}

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) ConsumeBatch(ctx context.Context, stream, group, consumer string, count int) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	args := m.Called(ctx, stream, group, messageID)
	return args.Error(0)
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}

// MockGeocodeRepository is a mock of GeocodeRepository
type MockGeocodeRepository struct {
	mock.Mock
}

func (m *MockGeocodeRepository) SearchCity(ctx context.Context, name string, limit int) ([]domain.CityMatch, error) {
	args := m.Called(ctx, name, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CityMatch), args.Error(1)
}

// MockSearchLogRepository is a mock of SearchLogRepository
type MockSearchLogRepository struct {
	mock.Mock
}

func (m *MockSearchLogRepository) InsertEvents(ctx context.Context, events []*domain.SearchEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

func (m *MockSearchLogRepository) Aggregate(ctx context.Context) (*domain.SearchStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SearchStats), args.Error(1)
}
