package dto

import (
	"time"

	"github.com/venue-compass/internal/domain"
)

// VenueResult - заведение с расстоянием и азимутом от опорной точки
type VenueResult struct {
	Key        string            `json:"key"`
	Name       string            `json:"name"`
	Type       string            `json:"type"`
	Label      string            `json:"label"`
	Lat        float64           `json:"lat"`
	Lon        float64           `json:"lon"`
	Open       bool              `json:"open"`
	City       string            `json:"city,omitempty"`
	DistanceKm *float64          `json:"distance_km,omitempty"`
	Bearing    *float64          `json:"bearing,omitempty"`
	Tags       map[string]string `json:"tags,omitempty"`
}

// VenuesResponse - ответ на поиск заведений
type VenuesResponse struct {
	Venues []VenueResult `json:"venues"`
	Total  int           `json:"total"`
	Cached bool          `json:"cached"`
	Hint   string        `json:"hint,omitempty"`
}

// ConvertVenueResult преобразует доменное заведение в результат поиска
func ConvertVenueResult(e domain.Establishment, distanceKm, bearing *float64) VenueResult {
	return VenueResult{
		Key:        e.Key,
		Name:       e.Name,
		Type:       string(e.Type),
		Label:      e.Type.Label(),
		Lat:        e.Lat,
		Lon:        e.Lon,
		Open:       e.Open,
		City:       e.City,
		DistanceKm: distanceKm,
		Bearing:    bearing,
		Tags:       e.Tags,
	}
}

// CitySuggestion - подсказка города
type CitySuggestion struct {
	Name       string              `json:"name"`
	Lat        float64             `json:"lat"`
	Lon        float64             `json:"lon"`
	Bounds     *domain.BoundingBox `json:"bounds,omitempty"`
	Importance float64             `json:"importance"`
}

// SuggestCitiesResponse - ответ на подсказки городов
type SuggestCitiesResponse struct {
	Cities []CitySuggestion `json:"cities"`
	Total  int              `json:"total"`
}

// HeadingSessionResponse - состояние сессии компаса
type HeadingSessionResponse struct {
	SessionID string `json:"session_id"`
	Provider  string `json:"provider"`
}

// HeadingResponse - сглаженный курс после обработки пакета показаний
type HeadingResponse struct {
	SessionID string   `json:"session_id"`
	Heading   *float64 `json:"heading,omitempty"`
	Provider  string   `json:"provider"`
}

// SearchStatsResponse - агрегированная статистика поисков
type SearchStatsResponse struct {
	TotalSearches int            `json:"total_searches"`
	CacheHits     int            `json:"cache_hits"`
	ByMode        map[string]int `json:"by_mode"`
	ByCategory    map[string]int `json:"by_category"`
	AvgDurationMs float64        `json:"avg_duration_ms"`
	AvgResults    float64        `json:"avg_results"`
	LastSearchAt  *time.Time     `json:"last_search_at,omitempty"`
}
