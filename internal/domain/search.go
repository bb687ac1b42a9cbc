package domain

import (
	"time"

	"github.com/google/uuid"
)

// SearchMode - режим поиска заведений
type SearchMode string

const (
	// SearchModeProximity - радиус вокруг текущей позиции
	SearchModeProximity SearchMode = "proximity"
	// SearchModeCity - область выбранного города
	SearchModeCity SearchMode = "city"
)

// Stream names
const (
	StreamSearchLog = "stream:search:log"
)

// SearchEvent - событие выполненного поиска для статистики
type SearchEvent struct {
	ID          uuid.UUID   `json:"id"`
	Mode        SearchMode  `json:"mode"`
	Categories  []VenueType `json:"categories"`
	RadiusKm    float64     `json:"radius_km,omitempty"`
	City        string      `json:"city,omitempty"`
	ResultCount int         `json:"result_count"`
	CacheHit    bool        `json:"cache_hit"`
	DurationMs  float64     `json:"duration_ms"`
	CreatedAt   time.Time   `json:"created_at"`
}

// SearchStats - агрегированная статистика поисков
type SearchStats struct {
	TotalSearches int            `json:"total_searches"`
	CacheHits     int            `json:"cache_hits"`
	ByMode        map[string]int `json:"by_mode"`
	ByCategory    map[string]int `json:"by_category"`
	AvgDurationMs float64        `json:"avg_duration_ms"`
	AvgResults    float64        `json:"avg_results"`
	LastSearchAt  *time.Time     `json:"last_search_at,omitempty"`
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
