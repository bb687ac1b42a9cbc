package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/venue-compass/internal/config"
	"github.com/venue-compass/internal/domain"
	"github.com/venue-compass/internal/domain/repository"
	"go.uber.org/zap"
)

type client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	maxResults int
	logger     *zap.Logger
}

// searchResult - запись ответа Nominatim; числа приходят строками
type searchResult struct {
	DisplayName string   `json:"display_name"`
	Lat         string   `json:"lat"`
	Lon         string   `json:"lon"`
	BoundingBox []string `json:"boundingbox"`
	Importance  float64  `json:"importance"`
}

// NewNominatimClient создает новый клиент геокодирования городов
func NewNominatimClient(cfg *config.NominatimConfig, logger *zap.Logger) repository.GeocodeRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL:    cfg.BaseURL,
		userAgent:  cfg.UserAgent,
		maxResults: cfg.MaxResults,
		logger:     logger,
	}
}

// SearchCity возвращает ранжированный список совпадений по имени города
func (c *client) SearchCity(ctx context.Context, name string, limit int) ([]domain.CityMatch, error) {
	if limit <= 0 || limit > c.maxResults {
		limit = c.maxResults
	}

	params := url.Values{}
	params.Set("q", name)
	params.Set("format", "json")
	params.Set("limit", strconv.Itoa(limit))

	reqURL := fmt.Sprintf("%s/search?%s", c.baseURL, params.Encode())

	c.logger.Debug("Calling Nominatim search",
		zap.String("query", name),
		zap.Int("limit", limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Nominatim request failed", zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("Nominatim returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("nominatim error: status %d", resp.StatusCode)
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	matches := make([]domain.CityMatch, 0, len(results))
	for _, r := range results {
		match, ok := toMatch(r)
		if !ok {
			continue
		}
		matches = append(matches, match)
	}

	return matches, nil
}

func toMatch(r searchResult) (domain.CityMatch, bool) {
	lat, err := strconv.ParseFloat(r.Lat, 64)
	if err != nil {
		return domain.CityMatch{}, false
	}
	lon, err := strconv.ParseFloat(r.Lon, 64)
	if err != nil {
		return domain.CityMatch{}, false
	}

	match := domain.CityMatch{
		Name:       r.DisplayName,
		Lat:        lat,
		Lon:        lon,
		Importance: r.Importance,
	}

	// boundingbox: [minlat, maxlat, minlon, maxlon] строками
	if len(r.BoundingBox) == 4 {
		minLat, err1 := strconv.ParseFloat(r.BoundingBox[0], 64)
		maxLat, err2 := strconv.ParseFloat(r.BoundingBox[1], 64)
		minLon, err3 := strconv.ParseFloat(r.BoundingBox[2], 64)
		maxLon, err4 := strconv.ParseFloat(r.BoundingBox[3], 64)
		if err1 == nil && err2 == nil && err3 == nil && err4 == nil {
			match.BoundingBox = &domain.BoundingBox{
				MinLat: minLat,
				MinLon: minLon,
				MaxLat: maxLat,
				MaxLon: maxLon,
			}
		}
	}

	return match, true
}
