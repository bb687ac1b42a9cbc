package overpass

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/venue-compass/internal/config"
	"github.com/venue-compass/internal/domain"
	"github.com/venue-compass/internal/domain/repository"
	"github.com/venue-compass/internal/pkg/ratelimit"
	"go.uber.org/zap"
)

const (
	// backoffJitterMax - джиттер к экспоненциальному бэкоффу после 429
	backoffJitterMax = 250 * time.Millisecond
	// networkJitterMax - джиттер к паузе после сетевой ошибки
	networkJitterMax = 100 * time.Millisecond
	// maxBackoffShift - ограничение экспоненты бэкоффа
	maxBackoffShift = 4
)

type client struct {
	httpClient  *http.Client
	endpoints   []string
	limiter     *ratelimit.Limiter
	backoffBase time.Duration
	logger      *zap.Logger

	mu     sync.Mutex
	cursor int
}

// NewOverpassClient создает новый клиент Overpass API с ротацией
// эндпоинтов и общим рейт-лимитером
func NewOverpassClient(cfg *config.OverpassConfig, limiter *ratelimit.Limiter, logger *zap.Logger) repository.OverpassRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		endpoints:   cfg.Endpoints,
		limiter:     limiter,
		backoffBase: cfg.BackoffBase,
		logger:      logger,
	}
}

// QueryAround возвращает заведения в радиусе вокруг точки
func (c *client) QueryAround(
	ctx context.Context,
	center domain.Point,
	radiusMeters float64,
	types []domain.VenueType,
) ([]*domain.Establishment, error) {
	query := buildAroundQuery(center, radiusMeters, types)
	elements, err := c.execute(ctx, query)
	if err != nil {
		return nil, err
	}
	return mapElements(elements, c.logger), nil
}

// QueryBoundingBox возвращает заведения внутри прямоугольной области
func (c *client) QueryBoundingBox(
	ctx context.Context,
	box domain.BoundingBox,
	types []domain.VenueType,
) ([]*domain.Establishment, error) {
	query := buildBoundingBoxQuery(box, types)
	elements, err := c.execute(ctx, query)
	if err != nil {
		return nil, err
	}
	return mapElements(elements, c.logger), nil
}

// currentEndpoint возвращает эндпоинт под общим курсором
func (c *client) currentEndpoint() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.endpoints[c.cursor%len(c.endpoints)]
}

// advanceCursor сдвигает общий курсор на следующий эндпоинт
func (c *client) advanceCursor() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cursor = (c.cursor + 1) % len(c.endpoints)
}

// execute выполняет запрос с фейловером: на каждую физическую попытку
// берется слот рейт-лимитера, при 429 - экспоненциальный бэкофф и
// переход к следующему эндпоинту, при прочих ошибках - переход сразу.
// Число попыток ограничено удвоенным количеством эндпоинтов.
func (c *client) execute(ctx context.Context, query string) ([]element, error) {
	maxAttempts := 2 * len(c.endpoints)

	var lastErr error
	rateLimited := false

	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := c.limiter.Acquire(ctx); err != nil {
			return nil, err
		}

		endpoint := c.currentEndpoint()
		elements, status, err := c.post(ctx, endpoint, query)
		if err == nil && status == http.StatusOK {
			return elements, nil
		}

		switch {
		case err != nil:
			lastErr = err
			rateLimited = false
			c.logger.Warn("Overpass request failed",
				zap.String("endpoint", endpoint),
				zap.Int("attempt", attempt),
				zap.Error(err))
			c.advanceCursor()
			if serr := c.sleep(ctx, c.backoffBase+randDuration(networkJitterMax)); serr != nil {
				return nil, serr
			}

		case status == http.StatusTooManyRequests:
			lastErr = fmt.Errorf("endpoint %s: too many requests", endpoint)
			rateLimited = true
			backoff := c.backoff(attempt)
			c.logger.Warn("Overpass rate limited, backing off",
				zap.String("endpoint", endpoint),
				zap.Int("attempt", attempt),
				zap.Duration("backoff", backoff))
			if serr := c.sleep(ctx, backoff); serr != nil {
				return nil, serr
			}
			c.advanceCursor()

		default:
			lastErr = fmt.Errorf("endpoint %s: status %d", endpoint, status)
			rateLimited = false
			c.logger.Warn("Overpass returned error status",
				zap.String("endpoint", endpoint),
				zap.Int("attempt", attempt),
				zap.Int("status", status))
			c.advanceCursor()
		}
	}

	c.logger.Error("Overpass attempts exhausted",
		zap.Int("max_attempts", maxAttempts),
		zap.Error(lastErr))

	if rateLimited {
		return nil, fmt.Errorf("%w: %v", repository.ErrRateLimited, lastErr)
	}
	return nil, fmt.Errorf("overpass: all attempts failed: %w", lastErr)
}

// post отправляет запрос одному эндпоинту; статус возвращается
// отдельно, чтобы различать 429 и прочие ошибки
func (c *client) post(ctx context.Context, endpoint, query string) ([]element, int, error) {
	form := url.Values{"data": {query}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, resp.StatusCode, nil
	}

	var envelope response
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
	}

	return envelope.Elements, resp.StatusCode, nil
}

// backoff вычисляет задержку после 429: base * 2^min(attempt,4) + джиттер
func (c *client) backoff(attempt int) time.Duration {
	shift := attempt
	if shift > maxBackoffShift {
		shift = maxBackoffShift
	}
	return c.backoffBase*(1<<shift) + randDuration(backoffJitterMax)
}

func (c *client) sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func randDuration(max time.Duration) time.Duration {
	return time.Duration(rand.Int63n(int64(max)))
}
