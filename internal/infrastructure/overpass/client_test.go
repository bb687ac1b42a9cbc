package overpass

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/venue-compass/internal/config"
	"github.com/venue-compass/internal/domain"
	"github.com/venue-compass/internal/domain/repository"
	"github.com/venue-compass/internal/pkg/ratelimit"
)

func testLimiter() *ratelimit.Limiter {
	// Щадящие лимиты, чтобы тесты не ждали
	return ratelimit.New(time.Millisecond, 10*time.Millisecond, 100, zap.NewNop())
}

func newTestClient(endpoints []string, backoffBase time.Duration) *client {
	cfg := &config.OverpassConfig{
		Endpoints:      endpoints,
		RequestTimeout: 5 * time.Second,
		BackoffBase:    backoffBase,
	}
	return NewOverpassClient(cfg, testLimiter(), zap.NewNop()).(*client)
}

const barsBody = `{"elements":[
	{"type":"node","id":1,"lat":48.8566,"lon":2.3522,"tags":{"amenity":"bar","name":"Chez Momo"}},
	{"type":"node","id":2,"lat":48.8570,"lon":2.3530,"tags":{"amenity":"pub"}},
	{"type":"node","id":3,"lat":48.8580,"lon":2.3540,"tags":{"shop":"shoes"}}
]}`

func TestClient_QueryAround(t *testing.T) {
	t.Run("successful request maps venues", func(t *testing.T) {
		var gotBody string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			gotBody = r.PostFormValue("data")
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(barsBody))
		}))
		defer server.Close()

		c := newTestClient([]string{server.URL}, 10*time.Millisecond)

		venues, err := c.QueryAround(context.Background(),
			domain.Point{Lat: 48.8566, Lon: 2.3522}, 5000, []domain.VenueType{domain.VenueBar})
		require.NoError(t, err)

		// 2 бара из 3 записей: немаппируемый магазин отброшен
		require.Len(t, venues, 2)
		assert.Equal(t, domain.VenueBar, venues[0].Type)
		assert.Equal(t, domain.VenueBar, venues[1].Type)
		assert.Equal(t, "Chez Momo", venues[0].Name)
		assert.Equal(t, "Bar sans nom", venues[1].Name)

		assert.Contains(t, gotBody, `node["amenity"="bar"]`)
	})

	t.Run("429 fails over to next endpoint after backoff", func(t *testing.T) {
		var firstHits, secondHits int32

		first := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&firstHits, 1)
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer first.Close()

		second := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&secondHits, 1)
			w.Write([]byte(barsBody))
		}))
		defer second.Close()

		backoffBase := 30 * time.Millisecond
		c := newTestClient([]string{first.URL, second.URL}, backoffBase)

		start := time.Now()
		venues, err := c.QueryAround(context.Background(),
			domain.Point{Lat: 48.8566, Lon: 2.3522}, 5000, []domain.VenueType{domain.VenueBar})
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.Len(t, venues, 2)
		assert.Equal(t, int32(1), atomic.LoadInt32(&firstHits))
		assert.Equal(t, int32(1), atomic.LoadInt32(&secondHits))
		assert.GreaterOrEqual(t, elapsed, backoffBase)
	})

	t.Run("server error advances cursor without success", func(t *testing.T) {
		var hits int32
		broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&hits, 1)
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer broken.Close()

		healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(barsBody))
		}))
		defer healthy.Close()

		c := newTestClient([]string{broken.URL, healthy.URL}, time.Millisecond)

		venues, err := c.QueryAround(context.Background(),
			domain.Point{Lat: 48.8566, Lon: 2.3522}, 5000, []domain.VenueType{domain.VenueBar})
		require.NoError(t, err)
		assert.Len(t, venues, 2)
		assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
	})

	t.Run("exhausted attempts return last error", func(t *testing.T) {
		var hits int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&hits, 1)
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		c := newTestClient([]string{server.URL}, time.Millisecond)

		_, err := c.QueryAround(context.Background(),
			domain.Point{Lat: 48.8566, Lon: 2.3522}, 5000, []domain.VenueType{domain.VenueBar})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "all attempts failed")
		// Удвоенное число эндпоинтов
		assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
	})

	t.Run("all endpoints rate limited yields typed error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		c := newTestClient([]string{server.URL}, time.Millisecond)

		_, err := c.QueryAround(context.Background(),
			domain.Point{Lat: 48.8566, Lon: 2.3522}, 5000, []domain.VenueType{domain.VenueBar})
		require.Error(t, err)
		assert.ErrorIs(t, err, repository.ErrRateLimited)
	})
}

func TestClient_QueryBoundingBox(t *testing.T) {
	var gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotBody = r.PostFormValue("data")
		w.Write([]byte(`{"elements":[]}`))
	}))
	defer server.Close()

	c := newTestClient([]string{server.URL}, time.Millisecond)

	venues, err := c.QueryBoundingBox(context.Background(),
		domain.BoundingBox{MinLat: 48.1, MinLon: 2.1, MaxLat: 48.9, MaxLon: 2.9},
		[]domain.VenueType{domain.VenueRestaurant})
	require.NoError(t, err)
	assert.Empty(t, venues)
	assert.Contains(t, gotBody, `node["amenity"="restaurant"](48.100000,2.100000,48.900000,2.900000);`)
}
