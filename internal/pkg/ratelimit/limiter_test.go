package ratelimit_test

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/venue-compass/internal/pkg/ratelimit"
)

func TestLimiter_MinInterval(t *testing.T) {
	limiter := ratelimit.New(50*time.Millisecond, time.Second, 100, zap.NewNop())
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, limiter.Acquire(ctx))
	}

	// Две паузы между тремя выдачами
	assert.GreaterOrEqual(t, time.Since(start), 100*time.Millisecond)
}

func TestLimiter_SlidingWindow(t *testing.T) {
	// Окно 200мс, максимум 2 выдачи; интервал не мешает
	limiter := ratelimit.New(time.Millisecond, 200*time.Millisecond, 2, zap.NewNop())
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, limiter.Acquire(ctx))
	}

	// Третья выдача ждет, пока первая не выйдет из окна
	assert.GreaterOrEqual(t, time.Since(start), 200*time.Millisecond)
}

func TestLimiter_ConcurrentGrantsAreSpaced(t *testing.T) {
	limiter := ratelimit.New(30*time.Millisecond, time.Second, 100, zap.NewNop())
	ctx := context.Background()

	var mu sync.Mutex
	var grants []time.Time

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, limiter.Acquire(ctx))
			mu.Lock()
			grants = append(grants, time.Now())
			mu.Unlock()
		}()
	}
	wg.Wait()

	require.Len(t, grants, 4)
	sort.Slice(grants, func(i, j int) bool { return grants[i].Before(grants[j]) })
	for i := 1; i < len(grants); i++ {
		assert.GreaterOrEqual(t, grants[i].Sub(grants[i-1]), 25*time.Millisecond)
	}
}

func TestLimiter_ContextCancel(t *testing.T) {
	limiter := ratelimit.New(time.Second, 10*time.Second, 100, zap.NewNop())

	require.NoError(t, limiter.Acquire(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := limiter.Acquire(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
