package debounce_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/venue-compass/internal/pkg/debounce"
)

func TestDebouncer_Schedule(t *testing.T) {
	t.Run("single call fires after the wait", func(t *testing.T) {
		d := debounce.New(20 * time.Millisecond)
		var calls int32

		d.Schedule(func() { atomic.AddInt32(&calls, 1) })

		assert.Eventually(t, func() bool {
			return atomic.LoadInt32(&calls) == 1
		}, time.Second, 5*time.Millisecond)
	})

	t.Run("rescheduling replaces the pending call", func(t *testing.T) {
		d := debounce.New(30 * time.Millisecond)
		var calls int32

		for i := 0; i < 5; i++ {
			d.Schedule(func() { atomic.AddInt32(&calls, 1) })
			time.Sleep(5 * time.Millisecond)
		}

		assert.Eventually(t, func() bool {
			return atomic.LoadInt32(&calls) == 1
		}, time.Second, 5*time.Millisecond)

		// Больше вызовов не происходит
		time.Sleep(50 * time.Millisecond)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})

	t.Run("cancel drops the pending call", func(t *testing.T) {
		d := debounce.New(20 * time.Millisecond)
		var calls int32

		d.Schedule(func() { atomic.AddInt32(&calls, 1) })
		d.Cancel()

		time.Sleep(60 * time.Millisecond)
		assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
	})
}
