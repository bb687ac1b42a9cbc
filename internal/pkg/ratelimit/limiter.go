package ratelimit

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	// jitterMax - верхняя граница случайной добавки к ожиданию,
	// размазывает запросы от параллельных инстансов
	jitterMax = 150 * time.Millisecond
)

// Limiter ограничивает частоту исходящих запросов к сервису геоданных.
// Два ограничения действуют одновременно: минимальный интервал между
// запросами и скользящее окно с максимальным числом выдач.
// Слоты выдаются строго по одному, в порядке обращения.
type Limiter struct {
	minInterval  time.Duration
	windowLength time.Duration
	maxPerWindow int
	logger       *zap.Logger

	mu     sync.Mutex
	tail   chan struct{} // цепочка ожидающих: новый ждет закрытия предыдущего
	last   time.Time
	window []time.Time
}

// New создает новый Limiter
func New(minInterval, windowLength time.Duration, maxPerWindow int, logger *zap.Logger) *Limiter {
	return &Limiter{
		minInterval:  minInterval,
		windowLength: windowLength,
		maxPerWindow: maxPerWindow,
		logger:       logger,
	}
}

// Acquire блокирует до получения слота на один сетевой запрос.
// Возвращает ошибку только при отмене контекста.
func (l *Limiter) Acquire(ctx context.Context) error {
	// Встаем в очередь: ждем завершения предыдущего захвата
	l.mu.Lock()
	prev := l.tail
	done := make(chan struct{})
	l.tail = done
	l.mu.Unlock()

	// Передаем очередь следующему независимо от исхода
	defer close(done)

	if prev != nil {
		select {
		case <-prev:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	for {
		wait := l.nextWait()
		if wait <= 0 {
			return nil
		}

		l.logger.Debug("Rate limit wait",
			zap.Duration("wait", wait))

		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
	}
}

// nextWait вычисляет требуемое ожидание; при нулевом ожидании
// сразу фиксирует выдачу слота
func (l *Limiter) nextWait() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()

	// Минимальный интервал от последней выдачи
	if !l.last.IsZero() {
		if since := now.Sub(l.last); since < l.minInterval {
			return l.minInterval - since + jitter()
		}
	}

	// Скользящее окно: выбрасываем выдачи старше длины окна
	cutoff := now.Add(-l.windowLength)
	kept := l.window[:0]
	for _, t := range l.window {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	l.window = kept

	if len(l.window) >= l.maxPerWindow {
		oldest := l.window[0]
		return oldest.Add(l.windowLength).Sub(now) + jitter()
	}

	l.window = append(l.window, now)
	l.last = now
	return 0
}

func jitter() time.Duration {
	return time.Duration(rand.Int63n(int64(jitterMax)))
}
