package debounce

import (
	"sync"
	"time"
)

// Debouncer откладывает вызов функции на фиксированную задержку.
// Повторное планирование отменяет еще не сработавший вызов и
// запускает отсчет заново.
type Debouncer struct {
	wait time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// New создает новый Debouncer с заданной задержкой
func New(wait time.Duration) *Debouncer {
	return &Debouncer{wait: wait}
}

// Schedule планирует вызов fn после задержки, отменяя предыдущий
func (d *Debouncer) Schedule(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.wait, fn)
}

// Cancel отменяет запланированный вызов, если он есть
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
