package heading

import (
	"sync"

	"github.com/venue-compass/internal/domain"
)

// Estimator превращает поток сырых сэмплов активного провайдера
// в поток нормализованных сглаженных азимутов. Состояние живет
// в рамках одной сессии отслеживания и сбрасывается при остановке.
type Estimator struct {
	mu sync.Mutex

	caps    domain.OrientationCapabilities
	cascade []domain.ProviderKind
	active  int

	// Сглаживание: первый сэмпл после активации выдается как есть
	hasPrev  bool
	smoothed float64

	// Последние показания для магнитометрического провайдера;
	// пара без одного из векторов подавляет выдачу
	lastAccel *domain.Vector3
	lastMag   *domain.Vector3

	stopped bool
	lastErr string
}

// NewEstimator выбирает каскад провайдеров и создает оценщик.
// Возвращает ErrUnsupported или ErrPermissionDenied, если
// активировать отслеживание невозможно.
func NewEstimator(caps domain.OrientationCapabilities) (*Estimator, error) {
	cascade, err := SelectProviders(caps)
	if err != nil {
		return nil, err
	}
	return &Estimator{
		caps:    caps,
		cascade: cascade,
	}, nil
}

// Provider возвращает активный провайдер
func (e *Estimator) Provider() domain.ProviderKind {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cascade[e.active]
}

// LastError возвращает описание последней ошибки провайдера
func (e *Estimator) LastError() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastErr
}

// Push обрабатывает сырой сэмпл. Возвращает nil без ошибки, когда
// сэмпл не дает показания (неполная пара векторов, чужое поле).
func (e *Estimator) Push(sample domain.OrientationSample) (*domain.HeadingReading, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stopped {
		return nil, nil
	}

	raw, ok, err := e.rawHeading(sample)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	if e.hasPrev {
		e.smoothed = Smooth(e.smoothed, raw)
	} else {
		e.smoothed = Normalize(raw)
		e.hasPrev = true
	}

	return &domain.HeadingReading{
		Heading:  e.smoothed,
		Provider: e.cascade[e.active],
	}, nil
}

// rawHeading вычисляет несглаженный азимут по виду активного провайдера
func (e *Estimator) rawHeading(sample domain.OrientationSample) (float64, bool, error) {
	switch e.cascade[e.active] {
	case domain.ProviderRotation:
		if len(sample.Quaternion) == 0 {
			return 0, false, nil
		}
		h, err := headingFromQuaternion(sample.Quaternion)
		if err != nil {
			return 0, false, err
		}
		return Normalize(h + sample.ScreenAngle), true, nil

	case domain.ProviderMagnetometer:
		if sample.Accelerometer != nil {
			e.lastAccel = sample.Accelerometer
		}
		if sample.Magnetometer != nil {
			e.lastMag = sample.Magnetometer
		}
		if e.lastAccel == nil || e.lastMag == nil {
			return 0, false, nil
		}
		h := headingFromMotion(*e.lastAccel, *e.lastMag)
		return Normalize(h + sample.ScreenAngle), true, nil

	case domain.ProviderOrientation:
		// Готовое значение платформы уже скорректировано
		if sample.VendorHeading != nil {
			return Normalize(*sample.VendorHeading), true, nil
		}
		if sample.Absolute && sample.Alpha != nil && sample.Beta != nil && sample.Gamma != nil {
			h := headingFromEuler(*sample.Alpha, *sample.Beta, *sample.Gamma)
			return Normalize(h + sample.ScreenAngle), true, nil
		}
		if sample.Alpha != nil {
			return Normalize(naiveHeading(*sample.Alpha) + sample.ScreenAngle), true, nil
		}
		return 0, false, nil
	}

	return 0, false, nil
}

// ReportProviderError переключает оценщик на следующий провайдер
// каскада. Ошибка активного провайдера - не отказ всей сессии;
// отказ наступает только после исчерпания каскада.
func (e *Estimator) ReportProviderError(msg string) (domain.ProviderKind, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.lastErr = msg

	if e.active+1 >= len(e.cascade) {
		return "", ErrProvidersExhausted
	}
	e.active++

	// Сырые показания относятся к прежнему провайдеру
	e.lastAccel = nil
	e.lastMag = nil

	return e.cascade[e.active], nil
}

// Stop останавливает сессию: сбрасывает память сглаживания и сырые
// показания. Флаги поддержки и разрешений сохраняются. Идемпотентно.
func (e *Estimator) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stopped {
		return
	}
	e.stopped = true
	e.hasPrev = false
	e.smoothed = 0
	e.lastAccel = nil
	e.lastMag = nil
}

// Stopped проверяет, остановлена ли сессия
func (e *Estimator) Stopped() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stopped
}
