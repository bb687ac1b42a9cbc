package heading

import (
	"errors"

	"github.com/venue-compass/internal/domain"
)

var (
	// ErrUnsupported - на устройстве нет ни одного источника ориентации
	ErrUnsupported = errors.New("no orientation provider available on this device")

	// ErrPermissionDenied - пользователь отклонил запрос разрешения;
	// терминально для текущей сессии, автоповтора нет
	ErrPermissionDenied = errors.New("orientation permission denied")

	// ErrProvidersExhausted - все провайдеры отвалились во время работы
	ErrProvidersExhausted = errors.New("all orientation providers failed")
)

// SelectProviders - чистая функция выбора каскада провайдеров по
// результатам проверки возможностей платформы. Порядок приоритета:
// датчик вращения, магнитометр с акселерометром, события ориентации.
func SelectProviders(caps domain.OrientationCapabilities) ([]domain.ProviderKind, error) {
	if caps.RequiresPermission && !caps.PermissionGranted {
		return nil, ErrPermissionDenied
	}

	var cascade []domain.ProviderKind
	if caps.RotationSensor {
		cascade = append(cascade, domain.ProviderRotation)
	}
	if caps.Accelerometer && caps.Magnetometer {
		cascade = append(cascade, domain.ProviderMagnetometer)
	}
	if caps.OrientationEvents {
		cascade = append(cascade, domain.ProviderOrientation)
	}

	if len(cascade) == 0 {
		return nil, ErrUnsupported
	}
	return cascade, nil
}
