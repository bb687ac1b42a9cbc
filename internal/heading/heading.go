// Package heading оценивает компасный азимут устройства по сырым
// показаниям датчиков ориентации с каскадным выбором провайдера
// и экспоненциальным сглаживанием.
package heading

import "math"

const (
	// smoothingFactor - коэффициент экспоненциального фильтра
	smoothingFactor = 0.2
)

// Normalize приводит угол в диапазон [0,360)
func Normalize(deg float64) float64 {
	m := math.Mod(deg, 360.0)
	if m < 0 {
		m += 360.0
	}
	return m
}

// ShortestDelta возвращает кратчайшую угловую разницу new-prev
// в диапазоне [-180,180), никогда не идет "длинной дорогой"
// через противоположную сторону круга
func ShortestDelta(prev, next float64) float64 {
	return math.Mod(next-prev+540.0, 360.0) - 180.0
}

// Smooth применяет экспоненциальный фильтр по кратчайшей дуге
func Smooth(prev, next float64) float64 {
	return Normalize(prev + smoothingFactor*ShortestDelta(prev, next))
}

func degrees(rad float64) float64 {
	return rad * 180.0 / math.Pi
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
