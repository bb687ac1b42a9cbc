package heading

import (
	"math"

	"github.com/venue-compass/internal/domain"
)

// headingFromMotion вычисляет азимут по паре акселерометр/магнитометр
// с компенсацией наклона: вектор гравитации дает крен и тангаж,
// магнитный вектор проецируется на горизонтальную плоскость.
func headingFromMotion(accel, mag domain.Vector3) float64 {
	// Нормируем вектор гравитации
	norm := math.Sqrt(accel.X*accel.X + accel.Y*accel.Y + accel.Z*accel.Z)
	if norm == 0 {
		norm = 1
	}
	ax := accel.X / norm
	ay := accel.Y / norm
	az := accel.Z / norm

	roll := math.Atan2(ay, az)
	pitch := math.Atan2(-ax, math.Sqrt(ay*ay+az*az))

	sinRoll, cosRoll := math.Sin(roll), math.Cos(roll)
	sinPitch, cosPitch := math.Sin(pitch), math.Cos(pitch)

	// Горизонтальные составляющие магнитного вектора
	xh := mag.X*cosPitch + mag.Y*sinRoll*sinPitch + mag.Z*cosRoll*sinPitch
	yh := mag.Y*cosRoll - mag.Z*sinRoll

	return Normalize(degrees(math.Atan2(-yh, xh)))
}
