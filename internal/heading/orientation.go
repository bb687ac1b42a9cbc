package heading

import "math"

// headingFromEuler вычисляет азимут из трех углов Эйлера события
// ориентации с абсолютной системой отсчета. Стандартное
// преобразование через компоненты матрицы поворота.
func headingFromEuler(alpha, beta, gamma float64) float64 {
	a := radians(alpha)
	b := radians(beta)
	g := radians(gamma)

	rA := -math.Cos(a)*math.Sin(g) - math.Sin(a)*math.Sin(b)*math.Cos(g)
	rB := -math.Sin(a)*math.Sin(g) + math.Cos(a)*math.Sin(b)*math.Cos(g)

	h := math.Atan(rA / rB)
	if rB < 0 {
		h += math.Pi
	} else if rA < 0 {
		h += 2 * math.Pi
	}

	return Normalize(degrees(h))
}

// naiveHeading - грубый фолбэк, когда событие не абсолютное
// или углы неполные: alpha считается отклонением от севера
func naiveHeading(alpha float64) float64 {
	return Normalize(360.0 - alpha)
}
