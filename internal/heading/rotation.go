package heading

import (
	"fmt"
	"math"
)

// headingFromQuaternion вычисляет азимут из кватерниона абсолютного
// датчика ориентации. Порядок компонент различается между платформами
// (w первым или последним); скаляром считается компонента с модулем
// больше 0.5 - у нормированного кватерниона при умеренных наклонах
// это однозначно w.
func headingFromQuaternion(q []float64) (float64, error) {
	if len(q) != 4 {
		return 0, fmt.Errorf("quaternion must have 4 components, got %d", len(q))
	}

	var w, x, y, z float64
	if math.Abs(q[0]) > 0.5 {
		w, x, y, z = q[0], q[1], q[2], q[3]
	} else {
		x, y, z, w = q[0], q[1], q[2], q[3]
	}

	yaw := math.Atan2(2.0*(w*z+x*y), 1.0-2.0*(y*y+z*z))

	// Yaw растет против часовой, компас - по часовой
	return Normalize(360.0 - degrees(yaw)), nil
}
