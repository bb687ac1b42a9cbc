package domain

// ProviderKind - вид источника данных об ориентации устройства
type ProviderKind string

const (
	// ProviderRotation - абсолютный датчик ориентации (кватернионы)
	ProviderRotation ProviderKind = "rotation"
	// ProviderMagnetometer - акселерометр + магнитометр с компенсацией наклона
	ProviderMagnetometer ProviderKind = "magnetometer"
	// ProviderOrientation - события ориентации с углами Эйлера
	ProviderOrientation ProviderKind = "orientation"
)

// OrientationCapabilities - результат проверки возможностей платформы,
// присылается клиентом при активации сессии
type OrientationCapabilities struct {
	RotationSensor    bool `json:"rotation_sensor"`
	Accelerometer     bool `json:"accelerometer"`
	Magnetometer      bool `json:"magnetometer"`
	OrientationEvents bool `json:"orientation_events"`

	// RequiresPermission - платформа требует явного разрешения пользователя
	RequiresPermission bool `json:"requires_permission"`
	PermissionGranted  bool `json:"permission_granted"`
}

// Vector3 - вектор показаний датчика
type Vector3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// OrientationSample - сырой сэмпл от активного провайдера.
// Заполняются только поля, относящиеся к виду провайдера.
type OrientationSample struct {
	// Quaternion - 4 компоненты кватерниона; порядок (w-первый или
	// w-последний) определяется эвристически на стороне оценщика
	Quaternion []float64 `json:"quaternion,omitempty"`

	// Показания движения для магнитометрического провайдера
	Accelerometer *Vector3 `json:"accelerometer,omitempty"`
	Magnetometer  *Vector3 `json:"magnetometer,omitempty"`

	// Углы Эйлера для событийного провайдера
	Alpha    *float64 `json:"alpha,omitempty"`
	Beta     *float64 `json:"beta,omitempty"`
	Gamma    *float64 `json:"gamma,omitempty"`
	Absolute bool     `json:"absolute,omitempty"`
	// VendorHeading - готовое компасное значение платформы,
	// экранная коррекция к нему не применяется
	VendorHeading *float64 `json:"vendor_heading,omitempty"`

	// ScreenAngle - текущий угол поворота экрана (0/90/180/270)
	ScreenAngle float64 `json:"screen_angle"`
}

// HeadingReading - сглаженное показание компаса
type HeadingReading struct {
	// Heading - азимут в градусах, 0 = север, по часовой, [0,360)
	Heading  float64      `json:"heading"`
	Provider ProviderKind `json:"provider"`
}
