package dto

// NearbyVenuesRequest - запрос на поиск заведений вокруг точки
type NearbyVenuesRequest struct {
	Lat        float64  `json:"lat" validate:"min=-90,max=90"`
	Lon        float64  `json:"lon" validate:"min=-180,max=180"`
	RadiusKm   float64  `json:"radius_km" validate:"required,min=0.1,max=100"`
	Categories []string `json:"categories" validate:"required,min=1,dive,oneof=bar wine_cellar nightclub supermarket restaurant liquor_store"`
	OpenOnly   bool     `json:"open_only,omitempty"`
}

// CityVenuesRequest - запрос на поиск заведений в выбранном городе
type CityVenuesRequest struct {
	City       string   `json:"city" validate:"required,min=2"`
	Categories []string `json:"categories" validate:"required,min=1,dive,oneof=bar wine_cellar nightclub supermarket restaurant liquor_store"`
	OpenOnly   bool     `json:"open_only,omitempty"`
	// Опорная точка для расчета расстояния и азимута
	RefLat *float64 `json:"ref_lat,omitempty" validate:"omitempty,min=-90,max=90"`
	RefLon *float64 `json:"ref_lon,omitempty" validate:"omitempty,min=-180,max=180"`
}

// SuggestCitiesRequest - запрос на подсказки городов по названию
type SuggestCitiesRequest struct {
	Query string `json:"query" validate:"required,min=2"`
	Limit int    `json:"limit" validate:"omitempty,min=1,max=20"`
}

// StartHeadingSessionRequest - запрос на открытие сессии компаса
type StartHeadingSessionRequest struct {
	RotationSensor     bool `json:"rotation_sensor"`
	Accelerometer      bool `json:"accelerometer"`
	Magnetometer       bool `json:"magnetometer"`
	OrientationEvents  bool `json:"orientation_events"`
	RequiresPermission bool `json:"requires_permission"`
	PermissionGranted  bool `json:"permission_granted"`
}

// PushSampleRequest - пакет показаний датчиков для оценки курса
type PushSampleRequest struct {
	Quaternion    []float64  `json:"quaternion,omitempty"`
	Accelerometer *VectorDTO `json:"accelerometer,omitempty"`
	Magnetometer  *VectorDTO `json:"magnetometer,omitempty"`
	Alpha         *float64   `json:"alpha,omitempty"`
	Beta          *float64   `json:"beta,omitempty"`
	Gamma         *float64   `json:"gamma,omitempty"`
	Absolute      bool       `json:"absolute,omitempty"`
	VendorHeading *float64   `json:"vendor_heading,omitempty"`
	ScreenAngle   float64    `json:"screen_angle,omitempty"`
}

// VectorDTO - вектор показаний датчика
type VectorDTO struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// ReportSensorErrorRequest - сообщение об отказе активного датчика
type ReportSensorErrorRequest struct {
	Message string `json:"message" validate:"required"`
}
