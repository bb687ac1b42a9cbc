package domain

type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type BoundingBox struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

// CityMatch - результат геокодирования названия города
type CityMatch struct {
	Name        string       `json:"name"`
	Lat         float64      `json:"lat"`
	Lon         float64      `json:"lon"`
	BoundingBox *BoundingBox `json:"bounding_box,omitempty"`
	Importance  float64      `json:"importance"`
}
