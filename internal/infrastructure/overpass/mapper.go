package overpass

import (
	"github.com/venue-compass/internal/domain"
	"go.uber.org/zap"
)

// response - JSON-конверт ответа Overpass API
type response struct {
	Elements []element `json:"elements"`
}

// element - запись ответа: node с прямыми координатами либо
// way/relation с вычисленным центроидом
type element struct {
	Type   string            `json:"type"`
	ID     int64             `json:"id"`
	Lat    *float64          `json:"lat,omitempty"`
	Lon    *float64          `json:"lon,omitempty"`
	Center *center           `json:"center,omitempty"`
	Tags   map[string]string `json:"tags,omitempty"`
}

type center struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// mapElements превращает сырые записи в заведения. Записи без тегов,
// без известной категории или без координат молча отбрасываются -
// это локальное восстановление, не ошибка запроса.
func mapElements(elements []element, logger *zap.Logger) []*domain.Establishment {
	venues := make([]*domain.Establishment, 0, len(elements))
	dropped := 0

	for _, el := range elements {
		e, ok := mapElement(el)
		if !ok {
			dropped++
			continue
		}
		venues = append(venues, e)
	}

	if dropped > 0 {
		logger.Debug("Dropped unmappable elements",
			zap.Int("dropped", dropped),
			zap.Int("kept", len(venues)))
	}

	return venues
}

func mapElement(el element) (*domain.Establishment, bool) {
	if len(el.Tags) == 0 {
		return nil, false
	}

	venueType, ok := domain.VenueTypeFromTags(el.Tags)
	if !ok {
		return nil, false
	}

	var lat, lon float64
	switch {
	case el.Lat != nil && el.Lon != nil:
		lat, lon = *el.Lat, *el.Lon
	case el.Center != nil:
		lat, lon = el.Center.Lat, el.Center.Lon
	default:
		return nil, false
	}

	name := el.Tags["name"]
	if name == "" {
		name = venueType.FallbackName()
	}

	return &domain.Establishment{
		Key:  domain.NewEstablishmentKey(el.Type, el.ID),
		Name: name,
		Type: venueType,
		Lat:  lat,
		Lon:  lon,
		Open: domain.OpenFromTags(el.Tags),
		City: el.Tags["addr:city"],
		Tags: el.Tags,
	}, true
}
