package overpass

import (
	"fmt"
	"sort"
	"strings"

	"github.com/venue-compass/internal/domain"
)

const queryTimeoutSec = 25

// buildAroundQuery строит Overpass QL запрос по радиусу вокруг точки.
// На каждую категорию выходит пара клауз node/way по каждому тегу
// из закрытой таблицы соответствия.
func buildAroundQuery(center domain.Point, radiusMeters float64, types []domain.VenueType) string {
	area := fmt.Sprintf("(around:%.0f,%.6f,%.6f)", radiusMeters, center.Lat, center.Lon)
	return buildQuery(area, types)
}

// buildBoundingBoxQuery строит запрос по прямоугольной области
func buildBoundingBoxQuery(box domain.BoundingBox, types []domain.VenueType) string {
	area := fmt.Sprintf("(%.6f,%.6f,%.6f,%.6f)", box.MinLat, box.MinLon, box.MaxLat, box.MaxLon)
	return buildQuery(area, types)
}

func buildQuery(area string, types []domain.VenueType) string {
	// Стабильный порядок клауз для детерминированности запроса
	sorted := make([]domain.VenueType, len(types))
	copy(sorted, types)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var b strings.Builder
	fmt.Fprintf(&b, "[out:json][timeout:%d];\n(\n", queryTimeoutSec)

	for _, t := range sorted {
		for _, p := range domain.TagPredicatesFor(t) {
			fmt.Fprintf(&b, "  node[\"%s\"=\"%s\"]%s;\n", p.Key, p.Value, area)
			fmt.Fprintf(&b, "  way[\"%s\"=\"%s\"]%s;\n", p.Key, p.Value, area)
		}
	}

	b.WriteString(");\nout center;")
	return b.String()
}
