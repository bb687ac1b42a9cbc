package overpass

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/venue-compass/internal/domain"
)

func TestBuildAroundQuery(t *testing.T) {
	center := domain.Point{Lat: 48.8566, Lon: 2.3522}

	t.Run("bar emits node and way clauses for both predicates", func(t *testing.T) {
		q := buildAroundQuery(center, 5000, []domain.VenueType{domain.VenueBar})

		assert.Contains(t, q, "[out:json]")
		assert.Contains(t, q, `node["amenity"="bar"](around:5000,48.856600,2.352200);`)
		assert.Contains(t, q, `way["amenity"="bar"](around:5000,48.856600,2.352200);`)
		assert.Contains(t, q, `node["amenity"="pub"]`)
		assert.Contains(t, q, `way["amenity"="pub"]`)
		assert.Contains(t, q, "out center;")
	})

	t.Run("absent categories emit no clauses", func(t *testing.T) {
		q := buildAroundQuery(center, 5000, []domain.VenueType{domain.VenueBar})

		assert.NotContains(t, q, "restaurant")
		assert.NotContains(t, q, "supermarket")
		assert.NotContains(t, q, "wine")
	})

	t.Run("empty category set is structurally valid", func(t *testing.T) {
		q := buildAroundQuery(center, 5000, nil)

		assert.Contains(t, q, "[out:json]")
		assert.Contains(t, q, "(\n);")
		assert.Contains(t, q, "out center;")
		assert.NotContains(t, q, "node[")
	})

	t.Run("clause order is deterministic", func(t *testing.T) {
		q1 := buildAroundQuery(center, 5000, []domain.VenueType{domain.VenueRestaurant, domain.VenueBar})
		q2 := buildAroundQuery(center, 5000, []domain.VenueType{domain.VenueBar, domain.VenueRestaurant})
		assert.Equal(t, q1, q2)
		assert.Less(t, strings.Index(q1, `"bar"`), strings.Index(q1, `"restaurant"`))
	})
}

func TestBuildBoundingBoxQuery(t *testing.T) {
	box := domain.BoundingBox{MinLat: 48.1, MinLon: 2.1, MaxLat: 48.9, MaxLon: 2.9}

	q := buildBoundingBoxQuery(box, []domain.VenueType{domain.VenueNightclub})

	assert.Contains(t, q, `node["amenity"="nightclub"](48.100000,2.100000,48.900000,2.900000);`)
	assert.Contains(t, q, `way["amenity"="nightclub"](48.100000,2.100000,48.900000,2.900000);`)
}
