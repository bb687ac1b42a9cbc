package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venue-compass/internal/domain"
)

func TestVenueTypeFromTags(t *testing.T) {
	tests := []struct {
		name     string
		tags     map[string]string
		expected domain.VenueType
		ok       bool
	}{
		{"bar", map[string]string{"amenity": "bar"}, domain.VenueBar, true},
		{"pub maps to bar", map[string]string{"amenity": "pub"}, domain.VenueBar, true},
		{"nightclub", map[string]string{"amenity": "nightclub"}, domain.VenueNightclub, true},
		{"wine shop", map[string]string{"shop": "wine"}, domain.VenueWineCellar, true},
		{"alcohol shop", map[string]string{"shop": "alcohol"}, domain.VenueLiquorStore, true},
		{"beverages shop", map[string]string{"shop": "beverages"}, domain.VenueLiquorStore, true},
		{"restaurant", map[string]string{"amenity": "restaurant"}, domain.VenueRestaurant, true},
		{"supermarket", map[string]string{"shop": "supermarket"}, domain.VenueSupermarket, true},
		{"convenience maps to supermarket", map[string]string{"shop": "convenience"}, domain.VenueSupermarket, true},
		{"outside the table", map[string]string{"shop": "shoes"}, "", false},
		{"empty tags", map[string]string{}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := domain.VenueTypeFromTags(tt.tags)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestVenueType_FallbackName(t *testing.T) {
	assert.Equal(t, "Bar sans nom", domain.VenueBar.FallbackName())
	assert.Equal(t, "Cave à vin sans nom", domain.VenueWineCellar.FallbackName())
	assert.Equal(t, "Boîte de nuit sans nom", domain.VenueNightclub.FallbackName())
	assert.Equal(t, "Supermarché sans nom", domain.VenueSupermarket.FallbackName())
}

func TestIsValidVenueType(t *testing.T) {
	for _, v := range domain.AllVenueTypes() {
		assert.True(t, domain.IsValidVenueType(string(v)))
	}
	assert.False(t, domain.IsValidVenueType("casino"))
	assert.False(t, domain.IsValidVenueType(""))
}

func TestTagPredicatesFor(t *testing.T) {
	preds := domain.TagPredicatesFor(domain.VenueBar)
	require.Len(t, preds, 2)
	assert.Contains(t, preds, domain.TagPredicate{Key: "amenity", Value: "bar"})
	assert.Contains(t, preds, domain.TagPredicate{Key: "amenity", Value: "pub"})
}

func TestNewEstablishmentKey(t *testing.T) {
	assert.Equal(t, "node-42", domain.NewEstablishmentKey("node", 42))
	assert.Equal(t, "way-1234567", domain.NewEstablishmentKey("way", 1234567))
}

func TestOpenFromTags(t *testing.T) {
	assert.True(t, domain.OpenFromTags(map[string]string{}))
	assert.True(t, domain.OpenFromTags(map[string]string{"opening_hours": "24/7"}))
	// Разбор расписаний не реализован - любое значение читается как "открыто"
	assert.True(t, domain.OpenFromTags(map[string]string{"opening_hours": "Mo-Fr 09:00-18:00"}))
}
