package domain

import "fmt"

// VenueType - категория заведения (закрытый перечень)
type VenueType string

const (
	VenueBar         VenueType = "bar"
	VenueWineCellar  VenueType = "wine_cellar"
	VenueNightclub   VenueType = "nightclub"
	VenueSupermarket VenueType = "supermarket"
	VenueRestaurant  VenueType = "restaurant"
	VenueLiquorStore VenueType = "liquor_store"
)

// AllVenueTypes возвращает все известные категории в стабильном порядке
func AllVenueTypes() []VenueType {
	return []VenueType{
		VenueBar,
		VenueWineCellar,
		VenueNightclub,
		VenueSupermarket,
		VenueRestaurant,
		VenueLiquorStore,
	}
}

// IsValidVenueType проверяет принадлежность категории к перечню
func IsValidVenueType(s string) bool {
	switch VenueType(s) {
	case VenueBar, VenueWineCellar, VenueNightclub,
		VenueSupermarket, VenueRestaurant, VenueLiquorStore:
		return true
	}
	return false
}

// TagPredicate - пара ключ/значение OSM-тега
type TagPredicate struct {
	Key   string
	Value string
}

// venueTagTable - закрытая таблица соответствия OSM-тегов категориям.
// Записи, не попадающие в таблицу, отбрасываются при маппинге ответа.
var venueTagTable = map[VenueType][]TagPredicate{
	VenueBar:         {{"amenity", "bar"}, {"amenity", "pub"}},
	VenueNightclub:   {{"amenity", "nightclub"}},
	VenueWineCellar:  {{"shop", "wine"}},
	VenueLiquorStore: {{"shop", "alcohol"}, {"shop", "beverages"}},
	VenueRestaurant:  {{"amenity", "restaurant"}},
	VenueSupermarket: {{"shop", "supermarket"}, {"shop", "convenience"}},
}

// TagPredicatesFor возвращает теги, по которым ищется категория
func TagPredicatesFor(t VenueType) []TagPredicate {
	return venueTagTable[t]
}

// VenueTypeFromTags определяет категорию по набору тегов записи.
// Возвращает false, если ни один тег не попал в таблицу.
func VenueTypeFromTags(tags map[string]string) (VenueType, bool) {
	for _, t := range AllVenueTypes() {
		for _, p := range venueTagTable[t] {
			if tags[p.Key] == p.Value {
				return t, true
			}
		}
	}
	return "", false
}

// venueLabels - отображаемые названия категорий для фолбэка имени
var venueLabels = map[VenueType]string{
	VenueBar:         "Bar",
	VenueWineCellar:  "Cave à vin",
	VenueNightclub:   "Boîte de nuit",
	VenueSupermarket: "Supermarché",
	VenueRestaurant:  "Restaurant",
	VenueLiquorStore: "Magasin d'alcools",
}

// Label возвращает отображаемое название категории
func (t VenueType) Label() string {
	return venueLabels[t]
}

// FallbackName - имя заведения без тега name
func (t VenueType) FallbackName() string {
	return fmt.Sprintf("%s sans nom", t.Label())
}

// Establishment - заведение из ответа сервиса геоданных.
// Неизменяемо после построения; идентичность между запросами
// только по ключу, повторная выборка заменяет запись целиком.
type Establishment struct {
	// Key - стабильный внешний ключ вида "{kind}-{id}", например "node-42"
	Key  string    `json:"key"`
	Name string    `json:"name"`
	Type VenueType `json:"type"`
	Lat  float64   `json:"lat"`
	Lon  float64   `json:"lon"`
	Open bool      `json:"open"`
	City string    `json:"city,omitempty"`
	// Tags - сырой набор атрибутов записи
	Tags map[string]string `json:"tags,omitempty"`
}

// NewEstablishmentKey строит стабильный ключ записи
func NewEstablishmentKey(sourceKind string, sourceID int64) string {
	return fmt.Sprintf("%s-%d", sourceKind, sourceID)
}

// OpenFromTags определяет открыто ли заведение по тегу opening_hours.
// Отсутствие тега и круглосуточный режим дают "открыто". Разбор
// строк расписания относительно текущего времени сознательно не
// реализован: любое другое значение тоже трактуется как "открыто".
func OpenFromTags(tags map[string]string) bool {
	hours, ok := tags["opening_hours"]
	if !ok || hours == "" {
		return true
	}
	if hours == "24/7" {
		return true
	}
	return true
}
