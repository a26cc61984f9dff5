package services

import (
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"vysota-booking-server/models"
	"vysota-booking-server/storage"
	"vysota-booking-server/utils"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const searchCacheTTL = 60 * time.Second

// SearchService answers hotel and unit lookups for the general schema
// variant. Structured filters (city, price, capacity) run in SQL; the
// free-text query and amenity filters run in memory over the fetched
// rows, never as a jsonb/array containment query.
type SearchService struct {
	db    *gorm.DB
	cache *redis.Client
}

func NewSearchService() *SearchService {
	return &SearchService{db: storage.DB, cache: storage.Redis}
}

type HotelSearchParams struct {
	HotelName string   `json:"hotelName"`
	City      string   `json:"city"`
	Country   string   `json:"country"`
	Lat       *float64 `json:"lat"`
	Lng       *float64 `json:"lng"`
}

// SearchHotels matches accommodations by name, city, country or a
// ±0.5 degree window around the given coordinates.
func (s *SearchService) SearchHotels(ctx context.Context, params HotelSearchParams) ([]models.Property, error) {
	q := s.db.WithContext(ctx).Model(&models.Property{})

	if params.HotelName != "" {
		q = q.Where("name ILIKE ?", "%"+params.HotelName+"%")
	}
	if params.City != "" {
		q = q.Where("city ILIKE ?", "%"+params.City+"%")
	}
	if params.Country != "" {
		q = q.Where("country ILIKE ?", "%"+params.Country+"%")
	}
	if params.Lat != nil && params.Lng != nil {
		const delta = 0.5
		q = q.Where("lat BETWEEN ? AND ?", *params.Lat-delta, *params.Lat+delta).
			Where("lng BETWEEN ? AND ?", *params.Lng-delta, *params.Lng+delta)
	}

	var hotels []models.Property
	if err := q.Find(&hotels).Error; err != nil {
		return nil, fmt.Errorf("hotel search failed: %w", err)
	}
	return hotels, nil
}

type RoomSearchParams struct {
	HotelName string   `json:"hotelName"`
	City      string   `json:"city"`
	Country   string   `json:"country"`
	UnitType  string   `json:"unitType"`
	MaxPrice  *float64 `json:"maxPrice"`
	MinGuests *int     `json:"minGuests"`
	Amenity   string   `json:"amenity"`
	Query     string   `json:"query"`
	CheckIn   string   `json:"checkIn"`
	CheckOut  string   `json:"checkOut"`
}

type RoomSearchResult struct {
	Units []UnitResult `json:"units"`
	Count int          `json:"count"`
	// Set when a city+country combination matched nothing and the
	// country filter was dropped (region naming ambiguities).
	RelaxedCountryFilter bool   `json:"relaxedCountryFilter"`
	CheckIn              string `json:"checkIn"`
	CheckOut             string `json:"checkOut"`
}

// UnitResult is a matched unit plus the guest-facing policy notes that
// accompany every search hit.
type UnitResult struct {
	models.Room
	ThingsToKnow ThingsToKnow `json:"thingsToKnow"`
}

type ThingsToKnow struct {
	Cancellation string `json:"cancellation"`
	HouseRules   string `json:"houseRules"`
	Safety       string `json:"safety"`
}

// SearchRooms matches bookable units with their parent property
// preloaded. Results for identical params are served from Redis for a
// short window when a cache client is configured.
func (s *SearchService) SearchRooms(ctx context.Context, params RoomSearchParams) (*RoomSearchResult, error) {
	cacheKey := roomSearchCacheKey(params)
	if cached := s.cachedResult(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	units, err := s.queryRooms(ctx, params, true)
	if err != nil {
		return nil, err
	}

	matched := filterRoomsByText(units, params.Query, params.Amenity)
	result := &RoomSearchResult{
		Units:    shapeUnitResults(matched, params.CheckIn),
		CheckIn:  params.CheckIn,
		CheckOut: params.CheckOut,
	}

	// City+country matching nothing is usually a region naming
	// mismatch ("Lviv" the city vs the oblast); retry city-only.
	if len(result.Units) == 0 && params.City != "" && params.Country != "" {
		relaxed, err := s.queryRooms(ctx, params, false)
		if err != nil {
			return nil, err
		}
		relaxedUnits := filterRoomsByText(relaxed, params.Query, params.Amenity)
		if len(relaxedUnits) > 0 {
			result.Units = shapeUnitResults(relaxedUnits, params.CheckIn)
			result.RelaxedCountryFilter = true
		}
	}

	result.Count = len(result.Units)
	s.storeResult(ctx, cacheKey, result)
	return result, nil
}

func (s *SearchService) queryRooms(ctx context.Context, params RoomSearchParams, includeCountry bool) ([]models.Room, error) {
	q := s.db.WithContext(ctx).Model(&models.Room{}).
		Joins("JOIN properties ON properties.id = rooms.property_id").
		Preload("Property")

	if params.HotelName != "" {
		q = q.Where("properties.name ILIKE ?", "%"+params.HotelName+"%")
	}
	if params.City != "" {
		q = q.Where("properties.city ILIKE ?", "%"+params.City+"%")
	}
	if includeCountry && params.Country != "" {
		q = q.Where("properties.country ILIKE ?", "%"+params.Country+"%")
	}
	if params.UnitType != "" {
		q = q.Where("rooms.type ILIKE ?", "%"+params.UnitType+"%")
	}
	if params.MaxPrice != nil {
		q = q.Where("rooms.price_per_night <= ?", *params.MaxPrice)
	}
	if params.MinGuests != nil {
		q = q.Where("rooms.max_guests >= ?", *params.MinGuests)
	}

	var units []models.Room
	if err := q.Find(&units).Error; err != nil {
		return nil, fmt.Errorf("room search failed: %w", err)
	}
	return units, nil
}

// filterRoomsByText applies the free-text query and amenity filters.
// The query matches unit name/description/type, the hotel's name and
// location fields, and the amenity labels; the amenity filter is a
// substring match so "hot" finds "Hot tub".
func filterRoomsByText(units []models.Room, query, amenity string) []models.Room {
	normalizedQuery := normalizeText(query)
	normalizedAmenity := normalizeText(amenity)

	matched := make([]models.Room, 0, len(units))
	for _, unit := range units {
		if roomMatchesTextFilters(&unit, normalizedQuery, normalizedAmenity) {
			matched = append(matched, unit)
		}
	}
	return matched
}

func roomMatchesTextFilters(unit *models.Room, normalizedQuery, normalizedAmenity string) bool {
	amenitiesBlob := normalizeText(strings.Join(unit.Amenities, " "))

	parts := []string{unit.Name, unit.Description, unit.Type}
	if unit.Property != nil {
		parts = append(parts, unit.Property.Name, unit.Property.City, unit.Property.State, unit.Property.Country)
	}
	parts = append(parts, unit.Amenities...)
	searchableBlob := normalizeText(strings.Join(parts, " "))

	if normalizedQuery != "" && !strings.Contains(searchableBlob, normalizedQuery) {
		return false
	}
	if normalizedAmenity != "" && !strings.Contains(amenitiesBlob, normalizedAmenity) {
		return false
	}
	return true
}

// normalizeText lowercases and collapses runs of whitespace.
func normalizeText(value string) string {
	return strings.Join(strings.Fields(strings.ToLower(value)), " ")
}

func shapeUnitResults(units []models.Room, checkIn string) []UnitResult {
	shaped := make([]UnitResult, 0, len(units))
	for _, unit := range units {
		shaped = append(shaped, UnitResult{
			Room:         unit,
			ThingsToKnow: thingsToKnowFor(&unit, checkIn),
		})
	}
	return shaped
}

func thingsToKnowFor(unit *models.Room, checkIn string) ThingsToKnow {
	maxGuests := unit.MaxGuests
	if maxGuests < 1 {
		maxGuests = 1
	}
	return ThingsToKnow{
		Cancellation: fmt.Sprintf(
			"Free cancellation until %s (local time). After that, cancellation may be non-refundable depending on host rules.",
			cancelDateText(checkIn),
		),
		HouseRules: fmt.Sprintf("Check-in after 3:00 PM\nCheckout before 11:00 AM\nMaximum guests: %d", maxGuests),
		Safety:     deriveSafetyNotes(unit.Amenities),
	}
}

// cancelDateText names the free-cancellation cutoff, 14 days before
// check-in, falling back to a relative phrase for missing or malformed
// dates.
func cancelDateText(checkIn string) string {
	if checkIn == "" {
		return "14 days before check-in"
	}
	checkInDate, err := time.Parse("2006-01-02", checkIn)
	if err != nil {
		return "14 days before check-in"
	}
	cancelDate := checkInDate.AddDate(0, 0, -14)
	return fmt.Sprintf("%s %d", cancelDate.Month(), cancelDate.Day())
}

// deriveSafetyNotes turns amenity labels into the safety lines shown
// with each unit. The "not reported" label wins over a plain smoke
// alarm mention.
func deriveSafetyNotes(amenities []string) string {
	blob := normalizeText(strings.Join(amenities, " "))

	var lines []string
	if strings.Contains(blob, "smoke alarm not reported") {
		lines = append(lines, "Smoke alarm not reported")
	} else if strings.Contains(blob, "smoke alarm") {
		lines = append(lines, "Smoke alarm available")
	}
	if strings.Contains(blob, "carbon monoxide alarm") {
		lines = append(lines, "Carbon monoxide alarm available")
	}
	if strings.Contains(blob, "camera") {
		lines = append(lines, "Exterior security cameras on property")
	}
	if strings.Contains(blob, "fire extinguisher") {
		lines = append(lines, "Fire extinguisher available")
	}
	if strings.Contains(blob, "first aid kit") {
		lines = append(lines, "First aid kit available")
	}

	if len(lines) == 0 {
		return "No special safety notes provided by host."
	}
	return strings.Join(lines, "\n")
}

func roomSearchCacheKey(params RoomSearchParams) string {
	raw, err := json.Marshal(params)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("room-search:%x", sha1.Sum(raw))
}

func (s *SearchService) cachedResult(ctx context.Context, key string) *RoomSearchResult {
	if s.cache == nil || key == "" {
		return nil
	}
	data, err := s.cache.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			utils.Logger.WithError(err).Debug("search cache read failed")
		}
		return nil
	}
	var result RoomSearchResult
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		return nil
	}
	return &result
}

func (s *SearchService) storeResult(ctx context.Context, key string, result *RoomSearchResult) {
	if s.cache == nil || key == "" {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, searchCacheTTL).Err(); err != nil {
		utils.Logger.WithError(err).Debug("search cache write failed")
	}
}
