package storage

import (
	"fmt"

	"vysota-booking-server/models"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Demo fixture: the one real property this deployment serves, with its
// four bookable units. Ids are pinned so reseeding is idempotent and
// so both schema variants agree on the same rows.
var (
	DemoPropertyID = uuid.MustParse("22e693ca-6a34-4b07-9cbe-3d6ab4e2c981")

	DemoRoomSovaHouseID      = uuid.MustParse("5f1c2a6e-0b5d-4a89-9a41-8c2f1d3b7a01")
	DemoRoomLelekaID         = uuid.MustParse("7a93be04-22d1-4e56-8f3c-947a1c5d2b6f")
	DemoRoomPolonynaSuiteID  = uuid.MustParse("1d4e8b72-6c0a-4f19-b3e5-72c9a40d8e13")
	DemoRoomPanoramaChaletID = uuid.MustParse("9c62f0d8-3e47-4b21-a6d9-5b1e7f24c803")
)

// DemoProperty returns the seed row for the general schema variant.
func DemoProperty() models.Property {
	return models.Property{
		ID:           DemoPropertyID,
		Name:         "Vysota 890",
		AddressLine1: "12 Karpatska St",
		City:         "Volosianka",
		State:        "Lviv",
		Zip:          "82447",
		Country:      "Ukraine",
		Lat:          48.9712,
		Lng:          23.4138,
		Description:  "Mountain retreat at 890m in the Ukrainian Carpathians, a short drive from the Zakhar Berkut lifts.",
		ImageURL:     "https://images.vysota890.com/hotel/main.jpg",
		Rating:       4.90,
		AIMatchScore: 92.50,
	}
}

type demoUnit struct {
	ID            uuid.UUID
	Name          string
	Type          string
	Description   string
	Images        []string
	PricePerNight string
	MaxGuests     int
	BedConfig     string
	Amenities     []string
}

func demoUnits() []demoUnit {
	return []demoUnit{
		{
			ID:            DemoRoomSovaHouseID,
			Name:          "Sova House",
			Type:          "Home",
			Description:   "Standalone timber house with a private hot tub and a forest-facing terrace.",
			Images:        []string{"https://images.vysota890.com/rooms/sova-house-1.jpg", "https://images.vysota890.com/rooms/sova-house-2.jpg"},
			PricePerNight: "180.00",
			MaxGuests:     4,
			BedConfig:     "2 queen beds",
			Amenities:     []string{"Wifi", "Hot tub", "Sauna", "Fireplace", "Mountain view", "Smoke alarm", "Carbon monoxide alarm", "Fire extinguisher", "First aid kit"},
		},
		{
			ID:            DemoRoomLelekaID,
			Name:          "Leleka",
			Type:          "Cottage",
			Description:   "Compact cottage for couples, with a wood stove and valley views from the porch.",
			Images:        []string{"https://images.vysota890.com/rooms/leleka-1.jpg"},
			PricePerNight: "145.00",
			MaxGuests:     3,
			BedConfig:     "1 queen bed, 1 sofa bed",
			Amenities:     []string{"Wifi", "Fireplace", "Mountain view", "Smoke alarm", "First aid kit"},
		},
		{
			ID:            DemoRoomPolonynaSuiteID,
			Name:          "Polonyna Suite",
			Type:          "Suite",
			Description:   "Two-room suite in the main building with sauna and pool access included.",
			Images:        []string{"https://images.vysota890.com/rooms/polonyna-1.jpg", "https://images.vysota890.com/rooms/polonyna-2.jpg"},
			PricePerNight: "210.00",
			MaxGuests:     5,
			BedConfig:     "2 queen beds, 1 single",
			Amenities:     []string{"Wifi", "Pool", "Sauna", "Mountain view", "Smoke alarm", "Carbon monoxide alarm"},
		},
		{
			ID:            DemoRoomPanoramaChaletID,
			Name:          "Panorama Chalet",
			Type:          "Chalet",
			Description:   "Top-floor chalet with floor-to-ceiling windows over the Skole Beskids ridge.",
			Images:        []string{"https://images.vysota890.com/rooms/panorama-1.jpg", "https://images.vysota890.com/rooms/panorama-2.jpg", "https://images.vysota890.com/rooms/panorama-3.jpg"},
			PricePerNight: "260.00",
			MaxGuests:     6,
			BedConfig:     "3 queen beds",
			Amenities:     []string{"Wifi", "Hot tub", "Sauna", "Pool", "Fireplace", "Mountain view", "Smoke alarm", "Fire extinguisher"},
		},
	}
}

// DemoRooms returns the seed rows for the general schema variant.
func DemoRooms() []models.Room {
	units := demoUnits()
	rooms := make([]models.Room, 0, len(units))
	for _, u := range units {
		rooms = append(rooms, models.Room{
			ID:            u.ID,
			PropertyID:    DemoPropertyID,
			Name:          u.Name,
			Type:          u.Type,
			Description:   u.Description,
			Images:        pq.StringArray(u.Images),
			PricePerNight: decimal.RequireFromString(u.PricePerNight),
			MaxGuests:     u.MaxGuests,
			BedConfig:     u.BedConfig,
			Amenities:     pq.StringArray(u.Amenities),
			Status:        "active",
			CurrencyCode:  "USD",
		})
	}
	return rooms
}

// DemoAccommodation returns the seed row for the MVP schema variant.
func DemoAccommodation() models.MVPAccommodation {
	p := DemoProperty()
	return models.MVPAccommodation{
		ID:           p.ID,
		Name:         p.Name,
		AddressLine1: p.AddressLine1,
		City:         p.City,
		State:        p.State,
		Zip:          p.Zip,
		Country:      p.Country,
		Lat:          p.Lat,
		Lng:          p.Lng,
		Description:  p.Description,
		ImageURL:     p.ImageURL,
		Rating:       p.Rating,
		AIMatchScore: p.AIMatchScore,
	}
}

// DemoMVPUnits returns the seed rows for the MVP schema variant, with
// amenities and images as jsonb documents.
func DemoMVPUnits() []models.MVPUnit {
	units := demoUnits()
	rows := make([]models.MVPUnit, 0, len(units))
	for _, u := range units {
		rows = append(rows, models.MVPUnit{
			ID:            u.ID,
			PropertyID:    DemoPropertyID,
			Name:          u.Name,
			Type:          u.Type,
			Description:   u.Description,
			Images:        models.StringDoc(u.Images),
			Amenities:     models.StringDoc(u.Amenities),
			PricePerNight: decimal.RequireFromString(u.PricePerNight),
			MaxGuests:     u.MaxGuests,
			BedConfig:     u.BedConfig,
			Status:        "active",
			CurrencyCode:  "USD",
		})
	}
	return rows
}

// SeedDemoData inserts the demo property and its four units into both
// schema variants. Rows that already exist are left untouched, so the
// seeder can run on every deploy.
func SeedDemoData(db *gorm.DB) error {
	property := DemoProperty()
	if err := createIfMissing(db, &models.Property{}, property.ID, &property); err != nil {
		return fmt.Errorf("seed property: %w", err)
	}
	for _, room := range DemoRooms() {
		r := room
		if err := createIfMissing(db, &models.Room{}, r.ID, &r); err != nil {
			return fmt.Errorf("seed room %s: %w", r.Name, err)
		}
	}

	accommodation := DemoAccommodation()
	if err := createIfMissing(db, &models.MVPAccommodation{}, accommodation.ID, &accommodation); err != nil {
		return fmt.Errorf("seed mvp accommodation: %w", err)
	}
	for _, unit := range DemoMVPUnits() {
		u := unit
		if err := createIfMissing(db, &models.MVPUnit{}, u.ID, &u); err != nil {
			return fmt.Errorf("seed mvp unit %s: %w", u.Name, err)
		}
	}

	return nil
}

func createIfMissing(db *gorm.DB, model interface{}, id uuid.UUID, row interface{}) error {
	err := db.Model(model).Where("id = ?", id).First(model).Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	return db.Create(row).Error
}
