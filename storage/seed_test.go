package storage

import (
	"strings"
	"testing"
)

func TestDemoPropertyIdentity(t *testing.T) {
	property := DemoProperty()

	if !strings.HasPrefix(property.ID.String(), "22e693ca-") {
		t.Fatalf("unexpected demo property id %s", property.ID)
	}
	if property.Name != "Vysota 890" {
		t.Fatalf("unexpected demo property name %q", property.Name)
	}
	if property.City != "Volosianka" || property.Country != "Ukraine" {
		t.Fatalf("unexpected demo property location %s, %s", property.City, property.Country)
	}
}

func TestDemoRoomsReferenceTheProperty(t *testing.T) {
	rooms := DemoRooms()
	if len(rooms) != 4 {
		t.Fatalf("expected 4 demo rooms, got %d", len(rooms))
	}

	names := make(map[string]bool)
	for _, room := range rooms {
		if room.PropertyID != DemoPropertyID {
			t.Errorf("room %s references property %s", room.Name, room.PropertyID)
		}
		if room.PricePerNight.IsZero() || room.PricePerNight.IsNegative() {
			t.Errorf("room %s has non-positive price %s", room.Name, room.PricePerNight)
		}
		if room.MaxGuests < 1 {
			t.Errorf("room %s has max guests %d", room.Name, room.MaxGuests)
		}
		if room.CurrencyCode != "USD" {
			t.Errorf("room %s has currency %q", room.Name, room.CurrencyCode)
		}
		if len(room.Images) == 0 {
			t.Errorf("room %s has no images", room.Name)
		}
		names[room.Name] = true
	}

	for _, want := range []string{"Sova House", "Leleka", "Polonyna Suite", "Panorama Chalet"} {
		if !names[want] {
			t.Errorf("expected a demo room named %q", want)
		}
	}
}

// Both schema variants must describe the same rows so conformance
// checks can compare them by id.
func TestVariantsAgree(t *testing.T) {
	accommodation := DemoAccommodation()
	property := DemoProperty()
	if accommodation.ID != property.ID {
		t.Fatalf("accommodation id %s != property id %s", accommodation.ID, property.ID)
	}
	if accommodation.Name != property.Name || accommodation.City != property.City {
		t.Fatal("accommodation fixture diverged from property fixture")
	}

	rooms := DemoRooms()
	units := DemoMVPUnits()
	if len(units) != len(rooms) {
		t.Fatalf("expected %d mvp units, got %d", len(rooms), len(units))
	}

	for i := range rooms {
		if units[i].ID != rooms[i].ID {
			t.Errorf("unit %d id %s != room id %s", i, units[i].ID, rooms[i].ID)
		}
		if units[i].PropertyID != DemoPropertyID {
			t.Errorf("unit %s references accommodation %s", units[i].Name, units[i].PropertyID)
		}
		if !units[i].PricePerNight.Equal(rooms[i].PricePerNight) {
			t.Errorf("unit %s price %s != room price %s", units[i].Name, units[i].PricePerNight, rooms[i].PricePerNight)
		}
	}
}

func TestMVPUnitDocsDecode(t *testing.T) {
	rooms := DemoRooms()
	for i, unit := range DemoMVPUnits() {
		amenities := unit.AmenityList()
		if len(amenities) != len(rooms[i].Amenities) {
			t.Errorf("unit %s amenities doc decoded to %d labels, want %d", unit.Name, len(amenities), len(rooms[i].Amenities))
		}
		images := unit.ImageList()
		if len(images) != len(rooms[i].Images) {
			t.Errorf("unit %s images doc decoded to %d urls, want %d", unit.Name, len(images), len(rooms[i].Images))
		}
	}
}

func TestDemoRoomAmenitiesCoverSafetyLabels(t *testing.T) {
	// The search layer derives safety notes from these labels, so at
	// least one seeded unit must carry each of them.
	wanted := []string{"Smoke alarm", "Carbon monoxide alarm", "Fire extinguisher", "First aid kit"}
	seen := make(map[string]bool)
	for _, room := range DemoRooms() {
		for _, amenity := range room.Amenities {
			seen[amenity] = true
		}
	}
	for _, label := range wanted {
		if !seen[label] {
			t.Errorf("no seeded unit carries the %q amenity", label)
		}
	}
}
