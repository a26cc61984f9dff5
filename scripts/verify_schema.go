package main

import (
	"fmt"
	"log"
	"os"

	"vysota-booking-server/models"
	"vysota-booking-server/storage"

	"gorm.io/gorm"
)

// Schema conformance checker. Run against a provisioned database; it
// exits non-zero when the seed data or the declared constraints do not
// hold. Useful after pointing a fresh environment at the migrations.
func main() {
	db := storage.InitializeDB()

	failures := 0
	check := func(name string, err error) {
		if err != nil {
			failures++
			log.Printf("FAIL %s: %v", name, err)
			return
		}
		log.Printf("ok   %s", name)
	}

	check("seed row counts", checkSeedCounts(db))
	check("rooms reference the seed property", checkRoomParents(db))
	check("no bookings with dangling room", checkOrphans(db, "bookings", "room_id", "rooms"))
	check("no bookings with dangling guest", checkOrphans(db, "bookings", "guest_id", "guests"))
	check("no bookings with dangling property", checkOrphans(db, "bookings", "property_id", "properties"))
	check("no reservations with dangling unit", checkOrphans(db, "mvp_reservation", "unit_id", "mvp_unit"))
	check("no reservations with dangling guest", checkOrphans(db, "mvp_reservation", "guest_id", "mvp_guest"))
	check("booking defaults read back", checkBookingDefaults(db))
	check("confirmation code uniqueness enforced", checkCodeUniqueness(db))
	check("room not-null columns enforced", checkRoomNotNulls(db))

	if failures > 0 {
		os.Exit(1)
	}
	fmt.Println("schema conformance checks passed")
}

func checkSeedCounts(db *gorm.DB) error {
	var properties, rooms, accommodations, units int64
	db.Model(&models.Property{}).Count(&properties)
	db.Model(&models.Room{}).Count(&rooms)
	db.Model(&models.MVPAccommodation{}).Count(&accommodations)
	db.Model(&models.MVPUnit{}).Count(&units)

	if properties != 1 || accommodations != 1 {
		return fmt.Errorf("expected 1 property per variant, got %d/%d", properties, accommodations)
	}
	if rooms != 4 || units != 4 {
		return fmt.Errorf("expected 4 rooms per variant, got %d/%d", rooms, units)
	}
	return nil
}

func checkRoomParents(db *gorm.DB) error {
	var mismatched int64
	db.Model(&models.Room{}).Where("property_id <> ?", storage.DemoPropertyID).Count(&mismatched)
	if mismatched > 0 {
		return fmt.Errorf("%d rooms reference a different property", mismatched)
	}
	db.Model(&models.MVPUnit{}).Where("property_id <> ?", storage.DemoPropertyID).Count(&mismatched)
	if mismatched > 0 {
		return fmt.Errorf("%d mvp units reference a different accommodation", mismatched)
	}
	return nil
}

func checkOrphans(db *gorm.DB, child, fk, parent string) error {
	var orphans int64
	query := fmt.Sprintf(
		"SELECT COUNT(*) FROM %s c LEFT JOIN %s p ON p.id = c.%s WHERE p.id IS NULL",
		child, parent, fk,
	)
	if err := db.Raw(query).Scan(&orphans).Error; err != nil {
		return err
	}
	if orphans > 0 {
		return fmt.Errorf("%d rows in %s with dangling %s", orphans, child, fk)
	}
	return nil
}

// checkBookingDefaults inserts a minimal booking inside a rolled-back
// transaction and reads back the column defaults.
func checkBookingDefaults(db *gorm.DB) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		guest := models.Guest{
			PropertyID: storage.DemoPropertyID,
			Name:       "Conformance Check",
			Email:      "conformance@example.com",
		}
		if err := tx.Create(&guest).Error; err != nil {
			return err
		}

		if err := tx.Exec(
			"INSERT INTO bookings (property_id, room_id, guest_id, check_in, check_out, guests_count, total_price) VALUES (?, ?, ?, '2026-03-10', '2026-03-12', 2, 360.00)",
			storage.DemoPropertyID, storage.DemoRoomSovaHouseID, guest.ID,
		).Error; err != nil {
			return err
		}

		var booking models.Booking
		if err := tx.Where("guest_id = ?", guest.ID).First(&booking).Error; err != nil {
			return err
		}
		if booking.Status != "confirmed" {
			return fmt.Errorf("default status = %q, want confirmed", booking.Status)
		}
		if booking.CurrencyCode != "USD" {
			return fmt.Errorf("default currency_code = %q, want USD", booking.CurrencyCode)
		}
		return errRollback
	})
	if err == errRollback {
		return nil
	}
	return err
}

// checkCodeUniqueness inserts two reservations with one code and
// expects the second insert to fail.
func checkCodeUniqueness(db *gorm.DB) error {
	violated := false
	err := db.Transaction(func(tx *gorm.DB) error {
		guest := models.MVPGuest{Name: "Conformance Check", Email: "conformance-mvp@example.com"}
		if err := tx.Create(&guest).Error; err != nil {
			return err
		}

		insert := func() error {
			return tx.Exec(
				"INSERT INTO mvp_reservation (unit_id, guest_id, confirmation_code, check_in, check_out, guests_count, total_price) VALUES (?, ?, 'BK-CHECK1', '2026-03-10', '2026-03-12', 2, 360.00)",
				storage.DemoRoomSovaHouseID, guest.ID,
			).Error
		}
		if err := insert(); err != nil {
			return err
		}
		if err := insert(); err != nil {
			violated = true
		}
		return errRollback
	})
	if err != nil && err != errRollback {
		return err
	}
	if !violated {
		return fmt.Errorf("duplicate confirmation code was accepted")
	}
	return nil
}

// checkRoomNotNulls attempts inserts with a null price and a null
// guest capacity; both must be rejected by the engine.
func checkRoomNotNulls(db *gorm.DB) error {
	attempt := func(column string) error {
		rejected := false
		err := db.Transaction(func(tx *gorm.DB) error {
			var stmt string
			switch column {
			case "price_per_night":
				stmt = "INSERT INTO rooms (property_id, name, max_guests) VALUES (?, 'Null Check', 2)"
			case "max_guests":
				stmt = "INSERT INTO rooms (property_id, name, price_per_night) VALUES (?, 'Null Check', 100.00)"
			}
			if err := tx.Exec(stmt, storage.DemoPropertyID).Error; err != nil {
				rejected = true
			}
			return errRollback
		})
		if err != nil && err != errRollback {
			return err
		}
		if !rejected {
			return fmt.Errorf("null %s was accepted", column)
		}
		return nil
	}

	if err := attempt("price_per_night"); err != nil {
		return err
	}
	return attempt("max_guests")
}

var errRollback = fmt.Errorf("rollback check transaction")
