package main

import (
	"fmt"
	"log"
	"os"

	"vysota-booking-server/models"
	"vysota-booking-server/storage"

	"github.com/joho/godotenv"
)

// Provisions the booking database: connects, migrates both schema
// variants and loads the demo property. There is no listener here;
// clients talk to the database directly.
func main() {
	// Only load .env in development
	if os.Getenv("RENDER") == "" {
		godotenv.Load()
	}

	db := storage.InitializeDB()
	storage.InitializeRedis()

	if err := storage.SeedDemoData(db); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	var properties, rooms, accommodations, units int64
	db.Model(&models.Property{}).Count(&properties)
	db.Model(&models.Room{}).Count(&rooms)
	db.Model(&models.MVPAccommodation{}).Count(&accommodations)
	db.Model(&models.MVPUnit{}).Count(&units)

	fmt.Printf("🚀 Database ready: %d properties / %d rooms, %d mvp accommodations / %d mvp units\n",
		properties, rooms, accommodations, units)
}
