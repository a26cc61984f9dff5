package storage

import (
	"log"
	"os"

	"vysota-booking-server/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func connectToDB() *gorm.DB {
	// Hosted environments inject config directly; .env is for local runs.
	if os.Getenv("RENDER") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found, relying on process environment")
		}
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Panic("missing DB_CONNECTION_STRING, cannot reach Postgres")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Panic("postgres connection failed: " + err.Error())
	}

	DB = db
	return db
}

func performMigrations(db *gorm.DB) {
	// gen_random_uuid() needs pgcrypto on Postgres < 13
	db.Exec("CREATE EXTENSION IF NOT EXISTS pgcrypto;")

	db.AutoMigrate(
		// general variant, parents before children
		&models.Property{},
		&models.Room{},
		&models.Guest{},
		&models.Booking{},
		// MVP variant
		&models.MVPAccommodation{},
		&models.MVPUnit{},
		&models.MVPGuest{},
		&models.MVPReservation{},
	)
}

func InitializeDB() *gorm.DB {
	db := connectToDB()
	performMigrations(db)
	return db
}
