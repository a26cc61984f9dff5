package models

import (
	"time"

	"github.com/google/uuid"
)

// Property is a physical accommodation site (the hotel itself).
// AccountID is a soft owner reference; it is intentionally not a
// foreign key because owner accounts live outside this schema.
type Property struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AccountID *uuid.UUID `json:"accountID" gorm:"type:uuid"`

	Name         string  `json:"name"`
	AddressLine1 string  `json:"addressLine1"`
	AddressLine2 string  `json:"addressLine2"`
	City         string  `json:"city"`
	State        string  `json:"state"`
	Zip          string  `json:"zip"`
	Country      string  `json:"country"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`

	// Structural location inside a larger complex, when relevant
	Floor   string `json:"floor"`
	Section string `json:"section"`
	Number  string `json:"number"`

	Description  string  `json:"description" gorm:"type:text"`
	ImageURL     string  `json:"imageUrl" gorm:"column:image_url"`
	Rating       float32 `json:"rating" gorm:"type:numeric(3,2)"`
	AIMatchScore float32 `json:"aiMatchScore" gorm:"column:ai_match_score;type:numeric(5,2)"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Rooms    []Room    `json:"rooms,omitempty" gorm:"foreignKey:PropertyID"`
	Guests   []Guest   `json:"guests,omitempty" gorm:"foreignKey:PropertyID"`
	Bookings []Booking `json:"bookings,omitempty" gorm:"foreignKey:PropertyID"`
}
