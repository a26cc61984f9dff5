package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Room is a bookable unit belonging to exactly one property.
type Room struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PropertyID uuid.UUID `json:"propertyID" gorm:"type:uuid;not null;index"`

	Name        string         `json:"name"`
	Type        string         `json:"type"` // Home, Cottage, Suite, Chalet, ...
	Description string         `json:"description" gorm:"type:text"`
	Images      pq.StringArray `json:"images" gorm:"type:text[]"`

	PricePerNight decimal.Decimal `json:"pricePerNight" gorm:"type:numeric(10,2);not null"`
	MaxGuests     int             `json:"maxGuests" gorm:"not null"`
	BedConfig     string          `json:"bedConfig"`
	Amenities     pq.StringArray  `json:"amenities" gorm:"type:text[]"`

	// Sync metadata for units mirrored from external source systems
	ExternalSource string     `json:"externalSource"`
	ExternalID     string     `json:"externalID" gorm:"column:external_id"`
	SyncedAt       *time.Time `json:"syncedAt"`

	Status       string `json:"status" gorm:"type:varchar(20);default:'active';index"` // active, inactive, archived
	CurrencyCode string `json:"currencyCode" gorm:"type:varchar(3);default:'USD'"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Property *Property `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
}
