package models

import (
	"time"

	"github.com/google/uuid"
)

// Guest is a person who can hold bookings. In this schema variant a
// guest record is scoped to one property, so the same person staying
// at two properties exists twice.
type Guest struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PropertyID uuid.UUID `json:"propertyID" gorm:"type:uuid;not null;index:idx_guests_property_email"`

	Name  string `json:"name"`
	Email string `json:"email" gorm:"index:idx_guests_property_email"`
	Phone string `json:"phone"`
	Notes string `json:"notes" gorm:"type:text"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Property *Property `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
}
