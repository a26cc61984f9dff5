package models

import (
	"time"

	"github.com/google/uuid"
)

// MVPGuest mirrors Guest but is not scoped to an accommodation; one
// guest record can hold reservations across accommodations.
type MVPGuest struct {
	ID uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`

	Name  string `json:"name"`
	Email string `json:"email" gorm:"uniqueIndex"`
	Phone string `json:"phone"`
	Notes string `json:"notes" gorm:"type:text"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (MVPGuest) TableName() string {
	return "mvp_guest"
}
