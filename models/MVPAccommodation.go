package models

import (
	"time"

	"github.com/google/uuid"
)

// MVPAccommodation mirrors Property in the MVP schema variant.
type MVPAccommodation struct {
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

	Floor   string `json:"floor"`
	Section string `json:"section"`
	Number  string `json:"number"`

	Description  string  `json:"description" gorm:"type:text"`
	ImageURL     string  `json:"imageUrl" gorm:"column:image_url"`
	Rating       float32 `json:"rating" gorm:"type:numeric(3,2)"`
	AIMatchScore float32 `json:"aiMatchScore" gorm:"column:ai_match_score;type:numeric(5,2)"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Units []MVPUnit `json:"units,omitempty" gorm:"foreignKey:PropertyID"`
}

func (MVPAccommodation) TableName() string {
	return "mvp_accommodation"
}
