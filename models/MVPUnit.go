package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// MVPUnit mirrors Room in the MVP schema variant. Amenities and
// images are stored as jsonb array-of-string documents instead of
// native text[] columns.
type MVPUnit struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PropertyID uuid.UUID `json:"propertyID" gorm:"type:uuid;not null;index"`

	Name        string         `json:"name"`
	Type        string         `json:"type"`
	Description string         `json:"description" gorm:"type:text"`
	Images      datatypes.JSON `json:"images" gorm:"type:jsonb"`
	Amenities   datatypes.JSON `json:"amenities" gorm:"type:jsonb"`

	PricePerNight decimal.Decimal `json:"pricePerNight" gorm:"type:numeric(10,2);not null"`
	MaxGuests     int             `json:"maxGuests" gorm:"not null"`
	BedConfig     string          `json:"bedConfig"`

	Status       string `json:"status" gorm:"type:varchar(20);default:'active'"`
	CurrencyCode string `json:"currencyCode" gorm:"type:varchar(3);default:'USD'"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Accommodation *MVPAccommodation `json:"accommodation,omitempty" gorm:"foreignKey:PropertyID"`
}

func (MVPUnit) TableName() string {
	return "mvp_unit"
}

// AmenityList decodes the jsonb amenities document. A missing or
// malformed document reads as an empty list.
func (u *MVPUnit) AmenityList() []string {
	return decodeStringDoc(u.Amenities)
}

// ImageList decodes the jsonb images document.
func (u *MVPUnit) ImageList() []string {
	return decodeStringDoc(u.Images)
}

// StringDoc builds a jsonb array-of-string document from a slice.
func StringDoc(values []string) datatypes.JSON {
	raw, err := json.Marshal(values)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(raw)
}

func decodeStringDoc(doc datatypes.JSON) []string {
	if len(doc) == 0 {
		return []string{}
	}
	var values []string
	if err := json.Unmarshal(doc, &values); err != nil {
		return []string{}
	}
	return values
}
