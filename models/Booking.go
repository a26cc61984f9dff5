package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Booking reserves one room for one guest over a date range.
// check_in < check_out is validated at the service edge, not by a
// check constraint; overlapping bookings for the same room are not
// excluded by the schema either.
type Booking struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PropertyID uuid.UUID `json:"propertyID" gorm:"type:uuid;not null;index"`
	RoomID     uuid.UUID `json:"roomID" gorm:"type:uuid;not null;index"`
	GuestID    uuid.UUID `json:"guestID" gorm:"type:uuid;not null;index"`

	CheckIn     time.Time       `json:"checkIn" gorm:"type:date"`
	CheckOut    time.Time       `json:"checkOut" gorm:"type:date"`
	GuestsCount int             `json:"guestsCount"`
	TotalPrice  decimal.Decimal `json:"totalPrice" gorm:"type:numeric(10,2)"`

	Status       string `json:"status" gorm:"type:varchar(20);default:'confirmed';index"` // confirmed, cancelled, completed
	CurrencyCode string `json:"currencyCode" gorm:"type:varchar(3);default:'USD'"`

	// Provenance of AI-assisted bookings
	AIHandled      bool   `json:"aiHandled" gorm:"column:ai_handled;default:false"`
	Source         string `json:"source"` // chatgpt, direct, phone
	ConversationID string `json:"conversationID" gorm:"column:conversation_id"`

	CancelledAt *time.Time `json:"cancelledAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	Property *Property `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
	Room     *Room     `json:"room,omitempty" gorm:"foreignKey:RoomID"`
	Guest    *Guest    `json:"guest,omitempty" gorm:"foreignKey:GuestID"`
}
