package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MVPReservation mirrors Booking in the MVP schema variant. On top of
// the internal id it carries the human-facing confirmation code that
// guests quote in email and support conversations; the unique index is
// what guarantees a code is never reissued.
type MVPReservation struct {
	ID      uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UnitID  uuid.UUID `json:"unitID" gorm:"type:uuid;not null;index"`
	GuestID uuid.UUID `json:"guestID" gorm:"type:uuid;not null;index"`

	ConfirmationCode string `json:"confirmationCode" gorm:"type:varchar(16);not null;uniqueIndex"`

	CheckIn     time.Time       `json:"checkIn" gorm:"type:date"`
	CheckOut    time.Time       `json:"checkOut" gorm:"type:date"`
	GuestsCount int             `json:"guestsCount"`
	TotalPrice  decimal.Decimal `json:"totalPrice" gorm:"type:numeric(10,2)"`

	Status       string `json:"status" gorm:"type:varchar(20);default:'confirmed';index"`
	CurrencyCode string `json:"currencyCode" gorm:"type:varchar(3);default:'USD'"`

	AIHandled      bool   `json:"aiHandled" gorm:"column:ai_handled;default:false"`
	Source         string `json:"source"`
	ConversationID string `json:"conversationID" gorm:"column:conversation_id"`

	CancelledAt *time.Time `json:"cancelledAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	Unit  *MVPUnit  `json:"unit,omitempty" gorm:"foreignKey:UnitID"`
	Guest *MVPGuest `json:"guest,omitempty" gorm:"foreignKey:GuestID"`
}

func (MVPReservation) TableName() string {
	return "mvp_reservation"
}
