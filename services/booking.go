package services

import (
	"errors"
	"fmt"
	"time"

	"vysota-booking-server/models"
	"vysota-booking-server/storage"
	"vysota-booking-server/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrUnitNotFound = errors.New("unit not found")

// BookingService runs the booking flow against the general schema
// variant: quote a stay, then confirm it with guest details.
type BookingService struct {
	db       *gorm.DB
	validate *validator.Validate
	mailer   Mailer
}

func NewBookingService(mailer Mailer) *BookingService {
	return &BookingService{
		db:       storage.DB,
		validate: validator.New(),
		mailer:   mailer,
	}
}

type QuoteInput struct {
	// Either UnitID or UnitName identifies the room; HotelName
	// disambiguates name lookups across properties.
	UnitID    string
	UnitName  string
	HotelName string
	CheckIn   time.Time
	CheckOut  time.Time
	Guests    int
}

type Quote struct {
	UnitID        uuid.UUID       `json:"unitID"`
	UnitName      string          `json:"unitName"`
	HotelName     string          `json:"hotelName"`
	CheckIn       time.Time       `json:"checkIn"`
	CheckOut      time.Time       `json:"checkOut"`
	Nights        int             `json:"nights"`
	Guests        int             `json:"guests"`
	PricePerNight decimal.Decimal `json:"pricePerNight"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
	CurrencyCode  string          `json:"currencyCode"`
	ImageURL      string          `json:"imageUrl"`
	Rating        float32         `json:"rating"`
}

// Quote resolves the unit and prices the stay. It does not reserve
// anything.
func (s *BookingService) Quote(input QuoteInput) (*Quote, error) {
	if !input.CheckIn.Before(input.CheckOut) {
		return nil, errors.New("checkIn must be before checkOut")
	}

	unit, err := s.resolveRoom(input.UnitID, input.UnitName, input.HotelName)
	if err != nil {
		return nil, err
	}

	nights, total := computeStay(input.CheckIn, input.CheckOut, unit.PricePerNight)

	guests := input.Guests
	if guests < 1 {
		guests = 2
	}

	quote := &Quote{
		UnitID:        unit.ID,
		UnitName:      unit.Name,
		CheckIn:       input.CheckIn,
		CheckOut:      input.CheckOut,
		Nights:        nights,
		Guests:        guests,
		PricePerNight: unit.PricePerNight,
		TotalPrice:    total,
		CurrencyCode:  unit.CurrencyCode,
	}
	if len(unit.Images) > 0 {
		quote.ImageURL = unit.Images[0]
	}
	if unit.Property != nil {
		quote.HotelName = unit.Property.Name
		quote.Rating = unit.Property.Rating
	}
	return quote, nil
}

type ConfirmBookingInput struct {
	UnitID         string    `validate:"required,uuid"`
	UnitName       string    // optional cross-check against the stored unit
	CheckIn        time.Time `validate:"required"`
	CheckOut       time.Time `validate:"required"`
	Guests         int       `validate:"required,gte=1,lte=16"`
	GuestName      string    `validate:"required"`
	GuestEmail     string    `validate:"required,email"`
	GuestPhone     string    `validate:"required"`
	TotalPrice     float64   `validate:"required,gt=0"`
	CurrencyCode   string
	ConversationID string
}

type BookingConfirmation struct {
	ConfirmationCode string          `json:"confirmationCode"`
	Status           string          `json:"status"`
	UnitName         string          `json:"unitName"`
	HotelName        string          `json:"hotelName"`
	CheckIn          time.Time       `json:"checkIn"`
	CheckOut         time.Time       `json:"checkOut"`
	Nights           int             `json:"nights"`
	Guests           int             `json:"guests"`
	TotalPrice       decimal.Decimal `json:"totalPrice"`
	CurrencyCode     string          `json:"currencyCode"`
	GuestName        string          `json:"guestName"`
	GuestEmail       string          `json:"guestEmail"`
	GuestPhone       string          `json:"guestPhone"`
	ImageURL         string          `json:"imageUrl"`
}

// Confirm finalizes a booking: upserts the guest record, writes the
// booking row and sends the confirmation email. The email is best
// effort; a send failure never rolls back a confirmed booking.
func (s *BookingService) Confirm(input ConfirmBookingInput) (*BookingConfirmation, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, err
	}
	if !input.CheckIn.Before(input.CheckOut) {
		return nil, errors.New("checkIn must be before checkOut")
	}

	unitID, err := uuid.Parse(input.UnitID)
	if err != nil {
		return nil, fmt.Errorf("invalid unit id %q: %w", input.UnitID, err)
	}

	var unit models.Room
	if err := s.db.Preload("Property").First(&unit, "id = ?", unitID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrUnitNotFound
		}
		return nil, err
	}
	if input.UnitName != "" && input.UnitName != unit.Name {
		return nil, fmt.Errorf("unit name mismatch for %s: expected %q, got %q", unitID, unit.Name, input.UnitName)
	}

	guestID, err := s.upsertGuest(unit.PropertyID, input.GuestName, input.GuestEmail, input.GuestPhone)
	if err != nil {
		return nil, err
	}

	currency := normalizeCurrency(input.CurrencyCode)
	code := utils.NewConfirmationCode()
	nights, _ := computeStay(input.CheckIn, input.CheckOut, unit.PricePerNight)
	total := decimal.NewFromFloat(input.TotalPrice)

	booking := models.Booking{
		PropertyID:     unit.PropertyID,
		RoomID:         unit.ID,
		GuestID:        guestID,
		CheckIn:        input.CheckIn,
		CheckOut:       input.CheckOut,
		GuestsCount:    input.Guests,
		TotalPrice:     total,
		Status:         "confirmed",
		CurrencyCode:   currency,
		AIHandled:      true,
		Source:         "chatgpt",
		ConversationID: input.ConversationID,
	}
	if err := s.db.Create(&booking).Error; err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	confirmation := &BookingConfirmation{
		ConfirmationCode: code,
		Status:           "confirmed",
		UnitName:         unit.Name,
		CheckIn:          input.CheckIn,
		CheckOut:         input.CheckOut,
		Nights:           nights,
		Guests:           input.Guests,
		TotalPrice:       total,
		CurrencyCode:     currency,
		GuestName:        input.GuestName,
		GuestEmail:       input.GuestEmail,
		GuestPhone:       input.GuestPhone,
	}
	if len(unit.Images) > 0 {
		confirmation.ImageURL = unit.Images[0]
	}
	if unit.Property != nil {
		confirmation.HotelName = unit.Property.Name
	}

	s.sendConfirmationEmail(ConfirmationEmail{
		GuestEmail:       input.GuestEmail,
		HotelName:        confirmation.HotelName,
		UnitName:         unit.Name,
		ConfirmationCode: code,
		GuestName:        input.GuestName,
		GuestPhone:       input.GuestPhone,
		Guests:           input.Guests,
		CheckIn:          input.CheckIn,
		CheckOut:         input.CheckOut,
		TotalPrice:       total,
		CurrencyCode:     currency,
	})

	return confirmation, nil
}

func (s *BookingService) resolveRoom(unitID, unitName, hotelName string) (*models.Room, error) {
	var unit models.Room

	if id, err := uuid.Parse(unitID); err == nil {
		if err := s.db.Preload("Property").First(&unit, "id = ?", id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, ErrUnitNotFound
			}
			return nil, err
		}
		return &unit, nil
	}

	lookupName := unitName
	if lookupName == "" {
		lookupName = unitID
	}
	if lookupName == "" {
		return nil, errors.New("either unitName or unitID is required")
	}

	q := s.db.Preload("Property").
		Joins("JOIN properties ON properties.id = rooms.property_id").
		Where("rooms.name = ?", lookupName)
	if hotelName != "" {
		q = q.Where("properties.name ILIKE ?", "%"+hotelName+"%")
	}
	if err := q.First(&unit).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: %q", ErrUnitNotFound, lookupName)
		}
		return nil, err
	}
	return &unit, nil
}

// upsertGuest finds the guest by email within the property, updating
// contact details when found and inserting otherwise. Guests are
// property-scoped in this schema variant.
func (s *BookingService) upsertGuest(propertyID uuid.UUID, name, email, phone string) (uuid.UUID, error) {
	var guest models.Guest
	err := s.db.Where("email = ? AND property_id = ?", email, propertyID).First(&guest).Error
	if err == nil {
		updates := map[string]interface{}{"name": name, "phone": phone}
		if err := s.db.Model(&guest).Updates(updates).Error; err != nil {
			return uuid.Nil, fmt.Errorf("failed to update guest: %w", err)
		}
		return guest.ID, nil
	}
	if err != gorm.ErrRecordNotFound {
		return uuid.Nil, err
	}

	guest = models.Guest{
		PropertyID: propertyID,
		Name:       name,
		Email:      email,
		Phone:      phone,
	}
	if err := s.db.Create(&guest).Error; err != nil {
		return uuid.Nil, fmt.Errorf("failed to create guest: %w", err)
	}
	return guest.ID, nil
}

func (s *BookingService) sendConfirmationEmail(email ConfirmationEmail) {
	if s.mailer == nil {
		return
	}
	if err := s.mailer.SendBookingConfirmation(email); err != nil {
		utils.Logger.WithError(err).WithFields(map[string]interface{}{
			"confirmationCode": email.ConfirmationCode,
			"guestEmail":       email.GuestEmail,
		}).Warn("booking confirmation email failed")
		return
	}
	utils.Logger.WithFields(map[string]interface{}{
		"confirmationCode": email.ConfirmationCode,
		"guestEmail":       email.GuestEmail,
	}).Info("booking confirmation email sent")
}

// computeStay prices a stay the way the booking form does: whole
// nights times the nightly rate, with a one night floor.
func computeStay(checkIn, checkOut time.Time, rate decimal.Decimal) (int, decimal.Decimal) {
	nights := int(checkOut.Sub(checkIn).Hours() / 24)
	if nights < 1 {
		nights = 1
	}
	return nights, rate.Mul(decimal.NewFromInt(int64(nights)))
}

func normalizeCurrency(code string) string {
	if code == "" {
		return "USD"
	}
	return code
}
