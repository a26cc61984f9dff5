package services

import (
	"errors"
	"fmt"

	"vysota-booking-server/models"
	"vysota-booking-server/storage"
	"vysota-booking-server/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReservationService runs the confirmation flow against the MVP
// schema variant. Unlike the general variant, guests span
// accommodations and the confirmation code is persisted on the
// reservation row, where the unique index backs it.
type ReservationService struct {
	db       *gorm.DB
	validate *validator.Validate
	mailer   Mailer
}

func NewReservationService(mailer Mailer) *ReservationService {
	return &ReservationService{
		db:       storage.DB,
		validate: validator.New(),
		mailer:   mailer,
	}
}

// Confirm writes an mvp_reservation and returns the same confirmation
// shape as the general flow. A duplicate confirmation code surfaces as
// the engine's uniqueness violation, untranslated.
func (s *ReservationService) Confirm(input ConfirmBookingInput) (*BookingConfirmation, error) {
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

	var unit models.MVPUnit
	if err := s.db.Preload("Accommodation").First(&unit, "id = ?", unitID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrUnitNotFound
		}
		return nil, err
	}
	if input.UnitName != "" && input.UnitName != unit.Name {
		return nil, fmt.Errorf("unit name mismatch for %s: expected %q, got %q", unitID, unit.Name, input.UnitName)
	}

	guestID, err := s.upsertGuest(input.GuestName, input.GuestEmail, input.GuestPhone)
	if err != nil {
		return nil, err
	}

	currency := normalizeCurrency(input.CurrencyCode)
	code := utils.NewConfirmationCode()
	nights, _ := computeStay(input.CheckIn, input.CheckOut, unit.PricePerNight)
	total := decimal.NewFromFloat(input.TotalPrice)

	reservation := models.MVPReservation{
		UnitID:           unit.ID,
		GuestID:          guestID,
		ConfirmationCode: code,
		CheckIn:          input.CheckIn,
		CheckOut:         input.CheckOut,
		GuestsCount:      input.Guests,
		TotalPrice:       total,
		Status:           "confirmed",
		CurrencyCode:     currency,
		AIHandled:        true,
		Source:           "chatgpt",
		ConversationID:   input.ConversationID,
	}
	if err := s.db.Create(&reservation).Error; err != nil {
		return nil, fmt.Errorf("failed to create reservation: %w", err)
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
	if images := unit.ImageList(); len(images) > 0 {
		confirmation.ImageURL = images[0]
	}
	if unit.Accommodation != nil {
		confirmation.HotelName = unit.Accommodation.Name
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

// upsertGuest matches by email alone: one mvp_guest record can hold
// reservations across accommodations.
func (s *ReservationService) upsertGuest(name, email, phone string) (uuid.UUID, error) {
	var guest models.MVPGuest
	err := s.db.Where("email = ?", email).First(&guest).Error
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

	guest = models.MVPGuest{Name: name, Email: email, Phone: phone}
	if err := s.db.Create(&guest).Error; err != nil {
		return uuid.Nil, fmt.Errorf("failed to create guest: %w", err)
	}
	return guest.ID, nil
}

func (s *ReservationService) sendConfirmationEmail(email ConfirmationEmail) {
	if s.mailer == nil {
		return
	}
	if err := s.mailer.SendBookingConfirmation(email); err != nil {
		utils.Logger.WithError(err).WithFields(map[string]interface{}{
			"confirmationCode": email.ConfirmationCode,
			"guestEmail":       email.GuestEmail,
		}).Warn("reservation confirmation email failed")
		return
	}
	utils.Logger.WithFields(map[string]interface{}{
		"confirmationCode": email.ConfirmationCode,
		"guestEmail":       email.GuestEmail,
	}).Info("reservation confirmation email sent")
}
