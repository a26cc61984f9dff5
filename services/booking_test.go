package services

import (
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeStay(t *testing.T) {
	rate := decimal.RequireFromString("180.00")

	cases := []struct {
		name      string
		checkIn   time.Time
		checkOut  time.Time
		nights    int
		wantTotal string
	}{
		{"two nights", date(2026, 3, 10), date(2026, 3, 12), 2, "360.00"},
		{"one night", date(2026, 3, 10), date(2026, 3, 11), 1, "180.00"},
		{"week", date(2026, 4, 1), date(2026, 4, 8), 7, "1260.00"},
		{"same day floors to one night", date(2026, 3, 10), date(2026, 3, 10), 1, "180.00"},
	}

	for _, tc := range cases {
		nights, total := computeStay(tc.checkIn, tc.checkOut, rate)
		if nights != tc.nights {
			t.Errorf("%s: expected %d nights, got %d", tc.name, tc.nights, nights)
		}
		if total.StringFixed(2) != tc.wantTotal {
			t.Errorf("%s: expected total %s, got %s", tc.name, tc.wantTotal, total.StringFixed(2))
		}
	}
}

func TestNormalizeCurrency(t *testing.T) {
	if got := normalizeCurrency(""); got != "USD" {
		t.Fatalf("expected empty currency to default to USD, got %q", got)
	}
	if got := normalizeCurrency("EUR"); got != "EUR" {
		t.Fatalf("expected EUR passthrough, got %q", got)
	}
}

func validConfirmInput() ConfirmBookingInput {
	return ConfirmBookingInput{
		UnitID:     "5f1c2a6e-0b5d-4a89-9a41-8c2f1d3b7a01",
		CheckIn:    date(2026, 3, 10),
		CheckOut:   date(2026, 3, 12),
		Guests:     3,
		GuestName:  "John Doe",
		GuestEmail: "john@example.com",
		GuestPhone: "+1234567890",
		TotalPrice: 450.0,
	}
}

// Validation and date ordering are checked before any database access,
// so these paths are exercised without a connection.
func TestConfirmRejectsInvalidInput(t *testing.T) {
	svc := &BookingService{validate: validator.New()}

	cases := []struct {
		name   string
		mutate func(*ConfirmBookingInput)
	}{
		{"missing unit id", func(in *ConfirmBookingInput) { in.UnitID = "" }},
		{"malformed unit id", func(in *ConfirmBookingInput) { in.UnitID = "not-a-uuid" }},
		{"missing guest email", func(in *ConfirmBookingInput) { in.GuestEmail = "" }},
		{"bad guest email", func(in *ConfirmBookingInput) { in.GuestEmail = "not-an-email" }},
		{"zero guests", func(in *ConfirmBookingInput) { in.Guests = 0 }},
		{"too many guests", func(in *ConfirmBookingInput) { in.Guests = 17 }},
		{"zero total", func(in *ConfirmBookingInput) { in.TotalPrice = 0 }},
	}

	for _, tc := range cases {
		input := validConfirmInput()
		tc.mutate(&input)
		if _, err := svc.Confirm(input); err == nil {
			t.Errorf("%s: expected validation error, got nil", tc.name)
		}
	}
}

func TestConfirmRejectsReversedDates(t *testing.T) {
	svc := &BookingService{validate: validator.New()}

	input := validConfirmInput()
	input.CheckIn, input.CheckOut = input.CheckOut, input.CheckIn

	_, err := svc.Confirm(input)
	if err == nil {
		t.Fatal("expected an error for checkOut before checkIn")
	}
	if !strings.Contains(err.Error(), "checkIn must be before checkOut") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestReservationConfirmRejectsReversedDates(t *testing.T) {
	svc := &ReservationService{validate: validator.New()}

	input := validConfirmInput()
	input.CheckOut = input.CheckIn

	if _, err := svc.Confirm(input); err == nil {
		t.Fatal("expected an error for equal check-in and check-out")
	}
}

func TestQuoteRejectsReversedDates(t *testing.T) {
	svc := &BookingService{validate: validator.New()}

	_, err := svc.Quote(QuoteInput{
		UnitName: "Sova House",
		CheckIn:  date(2026, 3, 12),
		CheckOut: date(2026, 3, 10),
	})
	if err == nil {
		t.Fatal("expected an error for reversed dates")
	}
}
