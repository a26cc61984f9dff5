package services

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func confirmationEmailFixture() ConfirmationEmail {
	return ConfirmationEmail{
		GuestEmail:       "alice@example.com",
		HotelName:        "Vysota 890",
		UnitName:         "Leleka",
		ConfirmationCode: "BK-ABC123",
		GuestName:        "Alice Smith",
		GuestPhone:       "+1987654321",
		Guests:           2,
		CheckIn:          time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:         time.Date(2026, 4, 4, 0, 0, 0, 0, time.UTC),
		TotalPrice:       decimal.NewFromFloat(399.9),
		CurrencyCode:     "USD",
	}
}

func TestBuildMonosendPayloadMapping(t *testing.T) {
	payload := buildMonosendPayload(confirmationEmailFixture())

	to, ok := payload["to"].([]string)
	if !ok || len(to) != 1 || to[0] != "alice@example.com" {
		t.Fatalf("expected to=[alice@example.com], got %v", payload["to"])
	}
	if payload["subject"] != "Thanks! Your booking is confirmed at Vysota 890" {
		t.Fatalf("unexpected subject: %v", payload["subject"])
	}

	template := payload["template"].(map[string]interface{})
	if template["id"] != monosendTemplateID {
		t.Fatalf("unexpected template id: %v", template["id"])
	}

	vars := template["variables"].(map[string]string)
	expected := map[string]string{
		"hotel_unit_title": "Leleka",
		"bookingNumber":    "BK-ABC123",
		"firstName":        "Alice",
		"email":            "alice@example.com",
		"phoneNumber":      "+1987654321",
		"guestCount":       "2",
		"checkIn":          "2026-04-01",
		"checkOut":         "2026-04-04",
		"total":            "399.90 USD",
		"companyName":      "Vysota 890",
	}
	for key, want := range expected {
		if vars[key] != want {
			t.Errorf("variable %s = %q, want %q", key, vars[key], want)
		}
	}
}

func TestBuildMonosendPayloadSingleWordName(t *testing.T) {
	email := confirmationEmailFixture()
	email.GuestName = "Madonna"
	payload := buildMonosendPayload(email)
	vars := payload["template"].(map[string]interface{})["variables"].(map[string]string)
	if vars["firstName"] != "Madonna" {
		t.Fatalf("expected firstName Madonna, got %q", vars["firstName"])
	}
}

func TestSendBookingConfirmation(t *testing.T) {
	var gotAuth, gotContentType string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	client := &MonosendClient{BaseURL: srv.URL, APIKey: "test-key", HTTPClient: srv.Client()}
	if err := client.SendBookingConfirmation(confirmationEmailFixture()); err != nil {
		t.Fatalf("expected send to succeed, got %v", err)
	}

	if gotAuth != "Bearer test-key" {
		t.Errorf("expected bearer auth header, got %q", gotAuth)
	}
	if gotContentType != "application/json" {
		t.Errorf("expected json content type, got %q", gotContentType)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(gotBody, &decoded); err != nil {
		t.Fatalf("request body is not valid json: %v", err)
	}
	if decoded["from"] != monosendFromEmail {
		t.Errorf("expected from %q, got %v", monosendFromEmail, decoded["from"])
	}
}

func TestSendBookingConfirmationNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("upstream down"))
	}))
	defer srv.Close()

	client := &MonosendClient{BaseURL: srv.URL, APIKey: "test-key", HTTPClient: srv.Client()}
	err := client.SendBookingConfirmation(confirmationEmailFixture())
	if err == nil {
		t.Fatal("expected an error for HTTP 500")
	}
}

type failingMailer struct{}

func (failingMailer) SendBookingConfirmation(ConfirmationEmail) error {
	return errors.New("email down")
}

type recordingMailer struct {
	sent []ConfirmationEmail
}

func (m *recordingMailer) SendBookingConfirmation(e ConfirmationEmail) error {
	m.sent = append(m.sent, e)
	return nil
}

// A failed send is logged and swallowed; confirming a booking must
// never depend on the email provider.
func TestSendConfirmationEmailNonBlocking(t *testing.T) {
	svc := &BookingService{mailer: failingMailer{}}
	svc.sendConfirmationEmail(confirmationEmailFixture())

	svc = &BookingService{} // no mailer configured at all
	svc.sendConfirmationEmail(confirmationEmailFixture())
}

func TestSendConfirmationEmailForwardsDetails(t *testing.T) {
	mailer := &recordingMailer{}
	svc := &BookingService{mailer: mailer}

	email := confirmationEmailFixture()
	svc.sendConfirmationEmail(email)

	if len(mailer.sent) != 1 {
		t.Fatalf("expected 1 email, got %d", len(mailer.sent))
	}
	got := mailer.sent[0]
	if got.GuestEmail != email.GuestEmail || got.ConfirmationCode != email.ConfirmationCode {
		t.Fatalf("email fields not forwarded: %+v", got)
	}
	if got.HotelName != "Vysota 890" || got.UnitName != "Leleka" {
		t.Fatalf("expected hotel/unit names forwarded, got %q/%q", got.HotelName, got.UnitName)
	}
}
