package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	monosendEmailsURL  = "https://api.monosend.io/emails"
	monosendTemplateID = "7bc5aec5-cf40-4bec-88c5-d1c00b611fde"
	monosendFromEmail  = "noreply@monosend.email"
	monosendTimeout    = 10 * time.Second
)

// Mailer sends the booking confirmation email. The booking services
// treat a send failure as non-fatal.
type Mailer interface {
	SendBookingConfirmation(email ConfirmationEmail) error
}

// ConfirmationEmail carries everything the Monosend template needs.
type ConfirmationEmail struct {
	GuestEmail       string
	HotelName        string
	UnitName         string
	ConfirmationCode string
	GuestName        string
	GuestPhone       string
	Guests           int
	CheckIn          time.Time
	CheckOut         time.Time
	TotalPrice       decimal.Decimal
	CurrencyCode     string
}

// MonosendClient talks to the Monosend transactional email API.
type MonosendClient struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

func NewMonosendClient() *MonosendClient {
	apiKey := os.Getenv("MONOSEND_API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("API_KEY")
	}
	return &MonosendClient{
		BaseURL:    monosendEmailsURL,
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: monosendTimeout},
	}
}

func buildMonosendPayload(email ConfirmationEmail) map[string]interface{} {
	name := strings.TrimSpace(email.GuestName)
	firstName := name
	if i := strings.IndexByte(name, ' '); i > 0 {
		firstName = name[:i]
	}
	if firstName == "" {
		firstName = email.GuestName
	}

	return map[string]interface{}{
		"to":      []string{email.GuestEmail},
		"from":    monosendFromEmail,
		"subject": fmt.Sprintf("Thanks! Your booking is confirmed at %s", email.HotelName),
		"template": map[string]interface{}{
			"id": monosendTemplateID,
			"variables": map[string]string{
				"hotel_unit_title": email.UnitName,
				"bookingNumber":    email.ConfirmationCode,
				"firstName":        firstName,
				"email":            email.GuestEmail,
				"phoneNumber":      email.GuestPhone,
				"guestCount":       strconv.Itoa(email.Guests),
				"checkIn":          email.CheckIn.Format("2006-01-02"),
				"checkOut":         email.CheckOut.Format("2006-01-02"),
				"total":            email.TotalPrice.StringFixed(2) + " " + email.CurrencyCode,
				"companyName":      email.HotelName,
			},
		},
	}
}

// SendBookingConfirmation posts the templated email. Any non-2xx
// response is an error; callers decide whether that blocks anything.
func (c *MonosendClient) SendBookingConfirmation(email ConfirmationEmail) error {
	body, err := json.Marshal(buildMonosendPayload(email))
	if err != nil {
		return fmt.Errorf("failed to encode email payload: %w", err)
	}

	req, err := http.NewRequest("POST", c.BaseURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("monosend request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		resBody, _ := io.ReadAll(io.LimitReader(res.Body, 500))
		return fmt.Errorf("monosend returned HTTP %d: %s", res.StatusCode, string(resBody))
	}

	return nil
}
