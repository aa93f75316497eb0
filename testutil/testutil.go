// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"github.com/danielhkuo/campaign-signup/cliparse"
	"github.com/danielhkuo/campaign-signup/db"
	"github.com/danielhkuo/campaign-signup/flash"
	"github.com/danielhkuo/campaign-signup/models"
)

// Test admin credentials
const (
	AdminUsername = "admin"
	AdminPassword = "senha123"
)

var adminHash = sync.OnceValue(func() string {
	hash, err := bcrypt.GenerateFromPassword([]byte(AdminPassword), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return string(hash)
})

// SetupTestDB creates a fresh SQLite database with the full schema.
// The file lives in the test's temp dir and is closed on cleanup.
func SetupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	conn, err := db.Open(db.DriverSQLite, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:              3318,
		DatabaseURL:       "file:test.db",
		DatabaseType:      cliparse.DatabaseSQLite,
		SecretKey:         "test-secret-key",
		AdminUsername:     AdminUsername,
		AdminPasswordHash: adminHash(),
		SessionTTL:        time.Hour,
		CountryCode:       "55",
	}
}

// CreateTestCampaign inserts a campaign and returns it
func CreateTestCampaign(t *testing.T, conn *sqlx.DB, name string, open bool) models.Campaign {
	t.Helper()

	campaign := models.Campaign{Name: name, IsOpen: open, CreationDate: time.Now().UTC()}
	err := conn.QueryRowx(`
		INSERT INTO campaign (name, is_open, creation_date)
		VALUES (?, ?, ?)
		RETURNING id
	`, campaign.Name, campaign.IsOpen, campaign.CreationDate).Scan(&campaign.ID)
	if err != nil {
		t.Fatalf("Failed to create test campaign: %v", err)
	}

	return campaign
}

// CreateTestParticipant inserts a participant with sensible defaults
func CreateTestParticipant(t *testing.T, conn *sqlx.DB, campaignID int64, fullName, cpf string, approved bool) models.Participant {
	t.Helper()

	p := models.Participant{
		FullName:            fullName,
		BirthDate:           time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC),
		CPF:                 cpf,
		Address:             "Rua das Flores, 10",
		ResponsibleFullName: fullName,
		WhatsAppContact:     "(11) 98765-4321",
		HowHeard:            models.DefaultHowHeard,
		Profession:          models.DefaultProfession,
		HouseholdMembers:    models.DefaultHouseholdMembers,
		RegistrationDate:    time.Now().UTC(),
		IsApproved:          approved,
		CampaignID:          campaignID,
	}

	err := conn.QueryRowx(`
		INSERT INTO participant (
			full_name, birth_date, cpf, address, address_complement, neighborhood,
			responsible_full_name, whatsapp_contact, how_heard, profession,
			household_members, registration_date, is_approved, campaign_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`,
		p.FullName, p.BirthDate, p.CPF, p.Address, p.AddressComplement, p.Neighborhood,
		p.ResponsibleFullName, p.WhatsAppContact, p.HowHeard, p.Profession,
		p.HouseholdMembers, p.RegistrationDate, p.IsApproved, p.CampaignID,
	).Scan(&p.ID)
	if err != nil {
		t.Fatalf("Failed to create test participant: %v", err)
	}

	return p
}

// CountRows returns the number of rows in a table
func CountRows(t *testing.T, conn *sqlx.DB, table string) int {
	t.Helper()

	var n int
	if err := conn.Get(&n, "SELECT COUNT(*) FROM "+table); err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	return n
}

// RegistrationForm returns a complete, valid registration submission
func RegistrationForm(fullName, cpf string) url.Values {
	return url.Values{
		"full_name":             {fullName},
		"birth_date":            {"1985-03-21"},
		"cpf":                   {cpf},
		"address":               {"Rua das Acácias, 45"},
		"address_complement":    {"Apto 12"},
		"neighborhood":          {"Centro"},
		"responsible_full_name": {fullName},
		"whatsapp_contact":      {"(11) 91234-5678"},
		"how_heard":             {"Instagram"},
		"profession":            {"Costureira"},
		"household_members":     {"4"},
	}
}

// MakeFormRequest creates a request with an url-encoded body
func MakeFormRequest(method, path string, form url.Values, cookies ...*http.Cookie) *http.Request {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for _, c := range cookies {
		req.AddCookie(c)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertRedirect checks for a 303 to the given location
func AssertRedirect(t *testing.T, w *httptest.ResponseRecorder, location string) {
	t.Helper()
	AssertStatus(t, w, http.StatusSeeOther)
	if got := w.Header().Get("Location"); got != location {
		t.Errorf("Expected redirect to %q, got %q", location, got)
	}
}

// FlashFrom returns the flash message set by the response, if any
func FlashFrom(t *testing.T, w *httptest.ResponseRecorder) (flash.Message, bool) {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == flash.CookieName && c.MaxAge >= 0 {
			return flash.Decode(c.Value)
		}
	}
	return flash.Message{}, false
}

// AssertFlash checks the response set a flash of the given kind and text
func AssertFlash(t *testing.T, w *httptest.ResponseRecorder, kind flash.Kind, text string) {
	t.Helper()
	msg, ok := FlashFrom(t, w)
	if !ok {
		t.Fatalf("Expected flash %q, got none", text)
	}
	if msg.Kind != kind || msg.Text != text {
		t.Errorf("Expected flash %s %q, got %s %q", kind, text, msg.Kind, msg.Text)
	}
}
