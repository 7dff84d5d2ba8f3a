// Package domain contains the Item entity and the validation rules that guard
// every write path. Validators return *apperr.Error values with fixed messages
// so the API boundary can surface them without translation.
package domain

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/riverline/items-api/internal/apperr"
)

// Stable validation messages. Client tooling matches on these byte-for-byte,
// so they must never be reworded casually.
const (
	MsgInvalidItemID      = "Invalid UUID format."
	MsgInvalidName        = "name is required and must be a non-empty string."
	MsgInvalidDateOfBirth = "Invalid date of birth; use ISO date format (YYYY-MM-DD)."
)

// DateOfBirthLayout is the only accepted wire format for dates of birth.
const DateOfBirthLayout = "2006-01-02"

// itemIDPattern accepts only the canonical 8-4-4-4-12 grouped hex form,
// case-insensitive. uuid.Parse is deliberately not used for validation: it
// also accepts URN-prefixed, braced, and unhyphenated spellings, all of which
// the API rejects.
var itemIDPattern = regexp.MustCompile(
	`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`,
)

// Item represents one persisted resource record.
type Item struct {
	ID          uuid.UUID
	Name        string
	Description string
	DateOfBirth *time.Time
	Sex         string
	PhoneNumber string
	Address     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewItem builds a fresh Item with a server-assigned identifier and equal
// created/updated timestamps. Callers are expected to have validated name and
// dateOfBirth already; free-text fields are stored as given.
func NewItem(name, description string, dateOfBirth *time.Time, sex, phoneNumber, address string) *Item {
	now := time.Now().UTC()
	return &Item{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		DateOfBirth: dateOfBirth,
		Sex:         sex,
		PhoneNumber: phoneNumber,
		Address:     address,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// ValidateItemID checks that id is in the canonical grouped UUID form and
// returns the parsed identifier. Any other spelling, including the empty
// string, fails with MsgInvalidItemID. Re-validating an accepted string is
// idempotent.
func ValidateItemID(id string) (uuid.UUID, error) {
	if !itemIDPattern.MatchString(id) {
		return uuid.Nil, apperr.BadRequest(MsgInvalidItemID)
	}
	return uuid.MustParse(id), nil
}

// ValidateName checks that name is present and non-empty after trimming, and
// returns the trimmed value. A nil pointer means the field was absent or not
// a string on the wire; both fail with MsgInvalidName.
func ValidateName(name *string) (string, error) {
	if name == nil {
		return "", apperr.BadRequest(MsgInvalidName)
	}
	trimmed := strings.TrimSpace(*name)
	if trimmed == "" {
		return "", apperr.BadRequest(MsgInvalidName)
	}
	return trimmed, nil
}

// ValidateDateOfBirth parses an optional date-of-birth value. Absent or blank
// input is a valid "no value" and yields (nil, nil). Non-blank input must
// parse as an ISO date AND survive a round trip: formatting the parsed value
// back to YYYY-MM-DD must reproduce the trimmed input exactly. The round trip
// rejects strings that are lexically ISO-shaped but not real calendar dates.
func ValidateDateOfBirth(raw *string) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*raw)
	if trimmed == "" {
		return nil, nil
	}

	parsed, err := time.Parse(DateOfBirthLayout, trimmed)
	if err != nil {
		return nil, apperr.BadRequest(MsgInvalidDateOfBirth)
	}
	if parsed.Format(DateOfBirthLayout) != trimmed {
		return nil, apperr.BadRequest(MsgInvalidDateOfBirth)
	}
	return &parsed, nil
}

// FormatDateOfBirth renders a stored date of birth in wire format, or nil for
// records without one.
func FormatDateOfBirth(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateOfBirthLayout)
	return &s
}
