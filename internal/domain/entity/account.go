// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// BirthdayLayout is the calendar date format used when a birthday leaves the domain.
const BirthdayLayout = "2006-01-02"

// birthdayLayouts are the date forms accepted from clients, tried in order.
var birthdayLayouts = []string{
	"2006-1-2",
	"2006/1/2",
	"1/2/2006",
	time.RFC3339,
}

// ParseBirthday leniently parses a client supplied date. Blank or unrecognised text yields nil
// rather than an error, and any time of day is dropped.
func ParseBirthday(text string) *time.Time {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	for _, layout := range birthdayLayouts {
		parsed, err := time.Parse(layout, text)
		if err != nil {
			continue
		}

		date := time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)

		return &date
	}

	return nil
}

// AccountStatus is the lifecycle state of an account. Only StatusActive may log in.
type AccountStatus int

const (
	// StatusInactive marks an account that has been disabled.
	StatusInactive AccountStatus = 0
	// StatusActive marks an account that may authenticate.
	StatusActive AccountStatus = 1
	// StatusSuspended marks an account blocked by an operator.
	StatusSuspended AccountStatus = 2
)

// IsActive reports whether the status allows authentication.
func (s AccountStatus) IsActive() bool {
	return s == StatusActive
}

// Account is the top-level identity record. Its email is unique across the store and its ID
// never changes once created.
type Account struct {
	ID           uuid.UUID     // Time-ordered (v7) identifier.
	Email        string        // Login identifier, matched exactly as stored.
	PasswordHash string        // Base64 keyed hash of the password; never the plaintext.
	Status       AccountStatus // Lifecycle state.
	CreatedAt    time.Time     // Set once at registration.
	UpdatedAt    *time.Time    // Nil until the first update.
}

// Profile is the descriptive record owned 1:1 by an Account and keyed by the account ID.
type Profile struct {
	AccountID uuid.UUID  // Same value as the owning Account.ID.
	FullName  string     // Display name.
	Birthday  *time.Time // Calendar date, nil when unknown.
	Address   *string    // Nil when never supplied.
}

// BirthdayText formats the birthday as YYYY-MM-DD, or returns "" when unset.
func (p *Profile) BirthdayText() string {
	if p == nil || p.Birthday == nil {
		return ""
	}

	return p.Birthday.Format(BirthdayLayout)
}

// AddressText returns the address or "" when unset.
func (p *Profile) AddressText() string {
	if p == nil || p.Address == nil {
		return ""
	}

	return *p.Address
}

// RoleAssignment grants a role to an account. (AccountID, RoleID) is unique.
type RoleAssignment struct {
	AccountID uuid.UUID
	RoleID    RoleID
}

// LoginRecord is the read model used to authenticate: the account joined with its profile
// and its lowest role assignment.
type LoginRecord struct {
	Account  Account
	FullName string
	Birthday *time.Time
	Address  string
	RoleID   RoleID // Zero when the account holds no role.
}

// BirthdayText formats the joined birthday as YYYY-MM-DD, or returns "" when unset.
func (r *LoginRecord) BirthdayText() string {
	if r == nil || r.Birthday == nil {
		return ""
	}

	return r.Birthday.Format(BirthdayLayout)
}
