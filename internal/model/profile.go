package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// UserProfile is the durable per-user record: one budget, one
// insertion-ordered collection of transactions, identity fields and any
// savings goals. Budget and transactions are always persisted together as a
// single unit; there is no partial write path.
type UserProfile struct {
	Email        string
	FirstName    string
	LastName     string
	Budget       decimal.Decimal
	Transactions []Transaction
	Goals        []Goal
	UpdatedAt    time.Time
}

// NewProfile returns the default profile created on first sign-in when no
// stored record exists: zero budget, empty collection.
func NewProfile(email, firstName, lastName string) *UserProfile {
	return &UserProfile{
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		Budget:       decimal.Zero,
		Transactions: []Transaction{},
	}
}

// DisplayName prefers the full name, then the first name, then the mailbox
// part of the email address.
func (p *UserProfile) DisplayName() string {
	switch {
	case p.FirstName != "" && p.LastName != "":
		return p.FirstName + " " + p.LastName
	case p.FirstName != "":
		return p.FirstName
	default:
		if at := strings.IndexByte(p.Email, '@'); at > 0 {
			return p.Email[:at]
		}
		return p.Email
	}
}

// Goal is a savings target. Goals ride along in the profile record but are
// not part of the monthly accounting.
type Goal struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	Deadline      time.Time       `json:"deadline"`
}
