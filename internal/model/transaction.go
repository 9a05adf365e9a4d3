package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType separates money coming in from money going out. The sign of
// Amount is always positive; the type carries the direction.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// BusinessType tags a movement as business or personal spending.
type BusinessType string

const (
	BusinessTypeBusiness BusinessType = "business"
	BusinessTypePersonal BusinessType = "personal"
)

// Transaction is a single money movement inside a user's profile. The JSON
// shape matches the rows stored in the profile's expenses column, so records
// written by older clients unmarshal cleanly: type and businessType may be
// absent and default to expense/business.
type Transaction struct {
	ID           int64           `json:"id"`
	Amount       decimal.Decimal `json:"amount"`
	Type         TransactionType `json:"type,omitempty"`
	Category     string          `json:"category,omitempty"`
	Concept      string          `json:"concept,omitempty"`
	Method       string          `json:"method,omitempty"`
	BusinessType BusinessType    `json:"businessType,omitempty"`
	Date         time.Time       `json:"date"`
}

// Kind returns the effective type, treating an absent type as expense.
func (t Transaction) Kind() TransactionType {
	if t.Type == TypeIncome {
		return TypeIncome
	}
	return TypeExpense
}

// IsIncome reports whether the movement adds money.
func (t Transaction) IsIncome() bool {
	return t.Kind() == TypeIncome
}

// EffectiveBusinessType returns the business tag, defaulting to business.
func (t Transaction) EffectiveBusinessType() BusinessType {
	if t.BusinessType == BusinessTypePersonal {
		return BusinessTypePersonal
	}
	return BusinessTypeBusiness
}

// Validate rejects a transaction before it is admitted into a collection.
// Amounts must be strictly positive; direction lives in Type, never in sign.
func (t Transaction) Validate() error {
	if !t.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if t.Type != "" && t.Type != TypeIncome && t.Type != TypeExpense {
		return ErrInvalidTransactionType
	}
	if t.Date.IsZero() {
		return ErrDateRequired
	}
	return nil
}

// MiddayUTC pins a calendar day to 12:00 UTC. Storing midday instead of
// midnight keeps the day stable when clients in different timezones parse
// the timestamp back into a local date.
func MiddayUTC(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}
