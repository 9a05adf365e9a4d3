package model

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestKind_DefaultsToExpense(t *testing.T) {
	legacy := Transaction{Amount: decimal.NewFromInt(10)}
	if legacy.Kind() != TypeExpense {
		t.Errorf("expected untyped movement to count as expense, got %s", legacy.Kind())
	}
	if legacy.IsIncome() {
		t.Errorf("untyped movement must not be income")
	}
}

func TestEffectiveBusinessType(t *testing.T) {
	if got := (Transaction{}).EffectiveBusinessType(); got != BusinessTypeBusiness {
		t.Errorf("expected business default, got %s", got)
	}
	personal := Transaction{BusinessType: BusinessTypePersonal}
	if got := personal.EffectiveBusinessType(); got != BusinessTypePersonal {
		t.Errorf("expected personal, got %s", got)
	}
}

func TestValidate(t *testing.T) {
	valid := Transaction{
		Amount: decimal.NewFromInt(100),
		Type:   TypeExpense,
		Date:   MiddayUTC(2024, time.March, 10),
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("expected valid, got %v", err)
	}

	zero := valid
	zero.Amount = decimal.Zero
	if err := zero.Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}

	negative := valid
	negative.Amount = decimal.NewFromInt(-5)
	if err := negative.Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount for negative, got %v", err)
	}

	badType := valid
	badType.Type = "transfer"
	if err := badType.Validate(); !errors.Is(err, ErrInvalidTransactionType) {
		t.Errorf("expected ErrInvalidTransactionType, got %v", err)
	}

	noDate := valid
	noDate.Date = time.Time{}
	if err := noDate.Validate(); !errors.Is(err, ErrDateRequired) {
		t.Errorf("expected ErrDateRequired, got %v", err)
	}
}

func TestMiddayUTC(t *testing.T) {
	d := MiddayUTC(2024, time.March, 10)
	if d.Hour() != 12 || d.Location() != time.UTC {
		t.Errorf("expected 12:00 UTC, got %s", d)
	}
	if d.Year() != 2024 || d.Month() != time.March || d.Day() != 10 {
		t.Errorf("unexpected date: %s", d)
	}
}

func TestTransaction_UnmarshalLegacyRow(t *testing.T) {
	// Rows written by older clients have no type or businessType field.
	raw := `{"id":1710072000000,"amount":150,"category":"comida","concept":"Tacos","date":"2024-03-10T12:00:00Z"}`

	var tx Transaction
	if err := json.Unmarshal([]byte(raw), &tx); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if tx.Kind() != TypeExpense {
		t.Errorf("expected legacy row to default to expense")
	}
	if !tx.Amount.Equal(decimal.NewFromInt(150)) {
		t.Errorf("expected amount 150, got %s", tx.Amount)
	}
}

func TestDisplayName(t *testing.T) {
	cases := []struct {
		name    string
		profile UserProfile
		want    string
	}{
		{"full name", UserProfile{Email: "ana@example.com", FirstName: "Ana", LastName: "García"}, "Ana García"},
		{"first name only", UserProfile{Email: "ana@example.com", FirstName: "Ana"}, "Ana"},
		{"mailbox fallback", UserProfile{Email: "ana@example.com"}, "ana"},
		{"bare string fallback", UserProfile{Email: "ana"}, "ana"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.profile.DisplayName(); got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
