package report

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/foresightmx/foresight/internal/summary"
)

func TestMonthLabel(t *testing.T) {
	if got := MonthLabel(2024, time.March); got != "Marzo 2024" {
		t.Errorf("expected Marzo 2024, got %q", got)
	}
	if got := MonthLabel(2023, time.December); got != "Diciembre 2023" {
		t.Errorf("expected Diciembre 2023, got %q", got)
	}
}

func TestFormatMoney(t *testing.T) {
	cases := []struct {
		amount string
		want   string
	}{
		{"0", "$0"},
		{"999", "$999"},
		{"1000", "$1,000"},
		{"12500", "$12,500"},
		{"1234567", "$1,234,567"},
		{"-4500", "-$4,500"},
		{"1500.75", "$1,501"},
	}
	for _, tc := range cases {
		amount, err := decimal.NewFromString(tc.amount)
		if err != nil {
			t.Fatalf("bad fixture %q: %v", tc.amount, err)
		}
		if got := FormatMoney(amount); got != tc.want {
			t.Errorf("FormatMoney(%s) = %q, want %q", tc.amount, got, tc.want)
		}
	}
}

func TestStatusLine(t *testing.T) {
	empty := summary.Summary{}
	if got := StatusLine(empty); got != "Sin movimientos este mes" {
		t.Errorf("unexpected line for empty month: %q", got)
	}

	deficit := summary.Summary{TransactionCount: 3, Available: decimal.NewFromInt(-1200)}
	if got := StatusLine(deficit); got != "Déficit de $1,200 este mes" {
		t.Errorf("unexpected deficit line: %q", got)
	}

	even := summary.Summary{TransactionCount: 2, Available: decimal.Zero}
	if got := StatusLine(even); got != "Mes en punto de equilibrio" {
		t.Errorf("unexpected break-even line: %q", got)
	}

	surplus := summary.Summary{TransactionCount: 2, Available: decimal.NewFromInt(3000)}
	if got := StatusLine(surplus); got != "Superávit de $3,000 este mes" {
		t.Errorf("unexpected surplus line: %q", got)
	}
}

func TestTextSummary(t *testing.T) {
	s := summary.Summary{
		Year:             2024,
		Month:            time.March,
		TotalIncome:      decimal.NewFromInt(5000),
		TotalExpense:     decimal.NewFromInt(3200),
		Available:        decimal.NewFromInt(1800),
		TransactionCount: 4,
	}

	text := TextSummary(s)

	for _, want := range []string{
		"Reporte Financiero - Marzo 2024",
		"Saldo: $1,800",
		"Ingresos: $5,000",
		"Gastos: $3,200",
		"Movimientos: 4",
		"Superávit de $1,800 este mes",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("expected %q in:\n%s", want, text)
		}
	}
}
