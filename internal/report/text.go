// Package report renders a viewed month into shareable artifacts: a plain
// text summary, a PDF, and a spreadsheet. Every renderer is a pure function
// of the period slice and its summary.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/foresightmx/foresight/internal/summary"
)

var monthNames = [12]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// MonthLabel formats a period as "Marzo 2024".
func MonthLabel(year int, month time.Month) string {
	return fmt.Sprintf("%s %d", monthNames[month-1], year)
}

// FormatMoney renders an amount the way the dashboard does: currency sign,
// thousands separators, no decimal places.
func FormatMoney(amount decimal.Decimal) string {
	neg := amount.IsNegative()
	digits := amount.Abs().Round(0).String()

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
		if len(digits) > lead {
			b.WriteByte(',')
		}
	}
	for i := lead; i < len(digits); i += 3 {
		b.WriteString(digits[i : i+3])
		if i+3 < len(digits) {
			b.WriteByte(',')
		}
	}
	return b.String()
}

// StatusLine condenses a summary into the one-line financial status used in
// the summary email.
func StatusLine(s summary.Summary) string {
	switch {
	case s.TransactionCount == 0:
		return "Sin movimientos este mes"
	case s.Available.IsNegative():
		return fmt.Sprintf("Déficit de %s este mes", FormatMoney(s.Available.Abs()))
	case s.Available.IsZero():
		return "Mes en punto de equilibrio"
	default:
		return fmt.Sprintf("Superávit de %s este mes", FormatMoney(s.Available))
	}
}

// TextSummary is the plain-text report used for the share action and as the
// email body.
func TextSummary(s summary.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Reporte Financiero - %s\n\n", MonthLabel(s.Year, s.Month))
	fmt.Fprintf(&b, "Saldo: %s\n", FormatMoney(s.Available))
	fmt.Fprintf(&b, "Ingresos: %s\n", FormatMoney(s.TotalIncome))
	fmt.Fprintf(&b, "Gastos: %s\n", FormatMoney(s.TotalExpense))
	fmt.Fprintf(&b, "Movimientos: %d\n", s.TransactionCount)
	fmt.Fprintf(&b, "\n%s\n", StatusLine(s))
	return b.String()
}
