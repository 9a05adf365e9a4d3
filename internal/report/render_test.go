package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/foresightmx/foresight/internal/category"
	"github.com/foresightmx/foresight/internal/model"
	"github.com/foresightmx/foresight/internal/summary"
)

func fixtureMonth() ([]model.Transaction, summary.Summary) {
	txs := []model.Transaction{
		{
			ID: 1, Amount: decimal.NewFromInt(5000), Type: model.TypeIncome,
			Category: "sueldo", Concept: "Nómina", Date: model.MiddayUTC(2024, time.March, 1),
		},
		{
			ID: 2, Amount: decimal.NewFromInt(150), Type: model.TypeExpense,
			Category: "comida", Concept: "Tacos", Date: model.MiddayUTC(2024, time.March, 10),
		},
	}
	s := summary.Compute(txs, nil, decimal.NewFromInt(800), 2024, time.March,
		time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC))
	return txs, s
}

func TestPDF_RendersDocument(t *testing.T) {
	txs, s := fixtureMonth()

	out, err := PDF(txs, s, category.Builtin())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Errorf("expected a PDF document, got %d bytes", len(out))
	}
}

func TestPDF_EmptyMonth(t *testing.T) {
	s := summary.Compute(nil, nil, decimal.Zero, 2024, time.March,
		time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC))

	out, err := PDF(nil, s, category.Builtin())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) == 0 {
		t.Errorf("an empty month still renders a report")
	}
}

func TestXLSX_RendersWorkbook(t *testing.T) {
	txs, s := fixtureMonth()

	out, err := XLSX(txs, s, category.Builtin())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// XLSX files are zip archives.
	if !bytes.HasPrefix(out, []byte("PK")) {
		t.Errorf("expected a zip-based workbook, got %d bytes", len(out))
	}
}
