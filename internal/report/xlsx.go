package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/foresightmx/foresight/internal/category"
	"github.com/foresightmx/foresight/internal/model"
	"github.com/foresightmx/foresight/internal/summary"
)

// XLSX renders the monthly report as a spreadsheet: a summary block followed
// by one row per transaction.
func XLSX(transactions []model.Transaction, s summary.Summary, registry category.Registry) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Reporte"
	f.SetSheetName("Sheet1", sheet)

	set := func(cell string, value any) {
		// excelize only errors on malformed references; ours are fixed.
		_ = f.SetCellValue(sheet, cell, value)
	}

	set("A1", "Reporte Financiero")
	set("A2", MonthLabel(s.Year, s.Month))
	set("A4", "Ingresos")
	set("B4", s.TotalIncome.InexactFloat64())
	set("A5", "Gastos")
	set("B5", s.TotalExpense.InexactFloat64())
	set("A6", "Saldo")
	set("B6", s.Available.InexactFloat64())
	set("A7", "Movimientos")
	set("B7", s.TransactionCount)

	headers := []string{"Fecha", "Tipo", "Categoría", "Concepto", "Método", "Monto"}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		set(fmt.Sprintf("%s9", col), h)
	}

	for i, t := range transactions {
		row := 10 + i
		kind := "Gasto"
		if t.IsIncome() {
			kind = "Ingreso"
		}
		set(fmt.Sprintf("A%d", row), t.Date.UTC().Format("2006-01-02"))
		set(fmt.Sprintf("B%d", row), kind)
		set(fmt.Sprintf("C%d", row), registry.Resolve(t.Category).Label)
		set(fmt.Sprintf("D%d", row), t.Concept)
		set(fmt.Sprintf("E%d", row), t.Method)
		set(fmt.Sprintf("F%d", row), t.Amount.InexactFloat64())
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render spreadsheet: %w", err)
	}
	return buf.Bytes(), nil
}
