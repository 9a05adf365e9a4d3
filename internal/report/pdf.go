package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/foresightmx/foresight/internal/category"
	"github.com/foresightmx/foresight/internal/model"
	"github.com/foresightmx/foresight/internal/summary"
)

// PDF renders the monthly report: a header band, three summary boxes and the
// transaction table for the period.
func PDF(transactions []model.Transaction, s summary.Summary, registry category.Registry) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	// Core fonts are cp1252; accented strings must go through the translator.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	// Header band
	pdf.SetFillColor(37, 99, 235)
	pdf.Rect(0, 0, 210, 35, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 24)
	pdf.Text(15, 15, "Foresight Finanzas")
	pdf.SetFont("Helvetica", "", 14)
	pdf.Text(15, 25, tr(fmt.Sprintf("Reporte Financiero - %s", MonthLabel(s.Year, s.Month))))

	// Summary boxes
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Text(15, 45, tr("Resumen del Período"))

	boxY := 51.0
	balanceR, balanceG, balanceB := 34, 197, 94
	if s.Available.IsNegative() {
		balanceR, balanceG, balanceB = 239, 68, 68
	}
	drawBox(pdf, 15, boxY, 60, balanceR, balanceG, balanceB, "SALDO FINAL", FormatMoney(s.Available))
	drawBox(pdf, 80, boxY, 55, 34, 197, 94, "INGRESOS", FormatMoney(s.TotalIncome))
	drawBox(pdf, 140, boxY, 55, 239, 68, 68, "GASTOS", FormatMoney(s.TotalExpense))

	// Transaction table
	tableY := boxY + 35
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Text(15, tableY, "Detalle de Transacciones")
	pdf.SetY(tableY + 5)

	if len(transactions) == 0 {
		pdf.SetFont("Helvetica", "", 11)
		pdf.SetTextColor(100, 100, 100)
		pdf.Text(15, tableY+10, tr("No hay transacciones registradas en este período."))
	} else {
		widths := []float64{25, 25, 35, 65, 30}
		headers := []string{"Fecha", "Tipo", "Categoría", "Concepto", "Monto"}

		pdf.SetX(15)
		pdf.SetFillColor(37, 99, 235)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 10)
		for i, h := range headers {
			pdf.CellFormat(widths[i], 8, tr(h), "", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Helvetica", "", 9)
		for i, t := range transactions {
			fill := i%2 == 1
			pdf.SetFillColor(243, 244, 246)
			pdf.SetX(15)

			kind, r, g, b := "Gasto", 239, 68, 68
			if t.IsIncome() {
				kind, r, g, b = "Ingreso", 34, 197, 94
			}

			pdf.SetTextColor(31, 41, 55)
			pdf.CellFormat(widths[0], 7, t.Date.UTC().Format("02/01/2006"), "", 0, "L", fill, 0, "")
			pdf.SetTextColor(r, g, b)
			pdf.CellFormat(widths[1], 7, kind, "", 0, "L", fill, 0, "")
			pdf.SetTextColor(31, 41, 55)
			pdf.CellFormat(widths[2], 7, tr(registry.Resolve(t.Category).Label), "", 0, "L", fill, 0, "")
			pdf.CellFormat(widths[3], 7, tr(t.Concept), "", 0, "L", fill, 0, "")
			pdf.SetTextColor(r, g, b)
			pdf.CellFormat(widths[4], 7, FormatMoney(t.Amount), "", 0, "R", fill, 0, "")
			pdf.Ln(-1)
		}
	}

	// Footer
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(150, 150, 150)
	now := time.Now().UTC()
	pdf.Text(15, 285, fmt.Sprintf("Generado el %s", now.Format("02/01/2006 15:04")))
	pdf.Text(180, 285, tr(fmt.Sprintf("Página 1 de %d", pdf.PageCount())))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func drawBox(pdf *fpdf.Fpdf, x, y, w float64, r, g, b int, label, value string) {
	pdf.SetFillColor(r, g, b)
	pdf.RoundedRect(x, y, w, 25, 3, "1234", "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(x, y+5)
	pdf.CellFormat(w, 5, label, "", 0, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(x, y+14)
	pdf.CellFormat(w, 6, value, "", 0, "C", false, 0, "")
}
