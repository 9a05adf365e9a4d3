package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/foresightmx/foresight/internal/service"
)

// ReportHandler serves the downloadable report artifacts and the summary
// email trigger.
type ReportHandler struct {
	tracker *service.ExpenseTracker
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(tracker *service.ExpenseTracker) *ReportHandler {
	return &ReportHandler{tracker: tracker}
}

// PDF handles GET /api/reports/pdf.
func (h *ReportHandler) PDF(c echo.Context) error {
	sess, err := sessionOr401(c)
	if sess == nil {
		return err
	}
	sess.Acquire()
	defer sess.Release()
	if err := applyView(c, sess.State); err != nil {
		return err
	}

	data, err := h.tracker.MonthlyPDF(sess.State)
	if err != nil {
		log.Error().Err(err).Msg("pdf report failed")
		return NewInternalError(c, "Failed to generate report")
	}
	name := fmt.Sprintf("Reporte-%04d-%02d.pdf", sess.State.ViewYear, sess.State.ViewMonth)
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Blob(http.StatusOK, "application/pdf", data)
}

// XLSX handles GET /api/reports/xlsx.
func (h *ReportHandler) XLSX(c echo.Context) error {
	sess, err := sessionOr401(c)
	if sess == nil {
		return err
	}
	sess.Acquire()
	defer sess.Release()
	if err := applyView(c, sess.State); err != nil {
		return err
	}

	data, err := h.tracker.MonthlyXLSX(sess.State)
	if err != nil {
		log.Error().Err(err).Msg("xlsx report failed")
		return NewInternalError(c, "Failed to generate report")
	}
	name := fmt.Sprintf("Reporte-%04d-%02d.xlsx", sess.State.ViewYear, sess.State.ViewMonth)
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// Chart handles GET /api/reports/chart. kind=balance selects the cumulative
// balance line; the default is the expense-by-category donut.
func (h *ReportHandler) Chart(c echo.Context) error {
	sess, err := sessionOr401(c)
	if sess == nil {
		return err
	}
	sess.Acquire()
	defer sess.Release()
	if err := applyView(c, sess.State); err != nil {
		return err
	}

	var data []byte
	if c.QueryParam("kind") == "balance" {
		data, err = h.tracker.BalanceChart(sess.State)
	} else {
		data, err = h.tracker.MonthlyChart(sess.State)
	}
	if err != nil {
		log.Error().Err(err).Msg("chart render failed")
		return NewInternalError(c, "Failed to render chart")
	}
	if data == nil {
		return NewNotFoundError(c, "No data for this month")
	}
	return c.Blob(http.StatusOK, "image/png", data)
}

// Email handles POST /api/reports/email.
func (h *ReportHandler) Email(c echo.Context) error {
	sess, err := sessionOr401(c)
	if sess == nil {
		return err
	}
	sess.Acquire()
	defer sess.Release()
	if err := h.tracker.EmailSummary(c.Request().Context(), sess.State); err != nil {
		log.Error().Err(err).Str("email", sess.State.Email).Msg("summary email failed")
		return NewInternalError(c, "Failed to send summary email")
	}
	return c.NoContent(http.StatusNoContent)
}
