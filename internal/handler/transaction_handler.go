package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/foresightmx/foresight/internal/model"
	"github.com/foresightmx/foresight/internal/service"
	"github.com/foresightmx/foresight/internal/state"
)

// TransactionHandler handles transaction and budget mutations plus the
// month view endpoints.
type TransactionHandler struct {
	tracker *service.ExpenseTracker
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(tracker *service.ExpenseTracker) *TransactionHandler {
	return &TransactionHandler{tracker: tracker}
}

// applyView moves the session's month cursor and filter from query
// parameters, when present. step moves relative to the current view, which
// is what the previous/next month arrows send; year+month jumps absolutely.
func applyView(c echo.Context, st *state.AppState) error {
	if s := c.QueryParam("step"); s != "" {
		step, err := strconv.Atoi(s)
		if err != nil || step < -120 || step > 120 {
			return NewValidationError(c, "Invalid step")
		}
		st.ChangeMonth(step)
	}
	if y := c.QueryParam("year"); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil || year < 1970 || year > 2100 {
			return NewValidationError(c, "Invalid year")
		}
		month, err := strconv.Atoi(c.QueryParam("month"))
		if err != nil || month < 1 || month > 12 {
			return NewValidationError(c, "Invalid month")
		}
		st.SetView(year, time.Month(month))
	}
	if f := c.QueryParam("filter"); f != "" {
		switch state.Filter(f) {
		case state.FilterAll, state.FilterIncome, state.FilterExpense:
			st.SetFilter(state.Filter(f))
		default:
			return NewValidationError(c, "Invalid filter")
		}
	}
	return nil
}

type transactionView struct {
	model.Transaction
	CategoryLabel string `json:"categoryLabel"`
	CategoryIcon  string `json:"categoryIcon"`
}

type transactionListResponse struct {
	Year         int               `json:"year"`
	Month        int               `json:"month"`
	Filter       state.Filter      `json:"filter"`
	Transactions []transactionView `json:"transactions"`
}

// List handles GET /api/transactions.
func (h *TransactionHandler) List(c echo.Context) error {
	sess, err := sessionOr401(c)
	if sess == nil {
		return err
	}
	sess.Acquire()
	defer sess.Release()
	if err := applyView(c, sess.State); err != nil {
		return err
	}

	registry := h.tracker.Categories()
	monthly := sess.State.MonthTransactions()
	views := make([]transactionView, len(monthly))
	for i, t := range monthly {
		info := registry.Resolve(t.Category)
		views[i] = transactionView{Transaction: t, CategoryLabel: info.Label, CategoryIcon: info.Icon}
	}
	return c.JSON(http.StatusOK, transactionListResponse{
		Year:         sess.State.ViewYear,
		Month:        int(sess.State.ViewMonth),
		Filter:       sess.State.Filter,
		Transactions: views,
	})
}

// Summary handles GET /api/summary.
func (h *TransactionHandler) Summary(c echo.Context) error {
	sess, err := sessionOr401(c)
	if sess == nil {
		return err
	}
	sess.Acquire()
	defer sess.Release()
	if err := applyView(c, sess.State); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.tracker.MonthlySummary(sess.State))
}

type saveTransactionRequest struct {
	ID           int64  `json:"id,omitempty"`
	Amount       string `json:"amount"`
	Type         string `json:"type"`
	Category     string `json:"category"`
	Concept      string `json:"concept"`
	Method       string `json:"method"`
	BusinessType string `json:"businessType"`
	Date         string `json:"date"` // YYYY-MM-DD
}

// Save handles PUT /api/transactions for both create (no id) and edit.
func (h *TransactionHandler) Save(c echo.Context) error {
	sess, err := sessionOr401(c)
	if sess == nil {
		return err
	}

	var req saveTransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body")
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount")
	}

	input := service.TransactionInput{
		ID:           req.ID,
		Amount:       amount,
		Type:         model.TransactionType(req.Type),
		Category:     req.Category,
		Concept:      req.Concept,
		Method:       req.Method,
		BusinessType: model.BusinessType(req.BusinessType),
	}
	if req.Date != "" {
		day, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return NewValidationError(c, "Invalid date, expected YYYY-MM-DD")
		}
		input.Year, input.Month, input.Day = day.Year(), day.Month(), day.Day()
	}

	if !sess.TryAcquire() {
		return NewConflictError(c, model.ErrMutationInFlight.Error())
	}
	defer sess.Release()

	saved, result := h.tracker.SaveTransaction(c.Request().Context(), sess.State, input)
	if result.RolledBack() {
		return mutationError(c, result.Err)
	}
	return c.JSON(http.StatusOK, saved)
}

// Delete handles DELETE /api/transactions/:id.
func (h *TransactionHandler) Delete(c echo.Context) error {
	sess, err := sessionOr401(c)
	if sess == nil {
		return err
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid transaction id")
	}

	if !sess.TryAcquire() {
		return NewConflictError(c, model.ErrMutationInFlight.Error())
	}
	defer sess.Release()

	if _, ok := sess.State.Find(id); !ok {
		return NewNotFoundError(c, "Transaction not found")
	}

	if result := h.tracker.DeleteTransaction(c.Request().Context(), sess.State, id); result.RolledBack() {
		return mutationError(c, result.Err)
	}
	return c.NoContent(http.StatusNoContent)
}

type budgetRequest struct {
	Budget string `json:"budget"`
}

// SetBudget handles PUT /api/budget.
func (h *TransactionHandler) SetBudget(c echo.Context) error {
	sess, err := sessionOr401(c)
	if sess == nil {
		return err
	}

	var req budgetRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body")
	}
	budget, err := decimal.NewFromString(req.Budget)
	if err != nil {
		return NewValidationError(c, "Invalid budget")
	}

	if !sess.TryAcquire() {
		return NewConflictError(c, model.ErrMutationInFlight.Error())
	}
	defer sess.Release()

	if result := h.tracker.SetBudget(c.Request().Context(), sess.State, budget); result.RolledBack() {
		return mutationError(c, result.Err)
	}
	return c.NoContent(http.StatusNoContent)
}

// mutationError distinguishes validation failures (nothing changed, fix the
// input) from persistence failures (optimistic change rolled back, retry).
func mutationError(c echo.Context, err error) error {
	switch err {
	case model.ErrInvalidAmount, model.ErrInvalidTransactionType, model.ErrDateRequired, model.ErrNegativeBudget:
		return NewValidationError(c, err.Error())
	}
	log.Error().Err(err).Msg("mutation rolled back after persistence failure")
	return c.JSON(http.StatusBadGateway, ErrorResponse{Error: "No se pudo sincronizar con la nube. Intenta de nuevo."})
}
