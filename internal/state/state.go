// Package state holds the in-memory working copy of a signed-in user's data.
// The container is passed explicitly to everything that reads or writes it;
// there is no package-level singleton. Remote storage stays the owner of
// truth, this copy reconciles back to it when a save fails.
package state

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/foresightmx/foresight/internal/model"
	"github.com/foresightmx/foresight/internal/period"
)

// Filter narrows the transaction list presented for the viewed month.
type Filter string

const (
	FilterAll     Filter = "all"
	FilterIncome  Filter = "income"
	FilterExpense Filter = "expense"
)

// AppState is one user's working state: budget, transaction collection, the
// month being viewed and the active list filter. Only the ledger package may
// replace the budget and transaction fields; readers treat them as values.
//
// Access is cooperative: exactly one mutation may be in flight at a time,
// which the session layer enforces before calling into here. AppState itself
// carries no lock.
type AppState struct {
	Email        string
	Budget       decimal.Decimal
	Transactions []model.Transaction

	ViewYear  int
	ViewMonth time.Month
	Filter    Filter
}

// FromProfile builds the initial state after sign-in, viewing the month that
// contains now.
func FromProfile(p *model.UserProfile, now time.Time) *AppState {
	txs := p.Transactions
	if txs == nil {
		txs = []model.Transaction{}
	}
	return &AppState{
		Email:        p.Email,
		Budget:       p.Budget,
		Transactions: txs,
		ViewYear:     now.UTC().Year(),
		ViewMonth:    now.UTC().Month(),
		Filter:       FilterAll,
	}
}

// ChangeMonth moves the viewed-month cursor by step months in either
// direction, rolling the year as needed.
func (s *AppState) ChangeMonth(step int) {
	d := time.Date(s.ViewYear, s.ViewMonth, 1, 0, 0, 0, 0, time.UTC).AddDate(0, step, 0)
	s.ViewYear, s.ViewMonth = d.Year(), d.Month()
}

// SetView jumps the cursor straight to a month.
func (s *AppState) SetView(year int, month time.Month) {
	s.ViewYear, s.ViewMonth = year, month
}

// SetFilter applies a list filter. Selecting the already-active filter
// toggles back to showing everything.
func (s *AppState) SetFilter(f Filter) {
	if f == FilterAll || f == s.Filter {
		s.Filter = FilterAll
		return
	}
	s.Filter = f
}

// MonthTransactions returns the viewed month's slice with the active filter
// applied, preserving insertion order.
func (s *AppState) MonthTransactions() []model.Transaction {
	monthly := period.MonthSlice(s.Transactions, s.ViewYear, s.ViewMonth)
	if s.Filter == FilterAll || s.Filter == "" {
		return monthly
	}
	out := make([]model.Transaction, 0, len(monthly))
	for _, t := range monthly {
		if (s.Filter == FilterIncome) == t.IsIncome() {
			out = append(out, t)
		}
	}
	return out
}

// Find returns the transaction with the given id, if present.
func (s *AppState) Find(id int64) (model.Transaction, bool) {
	for _, t := range s.Transactions {
		if t.ID == id {
			return t, true
		}
	}
	return model.Transaction{}, false
}
