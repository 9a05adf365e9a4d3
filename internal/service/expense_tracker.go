// Package service orchestrates the core flows: sign-in and profile
// resolution, transaction and budget mutations through the optimistic save
// protocol, and the derived views and reports built from the working state.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/foresightmx/foresight/internal/category"
	"github.com/foresightmx/foresight/internal/charts"
	"github.com/foresightmx/foresight/internal/ledger"
	"github.com/foresightmx/foresight/internal/mail"
	"github.com/foresightmx/foresight/internal/model"
	"github.com/foresightmx/foresight/internal/period"
	"github.com/foresightmx/foresight/internal/report"
	"github.com/foresightmx/foresight/internal/repository"
	"github.com/foresightmx/foresight/internal/state"
	"github.com/foresightmx/foresight/internal/summary"
)

// ExpenseTracker wires the collaborators together. It keeps no per-user
// state of its own; the caller passes the working state explicitly.
type ExpenseTracker struct {
	store    repository.ProfileStore
	auth     repository.Authenticator
	registry category.Registry
	charts   *charts.Generator
	mailer   mail.Sender // nil when email is not configured

	now func() time.Time
}

// NewExpenseTracker creates the service. mailer may be nil.
func NewExpenseTracker(store repository.ProfileStore, auth repository.Authenticator, registry category.Registry, mailer mail.Sender) *ExpenseTracker {
	return &ExpenseTracker{
		store:    store,
		auth:     auth,
		registry: registry,
		charts:   charts.NewGenerator(registry),
		mailer:   mailer,
		now:      time.Now,
	}
}

// SignIn authenticates and resolves the user's profile in one step.
func (s *ExpenseTracker) SignIn(ctx context.Context, email, password string) (*repository.Identity, *model.UserProfile, error) {
	identity, err := s.auth.SignIn(ctx, email, password)
	if err != nil {
		return nil, nil, err
	}
	profile, err := s.ResolveProfile(ctx, identity)
	if err != nil {
		return nil, nil, err
	}
	return identity, profile, nil
}

// ResolveProfile fetches the stored profile for an identity, creating the
// default record when none exists yet. One self-heal attempt is made; if the
// profile still cannot be read afterwards, the sign-in fails with
// model.ErrProfileUnavailable.
func (s *ExpenseTracker) ResolveProfile(ctx context.Context, identity *repository.Identity) (*model.UserProfile, error) {
	profile, err := s.store.FetchProfile(ctx, identity.Email)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, model.ErrProfileNotFound) {
		return nil, err
	}

	log.Info().Str("email", identity.Email).Msg("profile missing, creating initial record")
	initial := model.NewProfile(identity.Email, identity.FirstName, identity.LastName)
	if err := s.store.InsertProfile(ctx, initial); err != nil {
		return nil, fmt.Errorf("%w: %s", model.ErrProfileUnavailable, err)
	}

	profile, err = s.store.FetchProfile(ctx, identity.Email)
	if err != nil {
		return nil, model.ErrProfileUnavailable
	}
	return profile, nil
}

// SignUp registers a new account. When the project confirms accounts
// immediately, the profile is resolved right away; otherwise the caller is
// told to wait for email verification.
func (s *ExpenseTracker) SignUp(ctx context.Context, email, password, firstName, lastName string) (*repository.Identity, *model.UserProfile, bool, error) {
	identity, confirmed, err := s.auth.SignUp(ctx, email, password, firstName, lastName)
	if err != nil {
		return nil, nil, false, err
	}
	if !confirmed {
		return identity, nil, false, nil
	}
	profile, err := s.ResolveProfile(ctx, identity)
	if err != nil {
		return nil, nil, false, err
	}
	return identity, profile, true, nil
}

// ResendVerification asks the auth collaborator for a fresh confirmation
// email.
func (s *ExpenseTracker) ResendVerification(ctx context.Context, email string) error {
	return s.auth.ResendVerification(ctx, email)
}

// SignOut revokes the session with the auth collaborator.
func (s *ExpenseTracker) SignOut(ctx context.Context, accessToken string) error {
	return s.auth.SignOut(ctx, accessToken)
}

// persist returns the save call for one state: budget and transactions
// written together as a single record.
func (s *ExpenseTracker) persist(st *state.AppState) ledger.PersistFunc {
	return func(ctx context.Context) error {
		return s.store.SaveProfile(ctx, st.Email, st.Budget, st.Transactions)
	}
}

// TransactionInput is what the UI submits when adding or editing a movement.
// ID is zero for a new transaction and the original id for an edit.
type TransactionInput struct {
	ID           int64
	Amount       decimal.Decimal
	Type         model.TransactionType
	Category     string
	Concept      string
	Method       string
	BusinessType model.BusinessType
	Year         int
	Month        time.Month
	Day          int
}

// SaveTransaction validates the input, builds the candidate and runs it
// through the optimistic save protocol. The returned transaction is the
// committed candidate; on rollback the state is untouched and the result
// carries the persistence error.
func (s *ExpenseTracker) SaveTransaction(ctx context.Context, st *state.AppState, input TransactionInput) (model.Transaction, ledger.Result) {
	candidate := model.Transaction{
		ID:           input.ID,
		Amount:       input.Amount,
		Type:         input.Type,
		Category:     input.Category,
		Concept:      input.Concept,
		Method:       input.Method,
		BusinessType: input.BusinessType,
		Date:         model.MiddayUTC(input.Year, input.Month, input.Day),
	}
	if input.Year == 0 {
		// An edit without a date keeps the entry's original date; only a
		// brand-new transaction defaults to today.
		if existing, ok := st.Find(input.ID); ok {
			candidate.Date = existing.Date
		} else {
			now := s.now().UTC()
			candidate.Date = model.MiddayUTC(now.Year(), now.Month(), now.Day())
		}
	}
	if err := candidate.Validate(); err != nil {
		return model.Transaction{}, ledger.Result{Err: err}
	}
	if candidate.ID == 0 {
		candidate.ID = ledger.NextID(st.Transactions, s.now())
	}

	result := ledger.Perform(ctx, st, func(st *state.AppState) {
		st.Transactions = ledger.AddOrUpdate(st.Transactions, candidate)
	}, s.persist(st))
	if result.RolledBack() {
		log.Error().Err(result.Err).Int64("id", candidate.ID).Msg("transaction save rolled back")
		return model.Transaction{}, result
	}
	return candidate, result
}

// DeleteTransaction removes a movement through the optimistic save protocol.
func (s *ExpenseTracker) DeleteTransaction(ctx context.Context, st *state.AppState, id int64) ledger.Result {
	result := ledger.Perform(ctx, st, func(st *state.AppState) {
		st.Transactions = ledger.Remove(st.Transactions, id)
	}, s.persist(st))
	if result.RolledBack() {
		log.Error().Err(result.Err).Int64("id", id).Msg("transaction delete rolled back")
	}
	return result
}

// SetBudget updates the monthly budget through the optimistic save protocol.
func (s *ExpenseTracker) SetBudget(ctx context.Context, st *state.AppState, budget decimal.Decimal) ledger.Result {
	if budget.IsNegative() {
		return ledger.Result{Err: model.ErrNegativeBudget}
	}
	result := ledger.Perform(ctx, st, func(st *state.AppState) {
		st.Budget = budget
	}, s.persist(st))
	if result.RolledBack() {
		log.Error().Err(result.Err).Msg("budget change rolled back")
	}
	return result
}

// MonthlySummary recomputes the derived figures for the viewed month.
func (s *ExpenseTracker) MonthlySummary(st *state.AppState) summary.Summary {
	current := period.MonthSlice(st.Transactions, st.ViewYear, st.ViewMonth)
	previous := period.PreviousMonthSlice(st.Transactions, st.ViewYear, st.ViewMonth)
	return summary.Compute(current, previous, st.Budget, st.ViewYear, st.ViewMonth, s.now())
}

// MonthlyPDF renders the viewed month as a PDF report.
func (s *ExpenseTracker) MonthlyPDF(st *state.AppState) ([]byte, error) {
	monthly := period.MonthSlice(st.Transactions, st.ViewYear, st.ViewMonth)
	return report.PDF(monthly, s.MonthlySummary(st), s.registry)
}

// MonthlyXLSX renders the viewed month as a spreadsheet.
func (s *ExpenseTracker) MonthlyXLSX(st *state.AppState) ([]byte, error) {
	monthly := period.MonthSlice(st.Transactions, st.ViewYear, st.ViewMonth)
	return report.XLSX(monthly, s.MonthlySummary(st), s.registry)
}

// MonthlyChart renders the expense-by-category donut for the viewed month.
func (s *ExpenseTracker) MonthlyChart(st *state.AppState) ([]byte, error) {
	monthly := period.MonthSlice(st.Transactions, st.ViewYear, st.ViewMonth)
	return s.charts.CategoryBreakdown(monthly)
}

// BalanceChart renders the cumulative balance line for the viewed month.
func (s *ExpenseTracker) BalanceChart(st *state.AppState) ([]byte, error) {
	monthly := period.MonthSlice(st.Transactions, st.ViewYear, st.ViewMonth)
	return s.charts.RunningBalance(monthly, st.ViewYear, st.ViewMonth)
}

// EmailSummary sends the viewed month's summary to the signed-in user.
func (s *ExpenseTracker) EmailSummary(ctx context.Context, st *state.AppState) error {
	if s.mailer == nil {
		return fmt.Errorf("summary email is not configured")
	}
	return s.mailer.SendMonthlySummary(ctx, st.Email, s.MonthlySummary(st))
}

// Categories exposes the registry for the UI layer.
func (s *ExpenseTracker) Categories() category.Registry {
	return s.registry
}
