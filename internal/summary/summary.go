// Package summary derives the monthly dashboard figures from a
// period-filtered transaction slice. Everything here is recomputed on demand;
// nothing is cached between renders.
package summary

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/foresightmx/foresight/internal/model"
	"github.com/foresightmx/foresight/internal/period"
)

// GrowthClass classifies month-over-month income movement.
type GrowthClass string

const (
	// GrowthNoData means neither month recorded income.
	GrowthNoData GrowthClass = "no_data"
	// GrowthFirstIncome means the previous month had no income to compare
	// against, so no percentage is reported.
	GrowthFirstIncome GrowthClass = "first_income"
	GrowthDeclining   GrowthClass = "declining"
	GrowthFlat        GrowthClass = "flat"
	GrowthGrowing     GrowthClass = "growing"
	GrowthStrong      GrowthClass = "strong_growth"
)

// strongGrowthThreshold is the percentage above which growth is reported as
// strong rather than merely growing.
var strongGrowthThreshold = decimal.NewFromInt(10)

// Growth is the month-over-month income comparison. Percent is only
// meaningful for the declining/flat/growing/strong classes.
type Growth struct {
	Class   GrowthClass     `json:"class"`
	Percent decimal.Decimal `json:"percent"`
}

// Summary holds every derived figure for one viewed month.
type Summary struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`

	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`

	// Available is income minus expense for the viewed month. The budget is
	// a spending ceiling and is deliberately not an additive term.
	Available decimal.Decimal `json:"available"`
	Budget    decimal.Decimal `json:"budget"`

	// ProfitMargin is Available as a percentage of income, zero when the
	// month has no income.
	ProfitMargin decimal.Decimal `json:"profitMargin"`

	// DailyAverage is expense per elapsed day: day-of-month for the current
	// month, the full month length otherwise.
	DailyAverage decimal.Decimal `json:"dailyAverage"`

	// ProjectedSpend extrapolates DailyAverage to month end. For months that
	// are not the current one it equals TotalExpense.
	ProjectedSpend decimal.Decimal `json:"projectedSpend"`

	Growth Growth `json:"growth"`

	TransactionCount int `json:"transactionCount"`
}

// Totals sums a period slice into income and expense. Any transaction whose
// type is not income counts as expense.
func Totals(transactions []model.Transaction) (income, expense decimal.Decimal) {
	for _, t := range transactions {
		if t.IsIncome() {
			income = income.Add(t.Amount)
		} else {
			expense = expense.Add(t.Amount)
		}
	}
	return income, expense
}

// Compute derives the full summary for a viewed month. current and previous
// must already be period-filtered; now anchors the elapsed-days math so the
// projection only extrapolates for the month actually in progress.
func Compute(current, previous []model.Transaction, budget decimal.Decimal, year int, month time.Month, now time.Time) Summary {
	income, expense := Totals(current)
	prevIncome, _ := Totals(previous)

	available := income.Sub(expense)

	margin := decimal.Zero
	if income.IsPositive() {
		margin = available.Div(income).Mul(decimal.NewFromInt(100))
	}

	daysInMonth := period.DaysIn(year, month)
	nowUTC := now.UTC()
	viewingCurrent := nowUTC.Year() == year && nowUTC.Month() == month

	daysElapsed := daysInMonth
	if viewingCurrent {
		daysElapsed = nowUTC.Day()
	}

	dailyAvg := decimal.Zero
	if daysElapsed > 0 {
		dailyAvg = expense.Div(decimal.NewFromInt(int64(daysElapsed)))
	}

	projected := expense
	if viewingCurrent {
		projected = dailyAvg.Mul(decimal.NewFromInt(int64(daysInMonth)))
	}

	return Summary{
		Year:             year,
		Month:            month,
		TotalIncome:      income,
		TotalExpense:     expense,
		Available:        available,
		Budget:           budget,
		ProfitMargin:     margin,
		DailyAverage:     dailyAvg,
		ProjectedSpend:   projected,
		Growth:           CompareIncome(income, prevIncome),
		TransactionCount: len(current),
	}
}

// CompareIncome classifies current income against the previous month's.
func CompareIncome(current, previous decimal.Decimal) Growth {
	switch {
	case current.IsZero() && previous.IsZero():
		return Growth{Class: GrowthNoData}
	case previous.IsZero():
		// Dividing by the previous month would blow up; report the event
		// instead of a percentage.
		return Growth{Class: GrowthFirstIncome}
	}

	pct := current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100))
	switch {
	case pct.GreaterThan(strongGrowthThreshold):
		return Growth{Class: GrowthStrong, Percent: pct}
	case pct.IsPositive():
		return Growth{Class: GrowthGrowing, Percent: pct}
	case pct.IsZero():
		return Growth{Class: GrowthFlat, Percent: pct}
	default:
		return Growth{Class: GrowthDeclining, Percent: pct}
	}
}
