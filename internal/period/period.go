// Package period selects the subset of a transaction collection that falls
// inside one calendar month. All functions are pure and preserve the input
// order of the collection.
package period

import (
	"time"

	"github.com/foresightmx/foresight/internal/model"
)

// MonthSlice returns every transaction whose date falls in the given calendar
// month and year. Dates are compared in UTC, matching how transaction dates
// are stored.
func MonthSlice(transactions []model.Transaction, year int, month time.Month) []model.Transaction {
	out := make([]model.Transaction, 0, len(transactions))
	for _, t := range transactions {
		d := t.Date.UTC()
		if d.Year() == year && d.Month() == month {
			out = append(out, t)
		}
	}
	return out
}

// PreviousMonthSlice is MonthSlice applied to the month immediately before
// the viewed one, rolling over the year boundary.
func PreviousMonthSlice(transactions []model.Transaction, viewedYear int, viewedMonth time.Month) []model.Transaction {
	y, m := Previous(viewedYear, viewedMonth)
	return MonthSlice(transactions, y, m)
}

// Previous returns the calendar month before the given one.
func Previous(year int, month time.Month) (int, time.Month) {
	if month == time.January {
		return year - 1, time.December
	}
	return year, month - 1
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
