// Package charts renders the dashboard graphics for a viewed month as PNGs.
package charts

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/foresightmx/foresight/internal/category"
	"github.com/foresightmx/foresight/internal/model"
	"github.com/foresightmx/foresight/internal/period"
)

// Generator renders charts from period slices. It is stateless.
type Generator struct {
	registry category.Registry
}

// NewGenerator creates a chart generator using the given category registry
// for labels.
func NewGenerator(registry category.Registry) *Generator {
	return &Generator{registry: registry}
}

// CategoryBreakdown renders a donut of the month's expenses grouped by
// category. Returns nil bytes when the month has no expenses to draw.
func (g *Generator) CategoryBreakdown(transactions []model.Transaction) ([]byte, error) {
	totals := make(map[string]float64)
	for _, t := range transactions {
		if t.IsIncome() {
			continue
		}
		label := g.registry.Resolve(t.Category).Label
		totals[label] += t.Amount.InexactFloat64()
	}
	if len(totals) == 0 {
		return nil, nil
	}

	labels := make([]string, 0, len(totals))
	for label := range totals {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	values := make([]chart.Value, 0, len(labels))
	for _, label := range labels {
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s (%.0f)", label, totals[label]),
			Value: totals[label],
		})
	}

	donut := chart.DonutChart{
		Width:  600,
		Height: 600,
		Values: values,
	}

	var buf bytes.Buffer
	if err := donut.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render category chart: %w", err)
	}
	return buf.Bytes(), nil
}

// RunningBalance renders the cumulative income-minus-expense line across the
// viewed month, one point per day. Returns nil bytes for an empty month.
func (g *Generator) RunningBalance(transactions []model.Transaction, year int, month time.Month) ([]byte, error) {
	if len(transactions) == 0 {
		return nil, nil
	}

	days := period.DaysIn(year, month)
	perDay := make([]float64, days+1)
	for _, t := range transactions {
		day := t.Date.UTC().Day()
		amount := t.Amount.InexactFloat64()
		if !t.IsIncome() {
			amount = -amount
		}
		perDay[day] += amount
	}

	xValues := make([]time.Time, days)
	yValues := make([]float64, days)
	running := 0.0
	for day := 1; day <= days; day++ {
		running += perDay[day]
		xValues[day-1] = time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		yValues[day-1] = running
	}

	graph := chart.Chart{
		Width:  1000,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 30, Left: 30, Right: 30, Bottom: 30},
		},
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("02/01"),
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%.0f", v.(float64))
			},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Saldo",
				XValues: xValues,
				YValues: yValues,
				Style: chart.Style{
					StrokeColor: chart.ColorBlue,
					FillColor:   chart.ColorBlue.WithAlpha(40),
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render balance chart: %w", err)
	}
	return buf.Bytes(), nil
}
