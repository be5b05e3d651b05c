package analytics

import (
	"github.com/charmin006/fintrack/internal/core"
)

type (
	// TrendPoint is one day on the spending trend line.
	TrendPoint struct {
		Date    string  `json:"date"`
		Income  float64 `json:"income"`
		Expense float64 `json:"expense"`
	}

	// PieSlice is one category wedge in the breakdown chart.
	PieSlice struct {
		Label   string  `json:"label"`
		Value   float64 `json:"value"`
		Percent float64 `json:"percent"`
		Color   string  `json:"color"`
	}

	// BarRow is one month in the income-vs-expense bar chart.
	BarRow struct {
		Month   string  `json:"month"`
		Income  float64 `json:"income"`
		Expense float64 `json:"expense"`
	}
)

// SpendingTrend builds one point per day for the `days` days ending at
// `end` inclusive. Days with no transactions produce zero points so the
// line is continuous.
func SpendingTrend(txs []core.Transaction, end core.Date, days int) []TrendPoint {
	if days <= 0 {
		return nil
	}
	points := make([]TrendPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := core.DateOf(end.AddDate(0, 0, -i))
		totals := DailyTotals(txs, day)
		points = append(points, TrendPoint{
			Date:    day.String(),
			Income:  totals.Income,
			Expense: totals.Expense,
		})
	}
	return points
}

// CategoryPie reshapes a month's category breakdown into chart slices,
// attaching the deterministic category color.
func CategoryPie(txs []core.Transaction, monthKey string) []PieSlice {
	breakdown := CategoryBreakdown(txs, monthKey)
	slices := make([]PieSlice, len(breakdown))
	for i, entry := range breakdown {
		slices[i] = PieSlice{
			Label:   entry.Category,
			Value:   entry.Amount,
			Percent: entry.Percent,
			Color:   CategoryColor(entry.Category),
		}
	}
	return slices
}

// MonthlyBars builds one row per month for the `months` months ending
// at the month of `end` inclusive, oldest first.
func MonthlyBars(txs []core.Transaction, end core.Date, months int) []BarRow {
	if months <= 0 {
		return nil
	}
	rows := make([]BarRow, 0, months)
	// Anchor on the first of the month so stepping back never skips a
	// month on 29-31 day boundaries.
	first := core.NewDate(end.Year(), int(end.Month()), 1)
	for i := months - 1; i >= 0; i-- {
		month := core.DateOf(first.AddDate(0, -i, 0)).MonthKey()
		totals := MonthlyTotals(txs, month)
		rows = append(rows, BarRow{
			Month:   month,
			Income:  totals.Income,
			Expense: totals.Expense,
		})
	}
	return rows
}
