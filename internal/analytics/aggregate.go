// Package analytics computes dashboard aggregations over in-memory
// transaction slices. Every function is pure and performs a full linear
// scan; at single-user data volumes that is the whole point, and no
// indexing is attempted.
package analytics

import (
	"sort"
	"strings"

	"github.com/charmin006/fintrack/internal/core"
)

// PeriodTotals holds the income and expense sums for one period.
type PeriodTotals struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// Net returns income minus expense for the period.
func (p PeriodTotals) Net() float64 {
	return p.Income - p.Expense
}

// DailyTotals sums transactions whose date exactly matches the given
// day, split by type.
func DailyTotals(txs []core.Transaction, day core.Date) PeriodTotals {
	return totalsMatching(txs, day.String(), false)
}

// MonthlyTotals sums transactions whose date falls in the month
// identified by its YYYY-MM key, split by type.
func MonthlyTotals(txs []core.Transaction, monthKey string) PeriodTotals {
	return totalsMatching(txs, monthKey, true)
}

func totalsMatching(txs []core.Transaction, period string, prefix bool) PeriodTotals {
	var totals PeriodTotals
	for _, tx := range txs {
		date := tx.Date.String()
		if prefix {
			if !strings.HasPrefix(date, period) {
				continue
			}
		} else if date != period {
			continue
		}
		switch tx.Type {
		case core.Income:
			totals.Income += tx.Amount
		case core.Expense:
			totals.Expense += tx.Amount
		}
	}
	return totals
}

// CategoryBreakdown groups the period's expenses by category and
// computes each group's share of the period expense total. Percentages
// are 0 when the total is 0. Ordering is total: amount descending, then
// category name ascending.
func CategoryBreakdown(txs []core.Transaction, monthKey string) []core.CategoryAmount {
	sums := make(map[string]float64)
	var total float64
	for _, tx := range txs {
		if tx.Type != core.Expense {
			continue
		}
		if !strings.HasPrefix(tx.Date.String(), monthKey) {
			continue
		}
		sums[tx.Category] += tx.Amount
		total += tx.Amount
	}

	breakdown := make([]core.CategoryAmount, 0, len(sums))
	for category, amount := range sums {
		percent := 0.0
		if total > 0 {
			percent = amount / total * 100
		}
		breakdown = append(breakdown, core.CategoryAmount{
			Category: category,
			Amount:   amount,
			Percent:  percent,
		})
	}

	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].Amount != breakdown[j].Amount {
			return breakdown[i].Amount > breakdown[j].Amount
		}
		return breakdown[i].Category < breakdown[j].Category
	})

	return breakdown
}

// TopCategory returns the category with the highest expense total for
// the month, or "" when the month has no expenses. Ties break by
// category name ascending, same as CategoryBreakdown.
func TopCategory(txs []core.Transaction, monthKey string) string {
	breakdown := CategoryBreakdown(txs, monthKey)
	if len(breakdown) == 0 {
		return ""
	}
	return breakdown[0].Category
}

// palette is the fixed 10-color set categories are mapped onto. Two
// categories can collide on color; callers accept that.
var palette = [10]string{
	"#FF6B6B", "#4ECDC4", "#FFD93D", "#6C5CE7", "#FF8FB1",
	"#45B7D1", "#96CEB4", "#F0A500", "#A29BFE", "#2ECC71",
}

// CategoryColor derives a deterministic display color for a category
// name with a polynomial string hash over the palette.
func CategoryColor(name string) string {
	var hash uint32
	for _, r := range name {
		hash = hash*31 + uint32(r)
	}
	return palette[hash%uint32(len(palette))]
}
