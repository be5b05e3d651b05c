package analytics

import (
	"fmt"
	"sort"

	"github.com/charmin006/fintrack/internal/core"
)

const (
	// A day is flagged when its expense total strictly exceeds this
	// multiple of the mean daily expense.
	highSpendMultiplier = 1.5
	// At most this many high-spending days are reported.
	highSpendLimit = 3
	// Average monthly spend above this triggers the reduction nudge.
	monthlySpendThreshold = 1000.0
	// Flat reduction suggested when the threshold is exceeded.
	reductionRate = 0.10
)

const (
	InsightHighSpendingDay InsightKind = "high_spending_day"
	InsightTopCategory     InsightKind = "top_category"
	InsightCashFlow        InsightKind = "cash_flow"
	InsightReductionTarget InsightKind = "reduction_target"
)

type (
	InsightKind string

	Insight struct {
		Kind    InsightKind `json:"kind"`
		Message string      `json:"message"`
	}

	// HighSpendingDay is a flagged day with its expense total.
	HighSpendingDay struct {
		Date   string  `json:"date"`
		Amount float64 `json:"amount"`
	}
)

// DailyExpenseTotals sums expenses per calendar day across the whole
// transaction set.
func DailyExpenseTotals(txs []core.Transaction) map[string]float64 {
	totals := make(map[string]float64)
	for _, tx := range txs {
		if tx.Type != core.Expense {
			continue
		}
		totals[tx.Date.String()] += tx.Amount
	}
	return totals
}

// MeanDailyExpense is the average expense total over days that have at
// least one expense. Days with no spending do not dilute the mean.
func MeanDailyExpense(txs []core.Transaction) float64 {
	totals := DailyExpenseTotals(txs)
	if len(totals) == 0 {
		return 0
	}
	var sum float64
	for _, amount := range totals {
		sum += amount
	}
	return sum / float64(len(totals))
}

// HighSpendingDays flags days whose expense total strictly exceeds
// 1.5x the mean daily expense, ordered by amount descending (date
// ascending on ties), capped to the top 3. Exactly 1.5x does not flag.
func HighSpendingDays(txs []core.Transaction) []HighSpendingDay {
	totals := DailyExpenseTotals(txs)
	mean := MeanDailyExpense(txs)
	if mean == 0 {
		return nil
	}

	var days []HighSpendingDay
	for date, amount := range totals {
		if amount > mean*highSpendMultiplier {
			days = append(days, HighSpendingDay{Date: date, Amount: amount})
		}
	}

	sort.Slice(days, func(i, j int) bool {
		if days[i].Amount != days[j].Amount {
			return days[i].Amount > days[j].Amount
		}
		return days[i].Date < days[j].Date
	})

	if len(days) > highSpendLimit {
		days = days[:highSpendLimit]
	}
	return days
}

// BuildInsights assembles the dashboard insight list: flagged
// high-spending days, the top expense category, a saving/overspending
// message, and a flat reduction target when average monthly spend is
// above the threshold. All thresholds are fixed.
func BuildInsights(txs []core.Transaction) []Insight {
	var insights []Insight

	for _, day := range HighSpendingDays(txs) {
		insights = append(insights, Insight{
			Kind: InsightHighSpendingDay,
			Message: fmt.Sprintf("High spending on %s: you spent %s, well above your daily average",
				day.Date, core.FormatAmount(day.Amount)),
		})
	}

	if top := topCategoryOverall(txs); top != "" {
		insights = append(insights, Insight{
			Kind:    InsightTopCategory,
			Message: fmt.Sprintf("Most of your spending goes to %s", top),
		})
	}

	var income, expense float64
	for _, tx := range txs {
		switch tx.Type {
		case core.Income:
			income += tx.Amount
		case core.Expense:
			expense += tx.Amount
		}
	}
	switch {
	case income == 0 && expense == 0:
		// Nothing recorded yet; no cash flow message.
	case income >= expense:
		insights = append(insights, Insight{
			Kind:    InsightCashFlow,
			Message: fmt.Sprintf("You are saving %s overall, keep it up", core.FormatAmount(income-expense)),
		})
	default:
		insights = append(insights, Insight{
			Kind:    InsightCashFlow,
			Message: fmt.Sprintf("You are overspending by %s overall", core.FormatAmount(expense-income)),
		})
	}

	if avg := averageMonthlyExpense(txs); avg > monthlySpendThreshold {
		target := core.RoundAmount(avg * (1 - reductionRate))
		insights = append(insights, Insight{
			Kind: InsightReductionTarget,
			Message: fmt.Sprintf("Your average monthly spend is %s; try reducing it by 10%% to %s",
				core.FormatAmount(avg), core.FormatAmount(target)),
		})
	}

	return insights
}

// topCategoryOverall is TopCategory without a month restriction:
// highest expense total across the whole set, ties by name ascending.
func topCategoryOverall(txs []core.Transaction) string {
	sums := make(map[string]float64)
	for _, tx := range txs {
		if tx.Type == core.Expense {
			sums[tx.Category] += tx.Amount
		}
	}
	top := ""
	var best float64
	for category, amount := range sums {
		if amount > best || (amount == best && top != "" && category < top) {
			top = category
			best = amount
		}
	}
	return top
}

func averageMonthlyExpense(txs []core.Transaction) float64 {
	months := make(map[string]float64)
	for _, tx := range txs {
		if tx.Type == core.Expense {
			months[tx.Date.MonthKey()] += tx.Amount
		}
	}
	if len(months) == 0 {
		return 0
	}
	var sum float64
	for _, amount := range months {
		sum += amount
	}
	return sum / float64(len(months))
}
