// Package budget implements the budget suggestion heuristic and the
// daily spending forecast. Both are pure arithmetic over transaction
// slices; fixed multipliers, no learned model.
package budget

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/charmin006/fintrack/internal/core"
)

const (
	volatilityThreshold  = 0.5
	volatilityMultiplier = 1.2
	trendUpThreshold     = 0.1
	trendUpMultiplier    = 1.1
	trendDownThreshold   = -0.1
	trendDownMultiplier  = 0.9
	recentWindowMonths   = 3
)

// CategoryStats are the intermediate figures the suggestion is built
// from, surfaced for reasoning strings and tests.
type CategoryStats struct {
	Mean       float64
	Median     float64
	RecentAvg  float64
	Volatility float64
	Trend      float64
	Count      int
}

// Suggest proposes a monthly budget for one category from its expense
// history. The second return is false when the category has no expenses
// to learn from.
func Suggest(category string, txs []core.Transaction, now time.Time) (core.BudgetSuggestion, bool) {
	amounts, recent := categoryAmounts(category, txs, now)
	if len(amounts) == 0 {
		return core.BudgetSuggestion{}, false
	}

	stats := computeStats(amounts, recent)

	base := stats.RecentAvg
	if base == 0 {
		base = stats.Mean
	}

	suggested := base
	var reasons []string
	reasons = append(reasons, fmt.Sprintf("based on your average %s spend of %s",
		category, core.FormatAmount(base)))

	if stats.Volatility > volatilityThreshold {
		suggested *= volatilityMultiplier
		reasons = append(reasons, "with a buffer for your irregular spending pattern")
	}
	switch {
	case stats.Trend > trendUpThreshold:
		suggested *= trendUpMultiplier
		reasons = append(reasons, "adjusted up for your rising spend")
	case stats.Trend < trendDownThreshold:
		suggested *= trendDownMultiplier
		reasons = append(reasons, "adjusted down for your falling spend")
	}

	if multiplier, season := seasonalMultiplier(category, now.Month()); multiplier != 1.0 {
		suggested *= multiplier
		reasons = append(reasons, season)
	}

	return core.BudgetSuggestion{
		Category:        category,
		SuggestedAmount: core.RoundAmount(suggested),
		Reasoning:       strings.Join(reasons, ", "),
	}, true
}

// SuggestAll proposes budgets for every category that appears in the
// expense history and has no existing user budget.
func SuggestAll(txs []core.Transaction, budgets []core.UserBudget, now time.Time) []core.BudgetSuggestion {
	budgeted := make(map[string]bool, len(budgets))
	for _, b := range budgets {
		budgeted[strings.ToLower(b.Category)] = true
	}

	seen := make(map[string]bool)
	var categories []string
	for _, tx := range txs {
		if tx.Type != core.Expense {
			continue
		}
		if budgeted[strings.ToLower(tx.Category)] || seen[tx.Category] {
			continue
		}
		seen[tx.Category] = true
		categories = append(categories, tx.Category)
	}
	sort.Strings(categories)

	var suggestions []core.BudgetSuggestion
	for _, category := range categories {
		if s, ok := Suggest(category, txs, now); ok {
			suggestions = append(suggestions, s)
		}
	}
	return suggestions
}

// categoryAmounts collects the category's expense amounts in date
// order, plus the subset from the trailing three months.
func categoryAmounts(category string, txs []core.Transaction, now time.Time) (all, recent []float64) {
	var matched []core.Transaction
	for _, tx := range txs {
		if tx.Type == core.Expense && strings.EqualFold(tx.Category, category) {
			matched = append(matched, tx)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].Date.Before(matched[j].Date.Time)
	})

	cutoff := now.AddDate(0, -recentWindowMonths, 0)
	for _, tx := range matched {
		all = append(all, tx.Amount)
		if !tx.Date.Before(cutoff) {
			recent = append(recent, tx.Amount)
		}
	}
	return all, recent
}

func computeStats(amounts, recent []float64) CategoryStats {
	stats := CategoryStats{Count: len(amounts)}
	stats.Mean = mean(amounts)
	stats.Median = median(amounts)
	stats.RecentAvg = mean(recent)

	if stats.Mean > 0 {
		stats.Volatility = stddev(amounts, stats.Mean) / stats.Mean
	}

	// First-half vs second-half trend ratio over the date-ordered
	// amounts: positive means spending is growing.
	half := len(amounts) / 2
	if half > 0 {
		firstAvg := mean(amounts[:half])
		secondAvg := mean(amounts[half:])
		if firstAvg > 0 {
			stats.Trend = (secondAvg - firstAvg) / firstAvg
		}
	}

	return stats
}

// seasonalMultiplier returns the fixed seasonal adjustment for a
// category in a given month, with a short reason when one applies.
func seasonalMultiplier(category string, month time.Month) (float64, string) {
	c := strings.ToLower(category)
	contains := func(subs ...string) bool {
		for _, s := range subs {
			if strings.Contains(c, s) {
				return true
			}
		}
		return false
	}

	switch {
	case contains("shopping", "gift") && (month == time.November || month == time.December):
		return 1.3, "raised for the festive season"
	case contains("travel", "entertainment") && month >= time.June && month <= time.September:
		return 1.2, "raised for the holiday months"
	case contains("education", "shopping") && (month == time.August || month == time.September):
		return 1.15, "raised for the back-to-school season"
	default:
		return 1.0, ""
	}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

func stddev(values []float64, m float64) float64 {
	if len(values) < 2 {
		return 0
	}
	var sum float64
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)))
}
