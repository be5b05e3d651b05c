package budget

import (
	"math"
	"time"

	"github.com/charmin006/fintrack/internal/analytics"
	"github.com/charmin006/fintrack/internal/core"
)

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

const (
	lowRiskRatio    = 0.8
	mediumRiskRatio = 1.2
)

type (
	RiskLevel string

	// Forecast is the daily spending outlook for the current month.
	Forecast struct {
		MonthBudget   float64   `json:"monthBudget"`
		SpentSoFar    float64   `json:"spentSoFar"`
		DaysRemaining int       `json:"daysRemaining"`
		SafeToSpend   float64   `json:"safeToSpend"`
		Risk          RiskLevel `json:"risk"`
	}
)

// DailyForecast computes how much can safely be spent per remaining day
// of the current month. SafeToSpend is never negative, even when spend
// to date already exceeds the budget. A non-positive or malformed
// budget yields a zeroed forecast rather than an error.
func DailyForecast(txs []core.Transaction, monthlyBudget float64, now time.Time) Forecast {
	if monthlyBudget <= 0 || math.IsNaN(monthlyBudget) || math.IsInf(monthlyBudget, 0) {
		return Forecast{Risk: RiskLow}
	}

	today := core.DateOf(now)
	spent := analytics.MonthlyTotals(txs, today.MonthKey()).Expense

	daysInMonth := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
	daysRemaining := daysInMonth - now.Day() + 1 // inclusive of today

	remaining := monthlyBudget - spent
	if remaining < 0 {
		remaining = 0
	}

	// Risk compares actual spend to the linearly prorated expectation
	// for this point in the month.
	expected := monthlyBudget * float64(now.Day()) / float64(daysInMonth)
	ratio := 0.0
	if expected > 0 {
		ratio = spent / expected
	}
	risk := RiskHigh
	switch {
	case ratio < lowRiskRatio:
		risk = RiskLow
	case ratio < mediumRiskRatio:
		risk = RiskMedium
	}

	return Forecast{
		MonthBudget:   monthlyBudget,
		SpentSoFar:    spent,
		DaysRemaining: daysRemaining,
		SafeToSpend:   core.RoundAmount(remaining / float64(daysRemaining)),
		Risk:          risk,
	}
}
