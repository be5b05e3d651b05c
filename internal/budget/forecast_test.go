package budget

import (
	"testing"
	"time"

	"github.com/charmin006/fintrack/internal/core"
)

func TestDailyForecast(t *testing.T) {
	// May 10th, 31-day month, 22 days remaining inclusive of today.
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	txs := []core.Transaction{
		expense("2024-05-01", 100, "Food"),
		expense("2024-05-05", 100, "Food"),
		expense("2024-04-20", 500, "Food"), // previous month, ignored
	}

	f := DailyForecast(txs, 620, now)
	if f.SpentSoFar != 200 {
		t.Errorf("SpentSoFar = %v, want 200", f.SpentSoFar)
	}
	if f.DaysRemaining != 22 {
		t.Errorf("DaysRemaining = %v, want 22", f.DaysRemaining)
	}
	if f.SafeToSpend != core.RoundAmount(420.0/22.0) {
		t.Errorf("SafeToSpend = %v", f.SafeToSpend)
	}
	// Expected spend to date = 620 * 10/31 = 200; ratio 1.0 -> medium.
	if f.Risk != RiskMedium {
		t.Errorf("Risk = %s, want medium", f.Risk)
	}
}

func TestDailyForecastSafeToSpendNeverNegative(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	txs := []core.Transaction{
		expense("2024-05-01", 900, "Food"),
	}

	f := DailyForecast(txs, 500, now)
	if f.SafeToSpend < 0 {
		t.Fatalf("SafeToSpend = %v, must not be negative", f.SafeToSpend)
	}
	if f.SafeToSpend != 0 {
		t.Errorf("SafeToSpend = %v, want 0 when overspent", f.SafeToSpend)
	}
	if f.Risk != RiskHigh {
		t.Errorf("Risk = %s, want high", f.Risk)
	}
}

func TestDailyForecastRiskLevels(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	// Expected to date = 1000 * 10/31 = 322.58.

	tests := []struct {
		name  string
		spent float64
		want  RiskLevel
	}{
		{"well under pace", 100, RiskLow},
		{"roughly on pace", 350, RiskMedium},
		{"over pace", 500, RiskHigh},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txs := []core.Transaction{expense("2024-05-01", tt.spent, "Food")}
			f := DailyForecast(txs, 1000, now)
			if f.Risk != tt.want {
				t.Errorf("Risk = %s, want %s", f.Risk, tt.want)
			}
		})
	}
}

func TestDailyForecastMalformedBudget(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	for _, bad := range []float64{0, -100} {
		f := DailyForecast(nil, bad, now)
		if f.SafeToSpend != 0 || f.SpentSoFar != 0 || f.MonthBudget != 0 {
			t.Errorf("budget %v: expected zeroed forecast, got %+v", bad, f)
		}
	}
}
