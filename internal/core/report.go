package core

import "time"

// CategoryAmount is an expense total for one category within a period,
// with its share of the period total.
type CategoryAmount struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Percent  float64 `json:"percent"`
}

// MonthlyReport is the assembled summary for one calendar month,
// identified by its YYYY-MM key.
type MonthlyReport struct {
	Month        string           `json:"month"`
	TotalIncome  float64          `json:"totalIncome"`
	TotalExpense float64          `json:"totalExpense"`
	Savings      float64          `json:"savings"`
	TopCategory  string           `json:"topCategory"`
	ByCategory   []CategoryAmount `json:"byCategory"`
	Insights     []string         `json:"insights,omitempty"`
	GeneratedAt  time.Time        `json:"generatedAt"`
}
