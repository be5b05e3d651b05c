// Package core provides the domain types and money handling utilities
// shared by every other package.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencySymbol is the fixed prefix used when rendering amounts.
const CurrencySymbol = "₹"

// ParseAmount parses a user-supplied amount string into a positive
// float64, normalized to two decimal places with half-up rounding.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators and
// an optional leading currency symbol. Returns ErrInvalidAmount for
// malformed, zero, or negative input. Parsing goes through a decimal
// type so "12.345" rounds predictably instead of picking up binary
// float noise.
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, CurrencySymbol)
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if d.Sign() <= 0 {
		return 0, ErrInvalidAmount
	}
	amount, _ := d.Round(2).Float64()
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	return amount, nil
}

// RoundAmount rounds a computed amount to two decimal places, half up.
// Heuristic outputs (budget suggestions, forecasts) pass through here
// before being surfaced.
func RoundAmount(v float64) float64 {
	rounded, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return rounded
}

// FormatAmount renders an amount with the fixed currency prefix, two
// decimal places.
func FormatAmount(v float64) string {
	return CurrencySymbol + decimal.NewFromFloat(v).StringFixed(2)
}
