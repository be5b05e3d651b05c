package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/charmin006/fintrack/internal/budget"
	"github.com/charmin006/fintrack/internal/core"
	"github.com/charmin006/fintrack/internal/records"
)

// BudgetService manages user budgets, generated suggestions, and the
// daily spending forecast.
type BudgetService struct {
	store *records.Store
}

func NewBudgetService(store *records.Store) *BudgetService {
	return &BudgetService{store: store}
}

// List returns every stored budget.
func (s *BudgetService) List(ctx context.Context) ([]core.UserBudget, error) {
	return s.store.Budgets.List(ctx)
}

// Set creates or replaces the budget for a category. Category matching
// is case-insensitive.
func (s *BudgetService) Set(ctx context.Context, category string, amount float64) (core.UserBudget, error) {
	b := core.UserBudget{
		ID:        uuid.NewString(),
		Category:  category,
		Amount:    amount,
		CreatedAt: time.Now(),
	}
	if err := b.Validate(); err != nil {
		return core.UserBudget{}, err
	}

	err := s.store.Budgets.Update(ctx, func(items []core.UserBudget) ([]core.UserBudget, error) {
		kept := items[:0]
		for _, item := range items {
			if !strings.EqualFold(item.Category, category) {
				kept = append(kept, item)
			}
		}
		return append(kept, b), nil
	})
	if err != nil {
		return core.UserBudget{}, fmt.Errorf("set budget: %w", err)
	}
	return b, nil
}

// Delete removes a budget by id.
func (s *BudgetService) Delete(ctx context.Context, id string) error {
	return s.store.Budgets.Update(ctx, func(items []core.UserBudget) ([]core.UserBudget, error) {
		kept := items[:0]
		for _, item := range items {
			if item.ID != id {
				kept = append(kept, item)
			}
		}
		return kept, nil
	})
}

// Suggestions proposes budgets for categories with spending history but
// no budget yet.
func (s *BudgetService) Suggestions(ctx context.Context, now time.Time) ([]core.BudgetSuggestion, error) {
	txs, err := s.store.Transactions.List(ctx)
	if err != nil {
		return nil, err
	}
	budgets, err := s.store.Budgets.List(ctx)
	if err != nil {
		return nil, err
	}
	return budget.SuggestAll(txs, budgets, now), nil
}

// AcceptSuggestion regenerates the suggestion for a category and, when
// one exists, converts it into a stored budget.
func (s *BudgetService) AcceptSuggestion(ctx context.Context, category string, now time.Time) (core.UserBudget, error) {
	txs, err := s.store.Transactions.List(ctx)
	if err != nil {
		return core.UserBudget{}, err
	}
	suggestion, ok := budget.Suggest(category, txs, now)
	if !ok {
		return core.UserBudget{}, fmt.Errorf("no spending history for category %q", category)
	}
	return s.Set(ctx, suggestion.Category, suggestion.SuggestedAmount)
}

// Forecast computes the daily spending forecast for the current month
// against the sum of all category budgets.
func (s *BudgetService) Forecast(ctx context.Context, now time.Time) (budget.Forecast, error) {
	txs, err := s.store.Transactions.List(ctx)
	if err != nil {
		return budget.Forecast{}, err
	}
	budgets, err := s.store.Budgets.List(ctx)
	if err != nil {
		return budget.Forecast{}, err
	}
	total := 0.0
	for _, b := range budgets {
		total += b.Amount
	}
	return budget.DailyForecast(txs, total, now), nil
}
