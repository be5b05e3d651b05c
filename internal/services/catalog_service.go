package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/charmin006/fintrack/internal/analytics"
	"github.com/charmin006/fintrack/internal/core"
	"github.com/charmin006/fintrack/internal/records"
)

// CatalogService handles the simple list-backed resources: categories,
// income records, subscriptions, recurring expenses, and profiles.
type CatalogService struct {
	store *records.Store
}

func NewCatalogService(store *records.Store) *CatalogService {
	return &CatalogService{store: store}
}

func (s *CatalogService) Categories(ctx context.Context) ([]core.Category, error) {
	return s.store.Categories.List(ctx)
}

// AddCategory appends a category, assigning a deterministic color when
// none is given. Duplicate names (case-insensitive) are rejected.
func (s *CatalogService) AddCategory(ctx context.Context, name, icon, color string) (core.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return core.Category{}, core.ErrEmptyCategory
	}
	if color == "" {
		color = analytics.CategoryColor(name)
	}
	cat := core.Category{ID: uuid.NewString(), Name: name, Color: color, Icon: icon}

	err := s.store.Categories.Update(ctx, func(items []core.Category) ([]core.Category, error) {
		for _, item := range items {
			if strings.EqualFold(item.Name, name) {
				return nil, fmt.Errorf("category %q already exists", name)
			}
		}
		return append(items, cat), nil
	})
	if err != nil {
		return core.Category{}, err
	}
	return cat, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id string) error {
	return s.store.Categories.Update(ctx, func(items []core.Category) ([]core.Category, error) {
		kept := items[:0]
		for _, item := range items {
			if item.ID != id {
				kept = append(kept, item)
			}
		}
		return kept, nil
	})
}

func (s *CatalogService) Incomes(ctx context.Context) ([]core.IncomeRecord, error) {
	return s.store.Incomes.List(ctx)
}

func (s *CatalogService) AddIncome(ctx context.Context, income core.IncomeRecord) (core.IncomeRecord, error) {
	income.ID = uuid.NewString()
	income.CreatedAt = time.Now()
	if err := income.Validate(); err != nil {
		return core.IncomeRecord{}, err
	}
	if err := s.store.Incomes.Append(ctx, income); err != nil {
		return core.IncomeRecord{}, fmt.Errorf("save income: %w", err)
	}
	return income, nil
}

func (s *CatalogService) DeleteIncome(ctx context.Context, id string) error {
	return s.store.Incomes.Update(ctx, func(items []core.IncomeRecord) ([]core.IncomeRecord, error) {
		kept := items[:0]
		for _, item := range items {
			if item.ID != id {
				kept = append(kept, item)
			}
		}
		return kept, nil
	})
}

func (s *CatalogService) Subscriptions(ctx context.Context) ([]core.Subscription, error) {
	return s.store.Subscriptions.List(ctx)
}

func (s *CatalogService) AddSubscription(ctx context.Context, sub core.Subscription) (core.Subscription, error) {
	sub.ID = uuid.NewString()
	if err := sub.Validate(); err != nil {
		return core.Subscription{}, err
	}
	if err := s.store.Subscriptions.Append(ctx, sub); err != nil {
		return core.Subscription{}, fmt.Errorf("save subscription: %w", err)
	}
	return sub, nil
}

func (s *CatalogService) DeleteSubscription(ctx context.Context, id string) error {
	return s.store.Subscriptions.Update(ctx, func(items []core.Subscription) ([]core.Subscription, error) {
		kept := items[:0]
		for _, item := range items {
			if item.ID != id {
				kept = append(kept, item)
			}
		}
		return kept, nil
	})
}

func (s *CatalogService) RecurringExpenses(ctx context.Context) ([]core.RecurringExpense, error) {
	return s.store.Recurring.List(ctx)
}

func (s *CatalogService) AddRecurringExpense(ctx context.Context, entry core.RecurringExpense) (core.RecurringExpense, error) {
	entry.ID = uuid.NewString()
	if err := entry.Validate(); err != nil {
		return core.RecurringExpense{}, err
	}
	if err := s.store.Recurring.Append(ctx, entry); err != nil {
		return core.RecurringExpense{}, fmt.Errorf("save recurring expense: %w", err)
	}
	return entry, nil
}

func (s *CatalogService) DeleteRecurringExpense(ctx context.Context, id string) error {
	return s.store.Recurring.Update(ctx, func(items []core.RecurringExpense) ([]core.RecurringExpense, error) {
		kept := items[:0]
		for _, item := range items {
			if item.ID != id {
				kept = append(kept, item)
			}
		}
		return kept, nil
	})
}

func (s *CatalogService) Profiles(ctx context.Context) ([]core.Profile, error) {
	return s.store.Profiles.List(ctx)
}

// AddProfile creates a profile. The first profile ever created becomes
// the default; marking a later one default clears the flag elsewhere.
func (s *CatalogService) AddProfile(ctx context.Context, name string, isDefault bool) (core.Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return core.Profile{}, fmt.Errorf("profile name is required")
	}
	profile := core.Profile{ID: uuid.NewString(), Name: name, IsDefault: isDefault, CreatedAt: time.Now()}

	err := s.store.Profiles.Update(ctx, func(items []core.Profile) ([]core.Profile, error) {
		for _, item := range items {
			if strings.EqualFold(item.Name, name) {
				return nil, fmt.Errorf("profile %q already exists", name)
			}
		}
		if len(items) == 0 {
			profile.IsDefault = true
		} else if profile.IsDefault {
			for i := range items {
				items[i].IsDefault = false
			}
		}
		return append(items, profile), nil
	})
	if err != nil {
		return core.Profile{}, err
	}
	return profile, nil
}

// DeleteProfile removes a profile. The default profile cannot be
// deleted while other profiles still reference it as a fallback.
func (s *CatalogService) DeleteProfile(ctx context.Context, id string) error {
	return s.store.Profiles.Update(ctx, func(items []core.Profile) ([]core.Profile, error) {
		kept := items[:0]
		for _, item := range items {
			if item.ID == id {
				if item.IsDefault && len(items) > 1 {
					return nil, fmt.Errorf("cannot delete the default profile")
				}
				continue
			}
			kept = append(kept, item)
		}
		return kept, nil
	})
}
