// Package records layers typed collections on top of the key-value
// record store. Every operation is a whole-list read, in-memory
// transform, whole-list write; there is no partial update and no
// locking across the read-modify-write cycle.
package records

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/charmin006/fintrack/internal/core"
	"github.com/charmin006/fintrack/internal/storage"
)

// Collection is a JSON array of T stored under one key.
type Collection[T any] struct {
	kv  storage.KV
	key string
}

func NewCollection[T any](kv storage.KV, key string) *Collection[T] {
	return &Collection[T]{kv: kv, key: key}
}

// List returns all records. An unset key reads as an empty list.
func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	raw, err := c.kv.Get(ctx, c.key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", c.key, err)
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.key, err)
	}
	return items, nil
}

// ReplaceAll writes the full list back wholesale.
func (c *Collection[T]) ReplaceAll(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.key, err)
	}
	if err := c.kv.Set(ctx, c.key, raw); err != nil {
		return fmt.Errorf("write %s: %w", c.key, err)
	}
	return nil
}

// Append reads the list, appends item, and writes the list back.
func (c *Collection[T]) Append(ctx context.Context, item T) error {
	return c.Update(ctx, func(items []T) ([]T, error) {
		return append(items, item), nil
	})
}

// Update runs one read-modify-write cycle with the given transform.
// The cycle is not atomic: a concurrent Update on the same key can be
// lost, which the storage model accepts.
func (c *Collection[T]) Update(ctx context.Context, transform func([]T) ([]T, error)) error {
	items, err := c.List(ctx)
	if err != nil {
		return err
	}
	next, err := transform(items)
	if err != nil {
		return err
	}
	return c.ReplaceAll(ctx, next)
}

// Clear removes the key entirely.
func (c *Collection[T]) Clear(ctx context.Context) error {
	if err := c.kv.Remove(ctx, c.key); err != nil {
		return fmt.Errorf("clear %s: %w", c.key, err)
	}
	return nil
}

// Store bundles every feature area's collection over one record store.
type Store struct {
	Transactions    *Collection[core.Transaction]
	Categories      *Collection[core.Category]
	Incomes         *Collection[core.IncomeRecord]
	Subscriptions   *Collection[core.Subscription]
	Recurring       *Collection[core.RecurringExpense]
	Budgets         *Collection[core.UserBudget]
	Classifications *Collection[core.ClassifiedTransaction]
	Goals           *Collection[core.SavingsGoal]
	Profiles        *Collection[core.Profile]
	UPITransactions *Collection[core.UPITransaction]
	Reports         *Collection[core.MonthlyReport]

	kv storage.KV
}

func NewStore(kv storage.KV) *Store {
	return &Store{
		Transactions:    NewCollection[core.Transaction](kv, KeyTransactions),
		Categories:      NewCollection[core.Category](kv, KeyCategories),
		Incomes:         NewCollection[core.IncomeRecord](kv, KeyIncomes),
		Subscriptions:   NewCollection[core.Subscription](kv, KeySubscriptions),
		Recurring:       NewCollection[core.RecurringExpense](kv, KeyRecurring),
		Budgets:         NewCollection[core.UserBudget](kv, KeyBudgets),
		Classifications: NewCollection[core.ClassifiedTransaction](kv, KeyClassifications),
		Goals:           NewCollection[core.SavingsGoal](kv, KeyGoals),
		Profiles:        NewCollection[core.Profile](kv, KeyProfiles),
		UPITransactions: NewCollection[core.UPITransaction](kv, KeyUPITransactions),
		Reports:         NewCollection[core.MonthlyReport](kv, KeyMonthlyReports),
		kv:              kv,
	}
}

// SeedDefaults writes the default category list when none exists yet.
func (s *Store) SeedDefaults(ctx context.Context) error {
	categories, err := s.Categories.List(ctx)
	if err != nil {
		return err
	}
	if len(categories) > 0 {
		return nil
	}
	return s.Categories.ReplaceAll(ctx, core.DefaultCategories())
}

// Close closes the underlying record store.
func (s *Store) Close() error {
	if s.kv != nil {
		return s.kv.Close()
	}
	return nil
}
