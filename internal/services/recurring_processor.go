package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmin006/fintrack/internal/core"
	"github.com/charmin006/fintrack/internal/records"
)

// RecurringProcessor materializes subscriptions and recurring expenses
// into real transactions when they fall due. It is driven on a fixed
// interval by the recurring worker.
type RecurringProcessor struct {
	store        *records.Store
	transactions *TransactionService
}

func NewRecurringProcessor(store *records.Store, transactions *TransactionService) *RecurringProcessor {
	return &RecurringProcessor{store: store, transactions: transactions}
}

// ProcessDue runs one pass over subscriptions and recurring expenses,
// creating a transaction for each entry that is due at now and stamping
// its last execution. Returns the number of transactions created.
func (p *RecurringProcessor) ProcessDue(ctx context.Context, now time.Time) (int, error) {
	created := 0

	n, err := p.processSubscriptions(ctx, now)
	created += n
	if err != nil {
		return created, err
	}

	n, err = p.processRecurring(ctx, now)
	created += n
	if err != nil {
		return created, err
	}

	return created, nil
}

func (p *RecurringProcessor) processSubscriptions(ctx context.Context, now time.Time) (int, error) {
	subs, err := p.store.Subscriptions.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list subscriptions: %w", err)
	}

	created := 0
	for _, sub := range subs {
		due, err := p.isDue(sub.Every, sub.LastExecuted, now, sub.StartDate)
		if err != nil {
			slog.WarnContext(ctx, "Skipping subscription with bad frequency",
				"subscription_id", sub.ID, "frequency", sub.Every)
			continue
		}
		if !due || sub.StartDate.After(now) {
			continue
		}

		tx := core.Transaction{
			Title:    sub.Name,
			Amount:   sub.Amount,
			Category: sub.Category,
			Date:     core.DateOf(now),
			Note:     fmt.Sprintf("Subscription charge (%s)", sub.Every),
			Type:     core.Expense,
		}
		if _, err := p.transactions.Create(ctx, tx); err != nil {
			slog.ErrorContext(ctx, "Failed to create subscription charge",
				"subscription_id", sub.ID, "error", err)
			continue
		}
		created++

		if err := p.stampSubscription(ctx, sub.ID, now); err != nil {
			slog.ErrorContext(ctx, "Failed to stamp subscription execution",
				"subscription_id", sub.ID, "error", err)
		}
	}
	return created, nil
}

func (p *RecurringProcessor) processRecurring(ctx context.Context, now time.Time) (int, error) {
	entries, err := p.store.Recurring.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list recurring expenses: %w", err)
	}

	created := 0
	for _, entry := range entries {
		due, err := p.isDue(entry.Every, entry.LastExecuted, now, entry.StartDate)
		if err != nil {
			slog.WarnContext(ctx, "Skipping recurring expense with bad frequency",
				"recurring_id", entry.ID, "frequency", entry.Every)
			continue
		}
		if !due || entry.StartDate.After(now) {
			continue
		}
		// Expired entries stay in the list but stop producing charges.
		if !entry.EndDate.IsEmpty() && entry.EndDate.Before(now) {
			continue
		}

		tx := core.Transaction{
			Title:    entry.Title,
			Amount:   entry.Amount,
			Category: entry.Category,
			Date:     core.DateOf(now),
			Note:     fmt.Sprintf("Recurring expense (%s)", entry.Every),
			Type:     core.Expense,
		}
		if _, err := p.transactions.Create(ctx, tx); err != nil {
			slog.ErrorContext(ctx, "Failed to create recurring charge",
				"recurring_id", entry.ID, "error", err)
			continue
		}
		created++

		if err := p.stampRecurring(ctx, entry.ID, now); err != nil {
			slog.ErrorContext(ctx, "Failed to stamp recurring execution",
				"recurring_id", entry.ID, "error", err)
		}
	}
	return created, nil
}

func (p *RecurringProcessor) isDue(freq core.Frequency, last time.Time, now time.Time, start core.Date) (bool, error) {
	checker, err := GetDuenessChecker(freq)
	if err != nil {
		return false, err
	}
	return checker.IsDue(last, now, start), nil
}

func (p *RecurringProcessor) stampSubscription(ctx context.Context, id string, at time.Time) error {
	return p.store.Subscriptions.Update(ctx, func(items []core.Subscription) ([]core.Subscription, error) {
		for i := range items {
			if items[i].ID == id {
				items[i].LastExecuted = at
			}
		}
		return items, nil
	})
}

func (p *RecurringProcessor) stampRecurring(ctx context.Context, id string, at time.Time) error {
	return p.store.Recurring.Update(ctx, func(items []core.RecurringExpense) ([]core.RecurringExpense, error) {
		for i := range items {
			if items[i].ID == id {
				items[i].LastExecuted = at
			}
		}
		return items, nil
	})
}
