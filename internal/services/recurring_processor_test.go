package services

import (
	"context"
	"testing"
	"time"

	"github.com/charmin006/fintrack/internal/core"
)

func TestRecurringProcessor_ProcessDueSubscription(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	txSvc := NewTransactionService(store, &fakePublisher{})
	proc := NewRecurringProcessor(store, txSvc)

	sub := core.Subscription{
		ID:        "sub-1",
		Name:      "Music streaming",
		Amount:    199,
		Category:  "Entertainment",
		Every:     core.Monthly,
		StartDate: core.NewDate(2026, 1, 15),
	}
	if err := store.Subscriptions.Append(ctx, sub); err != nil {
		t.Fatal(err)
	}

	now := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)
	created, err := proc.ProcessDue(ctx, now)
	if err != nil {
		t.Fatalf("ProcessDue: %v", err)
	}
	if created != 1 {
		t.Fatalf("expected 1 charge, got %d", created)
	}

	txs, _ := txSvc.List(ctx)
	if len(txs) != 1 || txs[0].Title != "Music streaming" || txs[0].Amount != 199 {
		t.Errorf("unexpected charge: %+v", txs)
	}

	subs, _ := store.Subscriptions.List(ctx)
	if subs[0].LastExecuted.IsZero() {
		t.Error("subscription should be stamped with execution time")
	}

	// Second pass in the same month creates nothing.
	created, err = proc.ProcessDue(ctx, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("ProcessDue second pass: %v", err)
	}
	if created != 0 {
		t.Errorf("expected no new charges in the same month, got %d", created)
	}
}

func TestRecurringProcessor_SkipsNotStartedAndExpired(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	txSvc := NewTransactionService(store, &fakePublisher{})
	proc := NewRecurringProcessor(store, txSvc)

	now := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)

	future := core.Subscription{
		ID: "sub-future", Name: "Gym", Amount: 500, Category: "Bills",
		Every: core.Monthly, StartDate: core.NewDate(2026, 9, 1),
	}
	if err := store.Subscriptions.Append(ctx, future); err != nil {
		t.Fatal(err)
	}

	expired := core.RecurringExpense{
		ID: "rec-expired", Title: "Old loan", Amount: 1000, Category: "Bills",
		Every:     core.Monthly,
		StartDate: core.NewDate(2025, 1, 1),
		EndDate:   core.NewDate(2026, 6, 30),
	}
	if err := store.Recurring.Append(ctx, expired); err != nil {
		t.Fatal(err)
	}

	created, err := proc.ProcessDue(ctx, now)
	if err != nil {
		t.Fatalf("ProcessDue: %v", err)
	}
	if created != 0 {
		t.Errorf("expected no charges, got %d", created)
	}
}

func TestRecurringProcessor_DailyRecurringExpense(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	txSvc := NewTransactionService(store, &fakePublisher{})
	proc := NewRecurringProcessor(store, txSvc)

	entry := core.RecurringExpense{
		ID: "rec-1", Title: "Commute", Amount: 40, Category: "Transport",
		Every:        core.Daily,
		StartDate:    core.NewDate(2026, 8, 1),
		LastExecuted: time.Date(2026, 8, 14, 9, 0, 0, 0, time.UTC),
	}
	if err := store.Recurring.Append(ctx, entry); err != nil {
		t.Fatal(err)
	}

	created, err := proc.ProcessDue(ctx, time.Date(2026, 8, 15, 9, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("ProcessDue: %v", err)
	}
	if created != 1 {
		t.Fatalf("expected 1 charge, got %d", created)
	}

	txs, _ := txSvc.List(ctx)
	if txs[0].Date.String() != "2026-08-15" {
		t.Errorf("charge should carry the execution date, got %s", txs[0].Date)
	}
}
