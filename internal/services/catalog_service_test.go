package services

import (
	"context"
	"testing"

	"github.com/charmin006/fintrack/internal/core"
)

func TestCatalogService_Categories(t *testing.T) {
	ctx := context.Background()
	svc := NewCatalogService(newTestStore())

	cat, err := svc.AddCategory(ctx, "Health", "heart", "")
	if err != nil {
		t.Fatalf("AddCategory: %v", err)
	}
	if cat.Color == "" {
		t.Error("AddCategory should assign a color when none given")
	}

	if _, err := svc.AddCategory(ctx, "health", "heart", ""); err == nil {
		t.Error("duplicate category names should be rejected case-insensitively")
	}
	if _, err := svc.AddCategory(ctx, "  ", "", ""); err == nil {
		t.Error("blank category name should be rejected")
	}

	if err := svc.DeleteCategory(ctx, cat.ID); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}
	cats, _ := svc.Categories(ctx)
	if len(cats) != 0 {
		t.Errorf("expected empty catalog, got %d", len(cats))
	}
}

func TestCatalogService_Incomes(t *testing.T) {
	ctx := context.Background()
	svc := NewCatalogService(newTestStore())

	income, err := svc.AddIncome(ctx, core.IncomeRecord{
		Source: "Salary", Amount: 50000, Date: core.NewDate(2026, 8, 1),
	})
	if err != nil {
		t.Fatalf("AddIncome: %v", err)
	}
	if income.ID == "" || income.CreatedAt.IsZero() {
		t.Error("AddIncome should stamp id and creation time")
	}

	if _, err := svc.AddIncome(ctx, core.IncomeRecord{Source: "", Amount: 100, Date: core.NewDate(2026, 8, 1)}); err == nil {
		t.Error("AddIncome should reject empty source")
	}

	if err := svc.DeleteIncome(ctx, income.ID); err != nil {
		t.Fatalf("DeleteIncome: %v", err)
	}
	list, _ := svc.Incomes(ctx)
	if len(list) != 0 {
		t.Errorf("expected no incomes, got %d", len(list))
	}
}

func TestCatalogService_SubscriptionsAndRecurring(t *testing.T) {
	ctx := context.Background()
	svc := NewCatalogService(newTestStore())

	sub, err := svc.AddSubscription(ctx, core.Subscription{
		Name: "Streaming", Amount: 199, Category: "Entertainment",
		Every: core.Monthly, StartDate: core.NewDate(2026, 8, 1),
	})
	if err != nil {
		t.Fatalf("AddSubscription: %v", err)
	}

	_, err = svc.AddSubscription(ctx, core.Subscription{
		Name: "Bad", Amount: 10, Category: "Bills",
		Every: "sometimes", StartDate: core.NewDate(2026, 8, 1),
	})
	if err == nil {
		t.Error("AddSubscription should reject unknown frequencies")
	}

	entry, err := svc.AddRecurringExpense(ctx, core.RecurringExpense{
		Title: "Rent", Amount: 15000, Category: "Bills",
		Every: core.Monthly, StartDate: core.NewDate(2026, 1, 1),
	})
	if err != nil {
		t.Fatalf("AddRecurringExpense: %v", err)
	}

	_, err = svc.AddRecurringExpense(ctx, core.RecurringExpense{
		Title: "Backwards", Amount: 100, Category: "Bills",
		Every:     core.Monthly,
		StartDate: core.NewDate(2026, 6, 1),
		EndDate:   core.NewDate(2026, 1, 1),
	})
	if err == nil {
		t.Error("end date before start date should be rejected")
	}

	if err := svc.DeleteSubscription(ctx, sub.ID); err != nil {
		t.Fatal(err)
	}
	if err := svc.DeleteRecurringExpense(ctx, entry.ID); err != nil {
		t.Fatal(err)
	}

	subs, _ := svc.Subscriptions(ctx)
	recs, _ := svc.RecurringExpenses(ctx)
	if len(subs) != 0 || len(recs) != 0 {
		t.Error("expected empty subscription and recurring lists after delete")
	}
}

func TestCatalogService_Profiles(t *testing.T) {
	ctx := context.Background()
	svc := NewCatalogService(newTestStore())

	first, err := svc.AddProfile(ctx, "Personal", false)
	if err != nil {
		t.Fatalf("AddProfile: %v", err)
	}
	if !first.IsDefault {
		t.Error("first profile should become the default")
	}

	if _, err := svc.AddProfile(ctx, "personal", false); err == nil {
		t.Error("duplicate profile names should be rejected case-insensitively")
	}
	if _, err := svc.AddProfile(ctx, "  ", false); err == nil {
		t.Error("blank profile name should be rejected")
	}

	second, err := svc.AddProfile(ctx, "Family", true)
	if err != nil {
		t.Fatalf("AddProfile: %v", err)
	}
	if !second.IsDefault {
		t.Error("explicitly default profile should keep the flag")
	}
	profiles, _ := svc.Profiles(ctx)
	for _, p := range profiles {
		if p.ID == first.ID && p.IsDefault {
			t.Error("previous default should lose the flag when a new default is added")
		}
	}

	if err := svc.DeleteProfile(ctx, second.ID); err == nil {
		t.Error("deleting the default profile should fail while others remain")
	}
	if err := svc.DeleteProfile(ctx, first.ID); err != nil {
		t.Fatalf("DeleteProfile: %v", err)
	}
}
