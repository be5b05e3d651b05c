package services

import (
	"context"
	"errors"
	"testing"

	"github.com/charmin006/fintrack/internal/core"
)

type fakeExporter struct {
	exported []core.MonthlyReport
	fail     bool
}

func (e *fakeExporter) ExportReport(_ context.Context, report core.MonthlyReport) error {
	if e.fail {
		return errors.New("sheet unavailable")
	}
	e.exported = append(e.exported, report)
	return nil
}

func TestReportService_Generate(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	txSvc := NewTransactionService(store, &fakePublisher{})
	svc := NewReportService(store, nil)

	seed := []core.Transaction{
		{Title: "Salary", Amount: 50000, Category: "Income", Date: core.NewDate(2026, 8, 1), Type: core.Income},
		{Title: "Groceries", Amount: 3000, Category: "Food", Date: core.NewDate(2026, 8, 5), Type: core.Expense},
		{Title: "Metro", Amount: 500, Category: "Transport", Date: core.NewDate(2026, 8, 6), Type: core.Expense},
		{Title: "July rent", Amount: 15000, Category: "Bills", Date: core.NewDate(2026, 7, 1), Type: core.Expense},
	}
	for _, tx := range seed {
		if _, err := txSvc.Create(ctx, tx); err != nil {
			t.Fatal(err)
		}
	}

	report, err := svc.Generate(ctx, "2026-08")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if report.TotalIncome != 50000 {
		t.Errorf("income = %f, want 50000", report.TotalIncome)
	}
	if report.TotalExpense != 3500 {
		t.Errorf("expense = %f, want 3500 (other months excluded)", report.TotalExpense)
	}
	if report.Savings != 46500 {
		t.Errorf("savings = %f, want 46500", report.Savings)
	}
	if report.TopCategory != "Food" {
		t.Errorf("top category = %s, want Food", report.TopCategory)
	}
	if len(report.ByCategory) != 2 {
		t.Errorf("expected 2 breakdown rows, got %d", len(report.ByCategory))
	}

	// Regeneration replaces the stored copy instead of appending.
	if _, err := svc.Generate(ctx, "2026-08"); err != nil {
		t.Fatal(err)
	}
	stored, _ := svc.List(ctx)
	if len(stored) != 1 {
		t.Errorf("expected 1 stored report, got %d", len(stored))
	}

	if _, err := svc.Generate(ctx, "not-a-month"); err == nil {
		t.Error("Generate should reject malformed month keys")
	}
}

func TestReportService_Export(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	txSvc := NewTransactionService(store, &fakePublisher{})

	_, err := txSvc.Create(ctx, core.Transaction{
		Title: "Groceries", Amount: 3000, Category: "Food",
		Date: core.NewDate(2026, 8, 5), Type: core.Expense,
	})
	if err != nil {
		t.Fatal(err)
	}

	exporter := &fakeExporter{}
	svc := NewReportService(store, exporter)

	if _, err := svc.Export(ctx, "2026-08"); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if len(exporter.exported) != 1 || exporter.exported[0].Month != "2026-08" {
		t.Errorf("unexpected exports: %+v", exporter.exported)
	}

	exporter.fail = true
	if _, err := svc.Export(ctx, "2026-08"); err == nil {
		t.Error("Export should surface exporter failures")
	}

	unconfigured := NewReportService(store, nil)
	if _, err := unconfigured.Export(ctx, "2026-08"); err == nil {
		t.Error("Export without an exporter should fail")
	}
}
