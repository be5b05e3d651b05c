package services

import (
	"context"
	"errors"
	"testing"

	"github.com/charmin006/fintrack/internal/core"
	"github.com/charmin006/fintrack/internal/records"
	"github.com/charmin006/fintrack/internal/storage"
)

type fakePublisher struct {
	published []string
	fail      bool
}

func (p *fakePublisher) PublishClassify(_ context.Context, transactionID, _ string) error {
	if p.fail {
		return errors.New("broker down")
	}
	p.published = append(p.published, transactionID)
	return nil
}

func newTestStore() *records.Store {
	return records.NewStore(storage.NewMemoryKV())
}

func validTransaction() core.Transaction {
	return core.Transaction{
		Title:    "Lunch",
		Amount:   250,
		Category: "Food",
		Date:     core.NewDate(2026, 8, 10),
		Type:     core.Expense,
	}
}

func TestTransactionService_Create(t *testing.T) {
	ctx := context.Background()
	pub := &fakePublisher{}
	svc := NewTransactionService(newTestStore(), pub)

	created, err := svc.Create(ctx, validTransaction())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ID == "" {
		t.Error("Create should assign an id")
	}
	if created.CreatedAt.IsZero() {
		t.Error("Create should stamp CreatedAt")
	}

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(list))
	}

	if len(pub.published) != 1 || pub.published[0] != created.ID {
		t.Errorf("expected classify publish for %s, got %v", created.ID, pub.published)
	}
}

func TestTransactionService_CreateValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewTransactionService(newTestStore(), &fakePublisher{})

	tests := []struct {
		name   string
		mutate func(*core.Transaction)
	}{
		{"empty title", func(tx *core.Transaction) { tx.Title = "  " }},
		{"zero amount", func(tx *core.Transaction) { tx.Amount = 0 }},
		{"negative amount", func(tx *core.Transaction) { tx.Amount = -5 }},
		{"empty category", func(tx *core.Transaction) { tx.Category = "" }},
		{"zero date", func(tx *core.Transaction) { tx.Date = core.Date{} }},
		{"bad type", func(tx *core.Transaction) { tx.Type = "transfer" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := validTransaction()
			tt.mutate(&tx)
			if _, err := svc.Create(ctx, tx); err == nil {
				t.Error("Create should reject invalid transaction")
			}
		})
	}

	list, _ := svc.List(ctx)
	if len(list) != 0 {
		t.Errorf("invalid transactions must not be stored, found %d", len(list))
	}
}

func TestTransactionService_CreatePublishFailureIsNonFatal(t *testing.T) {
	ctx := context.Background()
	svc := NewTransactionService(newTestStore(), &fakePublisher{fail: true})

	if _, err := svc.Create(ctx, validTransaction()); err != nil {
		t.Fatalf("Create must succeed even when publish fails: %v", err)
	}

	list, _ := svc.List(ctx)
	if len(list) != 1 {
		t.Fatalf("transaction should be stored despite publish failure")
	}
}

func TestTransactionService_Update(t *testing.T) {
	ctx := context.Background()
	pub := &fakePublisher{}
	svc := NewTransactionService(newTestStore(), pub)

	created, _ := svc.Create(ctx, validTransaction())

	created.Amount = 300
	created.Title = "Dinner"
	if err := svc.Update(ctx, created); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil || got == nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Amount != 300 || got.Title != "Dinner" {
		t.Errorf("update not applied: %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Error("Update must preserve CreatedAt")
	}

	if len(pub.published) != 2 {
		t.Errorf("expected create+update publishes, got %d", len(pub.published))
	}

	missing := validTransaction()
	missing.ID = "nope"
	if err := svc.Update(ctx, missing); err == nil {
		t.Error("Update should fail for unknown id")
	}
}

func TestTransactionService_Delete(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	svc := NewTransactionService(store, &fakePublisher{})

	created, _ := svc.Create(ctx, validTransaction())

	classifier := NewClassifyService(store)
	if _, err := classifier.ClassifyTransaction(ctx, created.ID); err != nil {
		t.Fatalf("classify: %v", err)
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	list, _ := svc.List(ctx)
	if len(list) != 0 {
		t.Error("transaction should be gone after delete")
	}
	labels, _ := classifier.List(ctx)
	if len(labels) != 0 {
		t.Error("classification should be pruned with its transaction")
	}
}

func TestTransactionService_ImportDetectedDeduplicates(t *testing.T) {
	ctx := context.Background()
	svc := NewTransactionService(newTestStore(), &fakePublisher{})
	source := fakePaymentSource{
		txs: []core.UPITransaction{
			{ID: "u1", App: "gpay", Merchant: "Cafe", Amount: 90, Date: core.NewDate(2026, 8, 10), RefID: "ref-1"},
			{ID: "u2", App: "gpay", Merchant: "Metro", Amount: 30, Date: core.NewDate(2026, 8, 11), RefID: "ref-2"},
		},
	}

	imported, err := svc.ImportDetected(ctx, source, core.NewDate(2026, 8, 1))
	if err != nil {
		t.Fatalf("ImportDetected: %v", err)
	}
	if len(imported) != 2 {
		t.Fatalf("expected 2 imported, got %d", len(imported))
	}
	for _, tx := range imported {
		if tx.ID == "" {
			t.Error("imported transaction should carry a stored id")
		}
	}

	imported, err = svc.ImportDetected(ctx, source, core.NewDate(2026, 8, 1))
	if err != nil {
		t.Fatalf("ImportDetected second pass: %v", err)
	}
	if len(imported) != 0 {
		t.Errorf("second pass must import nothing, got %d", len(imported))
	}

	list, _ := svc.List(ctx)
	if len(list) != 2 {
		t.Errorf("expected 2 transactions total, got %d", len(list))
	}
}

type fakePaymentSource struct {
	txs []core.UPITransaction
}

func (s fakePaymentSource) DetectTransactions(_ context.Context, _ core.Date) ([]core.UPITransaction, error) {
	return s.txs, nil
}
