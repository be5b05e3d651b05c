package worker

import (
	"context"
	"testing"

	"github.com/charmin006/fintrack/internal/amqp"
	"github.com/charmin006/fintrack/internal/core"
	"github.com/charmin006/fintrack/internal/records"
	"github.com/charmin006/fintrack/internal/services"
	"github.com/charmin006/fintrack/internal/storage"
)

func setup(t *testing.T) (*records.Store, *services.TransactionService, *ClassifyWorker) {
	t.Helper()
	store := records.NewStore(storage.NewMemoryKV())
	txSvc := services.NewTransactionService(store, nil)
	w := NewClassifyWorker(services.NewClassifyService(store), 10)
	return store, txSvc, w
}

func TestClassifyWorker_HandleClassifyMessage(t *testing.T) {
	ctx := context.Background()
	store, txSvc, w := setup(t)

	created, err := txSvc.Create(ctx, core.Transaction{
		Title: "Electricity bill", Amount: 1200, Category: "Bills",
		Date: core.NewDate(2026, 8, 10), Type: core.Expense,
	})
	if err != nil {
		t.Fatal(err)
	}

	msg := amqp.NewClassifyMessage(created.ID, amqp.ReasonCreated)
	if err := w.HandleClassifyMessage(ctx, msg); err != nil {
		t.Fatalf("HandleClassifyMessage: %v", err)
	}

	labels, _ := store.Classifications.List(ctx)
	if len(labels) != 1 || labels[0].TransactionID != created.ID {
		t.Fatalf("expected classification for %s, got %+v", created.ID, labels)
	}
	if labels[0].Label != core.Need {
		t.Errorf("bills category should classify as need, got %s", labels[0].Label)
	}
}

func TestClassifyWorker_HandleUnknownTransaction(t *testing.T) {
	ctx := context.Background()
	_, _, w := setup(t)

	msg := amqp.NewClassifyMessage("missing", amqp.ReasonUpdated)
	if err := w.HandleClassifyMessage(ctx, msg); err == nil {
		t.Error("unknown transaction should return an error for redelivery")
	}
}

func TestClassifyWorker_CatchUp(t *testing.T) {
	ctx := context.Background()
	store, txSvc, _ := setup(t)
	w := NewClassifyWorker(services.NewClassifyService(store), 2)

	for i := 0; i < 3; i++ {
		_, err := txSvc.Create(ctx, core.Transaction{
			Title: "Snack", Amount: 50, Category: "Food",
			Date: core.NewDate(2026, 8, 10), Type: core.Expense,
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	done, err := w.CatchUp(ctx)
	if err != nil {
		t.Fatalf("CatchUp: %v", err)
	}
	if done != 2 {
		t.Errorf("batch size should cap one pass at 2, got %d", done)
	}

	done, err = w.CatchUp(ctx)
	if err != nil {
		t.Fatalf("CatchUp second pass: %v", err)
	}
	if done != 1 {
		t.Errorf("second pass should drain the remainder, got %d", done)
	}
}
