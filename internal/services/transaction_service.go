// Package services provides business logic and orchestration over the
// record store.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/charmin006/fintrack/internal/core"
	"github.com/charmin006/fintrack/internal/extract"
	"github.com/charmin006/fintrack/internal/records"
)

// ClassifyPublisher publishes asynchronous classification requests.
// The AMQP client satisfies it; tests use fakes.
type ClassifyPublisher interface {
	PublishClassify(ctx context.Context, transactionID, reason string) error
}

// TransactionService owns the transaction lifecycle. Every operation
// reads the whole collection, transforms it in memory, and writes it
// back wholesale.
type TransactionService struct {
	store     *records.Store
	publisher ClassifyPublisher
}

func NewTransactionService(store *records.Store, publisher ClassifyPublisher) *TransactionService {
	return &TransactionService{store: store, publisher: publisher}
}

// Create validates and stores a new transaction under a fresh id, then
// requests its classification. A publish failure never fails the
// request; the transaction is already saved.
func (s *TransactionService) Create(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	tx.ID = uuid.NewString()
	tx.CreatedAt = time.Now()
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}

	if err := s.store.Transactions.Append(ctx, tx); err != nil {
		return core.Transaction{}, fmt.Errorf("save transaction: %w", err)
	}

	s.requestClassification(ctx, tx.ID, "created")

	slog.InfoContext(ctx, "Transaction created",
		"transaction_id", tx.ID,
		"category", tx.Category,
		"amount", tx.Amount,
		"type", tx.Type)

	return tx, nil
}

// Update mutates a transaction in place, keyed by id.
func (s *TransactionService) Update(ctx context.Context, tx core.Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}

	found := false
	err := s.store.Transactions.Update(ctx, func(items []core.Transaction) ([]core.Transaction, error) {
		for i := range items {
			if items[i].ID == tx.ID {
				tx.CreatedAt = items[i].CreatedAt
				items[i] = tx
				found = true
				return items, nil
			}
		}
		return nil, fmt.Errorf("transaction %s not found", tx.ID)
	})
	if err != nil {
		return err
	}

	if found {
		s.requestClassification(ctx, tx.ID, "updated")
	}
	return nil
}

// Delete removes a transaction and its derived classification.
func (s *TransactionService) Delete(ctx context.Context, id string) error {
	err := s.store.Transactions.Update(ctx, func(items []core.Transaction) ([]core.Transaction, error) {
		kept := items[:0]
		for _, item := range items {
			if item.ID != id {
				kept = append(kept, item)
			}
		}
		return kept, nil
	})
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}

	err = s.store.Classifications.Update(ctx, func(items []core.ClassifiedTransaction) ([]core.ClassifiedTransaction, error) {
		kept := items[:0]
		for _, item := range items {
			if item.TransactionID != id {
				kept = append(kept, item)
			}
		}
		return kept, nil
	})
	if err != nil {
		// Orphaned classifications are harmless; they key off the
		// transaction id and simply never resolve again.
		slog.WarnContext(ctx, "Failed to prune classification", "transaction_id", id, "error", err)
	}
	return nil
}

// List returns every transaction.
func (s *TransactionService) List(ctx context.Context) ([]core.Transaction, error) {
	return s.store.Transactions.List(ctx)
}

// Get returns one transaction by id, or nil when absent.
func (s *TransactionService) Get(ctx context.Context, id string) (*core.Transaction, error) {
	items, err := s.store.Transactions.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, nil
}

// ImportDetected pulls detected payment-app transactions from a source
// and stores those not already imported (matched by ref id). Returns
// the transactions it created.
func (s *TransactionService) ImportDetected(ctx context.Context, source extract.PaymentTransactionSource, since core.Date) ([]core.Transaction, error) {
	detected, err := source.DetectTransactions(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("detect transactions: %w", err)
	}

	existing, err := s.store.UPITransactions.List(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(existing))
	for _, u := range existing {
		seen[u.RefID] = true
	}

	var imported []core.Transaction
	for _, u := range detected {
		if seen[u.RefID] {
			continue
		}
		if err := s.store.UPITransactions.Append(ctx, u); err != nil {
			return imported, err
		}
		tx := core.Transaction{
			Title:    u.Merchant,
			Amount:   u.Amount,
			Category: "Shopping",
			Date:     u.Date,
			Note:     fmt.Sprintf("Detected via %s (%s)", u.App, u.RefID),
			Type:     core.Expense,
		}
		created, err := s.Create(ctx, tx)
		if err != nil {
			slog.WarnContext(ctx, "Failed to import detected transaction",
				"ref_id", u.RefID, "error", err)
			continue
		}
		imported = append(imported, created)
	}
	return imported, nil
}

// FromReceipt turns an extracted receipt into a stored transaction.
func (s *TransactionService) FromReceipt(ctx context.Context, receipt extract.Receipt, date core.Date) (core.Transaction, error) {
	tx := core.Transaction{
		Title:    receipt.Merchant,
		Amount:   receipt.Amount,
		Category: receipt.Category,
		Date:     date,
		Note:     "Scanned from receipt",
		Type:     core.Expense,
	}
	return s.Create(ctx, tx)
}

func (s *TransactionService) requestClassification(ctx context.Context, id, reason string) {
	if s.publisher == nil {
		slog.WarnContext(ctx, "Classify publisher not available, skipping", "transaction_id", id)
		return
	}
	if err := s.publisher.PublishClassify(ctx, id, reason); err != nil {
		slog.ErrorContext(ctx, "Failed to publish classify message",
			"transaction_id", id, "error", err)
	}
}
