package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmin006/fintrack/internal/classify"
	"github.com/charmin006/fintrack/internal/core"
	"github.com/charmin006/fintrack/internal/records"
)

// ClassifyService runs the need/want heuristic against stored
// transactions and persists the resulting labels.
//
// The classifier's learn-from-history pass is disabled here: the
// lookup that would resolve prior classifications back to their
// transactions is the no-op one, preserving the upstream behavior
// where that join was never implemented. Substitute a real
// TransactionLookup via the classify package to enable it.
type ClassifyService struct {
	store      *records.Store
	classifier *classify.Classifier
}

func NewClassifyService(store *records.Store) *ClassifyService {
	return &ClassifyService{
		store:      store,
		classifier: classify.NewClassifier(classify.NoopLookup{}),
	}
}

// ClassifyTransaction labels one transaction by id and upserts the
// result. A manual override on the record is never replaced by the
// heuristic.
func (s *ClassifyService) ClassifyTransaction(ctx context.Context, id string) (core.ClassifiedTransaction, error) {
	txs, err := s.store.Transactions.List(ctx)
	if err != nil {
		return core.ClassifiedTransaction{}, err
	}

	var target *core.Transaction
	for i := range txs {
		if txs[i].ID == id {
			target = &txs[i]
			break
		}
	}
	if target == nil {
		return core.ClassifiedTransaction{}, fmt.Errorf("transaction %s not found", id)
	}

	history, err := s.store.Classifications.List(ctx)
	if err != nil {
		return core.ClassifiedTransaction{}, err
	}
	for _, prior := range history {
		if prior.TransactionID == id && prior.UserOverridden {
			return prior, nil
		}
	}

	result := s.classifier.ClassifyWithHistory(*target, history)

	record := core.ClassifiedTransaction{
		TransactionID: id,
		Label:         result.Label,
		Confidence:    result.Confidence,
		ClassifiedAt:  time.Now(),
	}
	if err := s.upsert(ctx, record); err != nil {
		return core.ClassifiedTransaction{}, err
	}

	slog.InfoContext(ctx, "Transaction classified",
		"transaction_id", id,
		"label", record.Label,
		"confidence", record.Confidence)

	return record, nil
}

// Override sets a user-chosen label on a transaction. Overrides carry
// full confidence and survive later heuristic runs.
func (s *ClassifyService) Override(ctx context.Context, id string, label core.NeedWantLabel) (core.ClassifiedTransaction, error) {
	switch label {
	case core.Need, core.Want:
	default:
		return core.ClassifiedTransaction{}, fmt.Errorf("invalid label %q", label)
	}

	record := core.ClassifiedTransaction{
		TransactionID:  id,
		Label:          label,
		Confidence:     1.0,
		UserOverridden: true,
		ClassifiedAt:   time.Now(),
	}
	if err := s.upsert(ctx, record); err != nil {
		return core.ClassifiedTransaction{}, err
	}
	return record, nil
}

// List returns every stored classification.
func (s *ClassifyService) List(ctx context.Context) ([]core.ClassifiedTransaction, error) {
	return s.store.Classifications.List(ctx)
}

// Unclassified returns transactions that have no classification yet,
// up to limit (0 means no limit).
func (s *ClassifyService) Unclassified(ctx context.Context, limit int) ([]core.Transaction, error) {
	txs, err := s.store.Transactions.List(ctx)
	if err != nil {
		return nil, err
	}
	classified, err := s.store.Classifications.List(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(classified))
	for _, c := range classified {
		seen[c.TransactionID] = true
	}

	var pending []core.Transaction
	for _, t := range txs {
		if seen[t.ID] {
			continue
		}
		pending = append(pending, t)
		if limit > 0 && len(pending) >= limit {
			break
		}
	}
	return pending, nil
}

func (s *ClassifyService) upsert(ctx context.Context, record core.ClassifiedTransaction) error {
	return s.store.Classifications.Update(ctx, func(items []core.ClassifiedTransaction) ([]core.ClassifiedTransaction, error) {
		for i := range items {
			if items[i].TransactionID == record.TransactionID {
				items[i] = record
				return items, nil
			}
		}
		return append(items, record), nil
	})
}
