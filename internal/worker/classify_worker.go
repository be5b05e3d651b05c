// Package worker hosts the background consumers that run outside the
// request path.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/charmin006/fintrack/internal/amqp"
	"github.com/charmin006/fintrack/internal/services"
)

// ClassifyWorker consumes classify messages and runs the need/want
// heuristic against the referenced transaction.
type ClassifyWorker struct {
	classifier *services.ClassifyService
	batchSize  int
}

func NewClassifyWorker(classifier *services.ClassifyService, batchSize int) *ClassifyWorker {
	return &ClassifyWorker{
		classifier: classifier,
		batchSize:  batchSize,
	}
}

// HandleClassifyMessage processes a single classify message. A
// returned error makes the consumer nack the delivery for redelivery.
func (w *ClassifyWorker) HandleClassifyMessage(ctx context.Context, msg *amqp.ClassifyMessage) error {
	slog.InfoContext(ctx, "Processing classify message",
		"transaction_id", msg.TransactionID,
		"reason", msg.Reason)

	record, err := w.classifier.ClassifyTransaction(ctx, msg.TransactionID)
	if err != nil {
		return fmt.Errorf("classify transaction %s: %w", msg.TransactionID, err)
	}

	slog.InfoContext(ctx, "Classify message processed",
		"transaction_id", msg.TransactionID,
		"label", record.Label,
		"confidence", record.Confidence)

	return nil
}

// CatchUp classifies transactions that never got a label, up to the
// configured batch size per call. It runs at worker startup to drain
// anything missed while the worker was down.
func (w *ClassifyWorker) CatchUp(ctx context.Context) (int, error) {
	pending, err := w.classifier.Unclassified(ctx, w.batchSize)
	if err != nil {
		return 0, fmt.Errorf("list unclassified: %w", err)
	}
	if len(pending) == 0 {
		return 0, nil
	}

	slog.InfoContext(ctx, "Catching up on unclassified transactions",
		"count", len(pending))

	done := 0
	for _, tx := range pending {
		if _, err := w.classifier.ClassifyTransaction(ctx, tx.ID); err != nil {
			slog.ErrorContext(ctx, "Catch-up classification failed",
				"transaction_id", tx.ID, "error", err)
			continue
		}
		done++
	}
	return done, nil
}
