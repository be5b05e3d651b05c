// Package extract defines the pluggable capabilities for pulling
// transactions out of external artifacts: receipt images and payment
// apps. Production implementations are out of scope; the shipped
// implementations are the deterministic mocks used for demos and tests.
package extract

import (
	"context"

	"github.com/charmin006/fintrack/internal/core"
)

// Receipt is what a ReceiptExtractor reads off a receipt image.
type Receipt struct {
	Merchant string    `json:"merchant"`
	Amount   float64   `json:"amount"`
	Date     core.Date `json:"date"`
	Category string    `json:"category"`
}

// ReceiptExtractor pulls a structured receipt out of raw image bytes.
type ReceiptExtractor interface {
	ExtractReceipt(ctx context.Context, image []byte) (Receipt, error)
}

// PaymentTransactionSource surfaces transactions detected from payment
// apps since a given date.
type PaymentTransactionSource interface {
	DetectTransactions(ctx context.Context, since core.Date) ([]core.UPITransaction, error)
}
