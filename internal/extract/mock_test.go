package extract

import (
	"context"
	"testing"

	"github.com/charmin006/fintrack/internal/core"
)

func TestMockReceiptExtractorDeterministic(t *testing.T) {
	ctx := context.Background()
	e := NewMockReceiptExtractor()

	image := []byte("receipt-image-bytes")
	first, err := e.ExtractReceipt(ctx, image)
	if err != nil {
		t.Fatalf("ExtractReceipt: %v", err)
	}
	second, _ := e.ExtractReceipt(ctx, image)

	if first != second {
		t.Fatalf("extraction not deterministic: %+v vs %+v", first, second)
	}
	if first.Merchant == "" || first.Category == "" {
		t.Errorf("incomplete receipt: %+v", first)
	}
	if first.Amount < 10 {
		t.Errorf("amount %v below mock floor", first.Amount)
	}
}

func TestMockReceiptExtractorEmptyImage(t *testing.T) {
	e := NewMockReceiptExtractor()
	if _, err := e.ExtractReceipt(context.Background(), nil); err == nil {
		t.Fatal("expected error for empty image")
	}
}

func TestMockPaymentSource(t *testing.T) {
	ctx := context.Background()
	s := NewMockPaymentSource()

	since := core.NewDate(2024, 5, 1)
	detected, err := s.DetectTransactions(ctx, since)
	if err != nil {
		t.Fatalf("DetectTransactions: %v", err)
	}
	if len(detected) != 3 {
		t.Fatalf("expected 3 detected transactions, got %d", len(detected))
	}

	again, _ := s.DetectTransactions(ctx, since)
	for i := range detected {
		if detected[i] != again[i] {
			t.Fatalf("detection not deterministic at %d", i)
		}
	}

	if _, err := s.DetectTransactions(ctx, core.Date{}); err == nil {
		t.Fatal("expected error for zero since date")
	}
}
