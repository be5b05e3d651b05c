package extract

import (
	"context"
	"fmt"

	"github.com/charmin006/fintrack/internal/core"
)

// mock lookup tables. The "extraction" below is a string hash over the
// image bytes indexing into these; it is deliberately fake but stable,
// so the same input always yields the same receipt.
var (
	mockMerchants = []string{
		"Fresh Mart", "City Pharmacy", "Metro Fuel", "Corner Cafe",
		"Daily Grocers", "Book Nook", "Style Store", "Quick Bites",
	}
	mockCategories = []string{
		"Food", "Bills", "Transport", "Food",
		"Food", "Entertainment", "Shopping", "Food",
	}
	mockUPIApps = []string{"GPay", "PhonePe", "Paytm"}
)

// MockReceiptExtractor derives a receipt deterministically from the
// image bytes. Same bytes, same receipt.
type MockReceiptExtractor struct{}

func NewMockReceiptExtractor() *MockReceiptExtractor {
	return &MockReceiptExtractor{}
}

func (e *MockReceiptExtractor) ExtractReceipt(_ context.Context, image []byte) (Receipt, error) {
	if len(image) == 0 {
		return Receipt{}, fmt.Errorf("empty image")
	}
	h := hashBytes(image)
	idx := int(h % uint32(len(mockMerchants)))
	// Amount in [10, 510), two decimals, derived from the hash.
	amount := core.RoundAmount(10 + float64(h%50000)/100.0)
	return Receipt{
		Merchant: mockMerchants[idx],
		Amount:   amount,
		Category: mockCategories[idx],
	}, nil
}

// MockPaymentSource replays a fixed table of detected transactions,
// one per app, dated relative to `since`.
type MockPaymentSource struct{}

func NewMockPaymentSource() *MockPaymentSource {
	return &MockPaymentSource{}
}

func (s *MockPaymentSource) DetectTransactions(_ context.Context, since core.Date) ([]core.UPITransaction, error) {
	if since.IsEmpty() {
		return nil, fmt.Errorf("since date required")
	}
	detected := make([]core.UPITransaction, 0, len(mockUPIApps))
	for i, app := range mockUPIApps {
		day := core.DateOf(since.AddDate(0, 0, i))
		h := hashBytes([]byte(app + day.String()))
		detected = append(detected, core.UPITransaction{
			ID:       fmt.Sprintf("upi-%s-%s", app, day.String()),
			App:      app,
			Merchant: mockMerchants[int(h%uint32(len(mockMerchants)))],
			Amount:   core.RoundAmount(20 + float64(h%20000)/100.0),
			Date:     day,
			RefID:    fmt.Sprintf("REF%08d", h%100000000),
		})
	}
	return detected, nil
}

// hashBytes is the same polynomial hash the analytics palette uses.
func hashBytes(b []byte) uint32 {
	var hash uint32
	for _, c := range b {
		hash = hash*31 + uint32(c)
	}
	return hash
}
