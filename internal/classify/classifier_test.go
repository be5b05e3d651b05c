package classify

import (
	"testing"

	"github.com/charmin006/fintrack/internal/core"
)

func transaction(category, note string, amount float64) core.Transaction {
	return core.Transaction{
		ID:       "t1",
		Title:    category,
		Category: category,
		Note:     note,
		Amount:   amount,
		Date:     core.NewDate(2024, 5, 1),
		Type:     core.Expense,
	}
}

func TestClassifyNeedCategoryAlwaysNeed(t *testing.T) {
	c := NewClassifier(nil)

	// Substring match against the need category list wins regardless of
	// amount or note content.
	amounts := []float64{5, 50, 150, 5000}
	for _, amount := range amounts {
		got := c.Classify(transaction("Medical Checkup", "movie party shopping", amount))
		if got.Label != core.Need {
			t.Errorf("amount %v: label = %s, want need", amount, got.Label)
		}
		if got.Confidence < 0.8 {
			t.Errorf("amount %v: confidence = %v, want >= 0.8", amount, got.Confidence)
		}
	}
}

func TestClassifyKeywordMajority(t *testing.T) {
	c := NewClassifier(nil)

	tests := []struct {
		name     string
		category string
		note     string
		amount   float64
		want     core.NeedWantLabel
	}{
		{"want keywords win", "Leisure", "movie and restaurant", 60, core.Want},
		{"need keywords win", "Misc", "doctor fee and medicine", 60, core.Need},
		{"no signal large amount", "Misc", "", 150, core.Want},
		{"no signal small amount", "Misc", "", 10, core.Need},
		{"no signal mid amount", "Misc", "", 60, core.Unclassified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(transaction(tt.category, tt.note, tt.amount))
			if got.Label != tt.want {
				t.Errorf("label = %s, want %s", got.Label, tt.want)
			}
		})
	}
}

func TestClassifyConfidenceBounds(t *testing.T) {
	c := NewClassifier(nil)

	cases := []core.Transaction{
		transaction("Medical Checkup", "a very long note about the annual visit", 500),
		transaction("Misc", "", 60),
		transaction("Shopping", "gadget", 5000),
		transaction("Food", "grocery run for the week", 30),
		{Category: "Weird", Amount: -10},
		{Category: "Weird", Amount: 0},
	}
	for _, tx := range cases {
		got := c.Classify(tx)
		if got.Confidence < 0 || got.Confidence > 1 {
			t.Errorf("%q amount %v: confidence %v outside [0,1]", tx.Category, tx.Amount, got.Confidence)
		}
	}
}

func TestClassifyMalformedAmount(t *testing.T) {
	c := NewClassifier(nil)
	got := c.Classify(core.Transaction{Category: "Food", Amount: -1})
	if got.Label != core.Unclassified || got.Confidence != 0 {
		t.Fatalf("malformed amount: got %+v, want unclassified/0", got)
	}
}

// mapLookup is a test double for the history join.
type mapLookup map[string]core.Transaction

func (m mapLookup) LookupTransaction(id string) *core.Transaction {
	if tx, ok := m[id]; ok {
		return &tx
	}
	return nil
}

func TestHistoryOverride(t *testing.T) {
	prior := transaction("Misc", "", 55)
	prior.ID = "prev"
	lookup := mapLookup{"prev": prior}
	c := NewClassifier(lookup)

	history := []core.ClassifiedTransaction{
		{TransactionID: "prev", Label: core.Want, Confidence: 0.9},
	}

	// Default for a mid-amount no-signal transaction is unclassified;
	// the comparable prior (same category, amount within 50) wins.
	got := c.ClassifyWithHistory(transaction("Misc", "", 60), history)
	if got.Label != core.Want {
		t.Errorf("label = %s, want want (history override)", got.Label)
	}
}

func TestHistoryDisabledWithNoopLookup(t *testing.T) {
	c := NewClassifier(NoopLookup{})
	history := []core.ClassifiedTransaction{
		{TransactionID: "prev", Label: core.Want, Confidence: 0.9},
	}

	// The noop lookup resolves nothing, so history cannot change the
	// default label.
	got := c.ClassifyWithHistory(transaction("Misc", "", 60), history)
	if got.Label != core.Unclassified {
		t.Errorf("label = %s, want unclassified (history pass disabled)", got.Label)
	}
}

func TestHistoryNeverRelabelsNeedCategory(t *testing.T) {
	prior := transaction("Food", "", 60)
	prior.ID = "prev"
	c := NewClassifier(mapLookup{"prev": prior})

	history := []core.ClassifiedTransaction{
		{TransactionID: "prev", Label: core.Want, Confidence: 1.0, UserOverridden: true},
	}

	// A comparable prior marked want must not flip a direct
	// need-category match.
	got := c.ClassifyWithHistory(transaction("Food", "", 55), history)
	if got.Label != core.Need {
		t.Errorf("label = %s, want need (category match is authoritative)", got.Label)
	}
	if got.Confidence < 0.8 {
		t.Errorf("confidence = %v, want >= 0.8", got.Confidence)
	}
}

func TestHistoryIgnoresOwnClassification(t *testing.T) {
	tx := transaction("Misc", "", 60)
	c := NewClassifier(mapLookup{tx.ID: tx})

	history := []core.ClassifiedTransaction{
		{TransactionID: tx.ID, Label: core.Want, Confidence: 0.9},
	}

	// The transaction's own prior record carries no vote.
	got := c.ClassifyWithHistory(tx, history)
	if got.Label != core.Unclassified {
		t.Errorf("label = %s, want unclassified (self-vote excluded)", got.Label)
	}
}

func TestHistoryIgnoresFarAmounts(t *testing.T) {
	prior := transaction("Misc", "", 600)
	prior.ID = "prev"
	c := NewClassifier(mapLookup{"prev": prior})

	history := []core.ClassifiedTransaction{
		{TransactionID: "prev", Label: core.Want, Confidence: 0.9},
	}

	got := c.ClassifyWithHistory(transaction("Misc", "", 60), history)
	if got.Label != core.Unclassified {
		t.Errorf("label = %s, want unclassified (amount outside ±50 window)", got.Label)
	}
}
