// Package classify implements the need/want labeling heuristic. It is
// rule-based scoring over fixed keyword lists, not a learned model.
package classify

import (
	"math"
	"strings"

	"github.com/charmin006/fintrack/internal/core"
)

// needCategories trigger an immediate "need" label on case-insensitive
// substring match against the transaction's category.
var needCategories = []string{
	"food", "groceries", "bills", "medical", "health", "rent",
	"utilities", "transport", "education", "insurance",
}

var needKeywords = []string{
	"grocery", "medicine", "doctor", "hospital", "fuel", "electricity",
	"water", "rent", "fee", "bus", "train", "school", "essential",
}

var wantKeywords = []string{
	"movie", "game", "party", "shopping", "fashion", "gadget",
	"restaurant", "cafe", "travel", "subscription", "entertainment",
	"snack",
}

const (
	// Amount tie-breaks when keyword voting is inconclusive.
	wantAmountThreshold = 100.0
	needAmountThreshold = 20.0

	// Confidence schedule.
	categoryMatchScore = 0.3
	keywordListScore   = 0.2
	largeAmountScore   = 0.1
	smallAmountScore   = 0.1
	longNoteScore      = 0.1
	largeAmount        = 200.0
	smallAmount        = 50.0
	longNoteLength     = 10

	// A direct need-category match guarantees at least this much.
	categoryMatchFloor = 0.8

	// History agreement window and bump.
	historyAmountWindow = 50.0
	historyBump         = 0.2
)

// Classification is the heuristic's output: a label and a confidence
// score in [0, 1].
type Classification struct {
	Label      core.NeedWantLabel `json:"label"`
	Confidence float64            `json:"confidence"`
}

// TransactionLookup resolves a classified transaction id back to its
// transaction record for the learn-from-history pass.
type TransactionLookup interface {
	LookupTransaction(id string) *core.Transaction
}

// NoopLookup resolves nothing. With it, the history pass never finds a
// comparable prior transaction, so learning from history is effectively
// disabled. This mirrors the upstream behavior where the id-to-record
// join was never implemented; pass a real lookup to enable the pass.
type NoopLookup struct{}

func (NoopLookup) LookupTransaction(string) *core.Transaction { return nil }

// Classifier scores transactions. Construct with NewClassifier so the
// history lookup is an explicit dependency rather than shared state.
type Classifier struct {
	lookup TransactionLookup
}

func NewClassifier(lookup TransactionLookup) *Classifier {
	if lookup == nil {
		lookup = NoopLookup{}
	}
	return &Classifier{lookup: lookup}
}

// Classify labels a single transaction. Malformed input (non-positive
// or NaN amounts) yields unclassified with zero confidence rather than
// an error.
func (c *Classifier) Classify(tx core.Transaction) Classification {
	return c.ClassifyWithHistory(tx, nil)
}

// ClassifyWithHistory labels a transaction, then lets prior
// classifications on comparable transactions (same category, amount
// within ±50) override the default by confidence-weighted vote.
func (c *Classifier) ClassifyWithHistory(tx core.Transaction, history []core.ClassifiedTransaction) Classification {
	if tx.Amount <= 0 || math.IsNaN(tx.Amount) || math.IsInf(tx.Amount, 0) {
		return Classification{Label: core.Unclassified, Confidence: 0}
	}

	result := c.score(tx)

	// A direct need-category match is authoritative: history never
	// relabels it.
	if isNeedCategory(tx.Category) {
		return result
	}

	if override, ok := c.historyVote(tx, history, result.Label); ok {
		result.Label = override
		result.Confidence = capConfidence(result.Confidence + historyBump)
	}

	return result
}

func isNeedCategory(category string) bool {
	category = strings.ToLower(category)
	for _, need := range needCategories {
		if strings.Contains(category, need) {
			return true
		}
	}
	return false
}

func (c *Classifier) score(tx core.Transaction) Classification {
	category := strings.ToLower(tx.Category)
	haystack := category + " " + strings.ToLower(tx.Note)

	categoryMatched := isNeedCategory(category)

	needHits := countHits(haystack, needKeywords)
	wantHits := countHits(haystack, wantKeywords)

	var label core.NeedWantLabel
	switch {
	case categoryMatched:
		label = core.Need
	case needHits > wantHits:
		label = core.Need
	case wantHits > needHits:
		label = core.Want
	case tx.Amount > wantAmountThreshold:
		label = core.Want
	case tx.Amount < needAmountThreshold:
		label = core.Need
	default:
		label = core.Unclassified
	}

	confidence := 0.0
	if categoryMatched {
		confidence += categoryMatchScore
	}
	if needHits > 0 {
		confidence += keywordListScore
	}
	if wantHits > 0 {
		confidence += keywordListScore
	}
	if tx.Amount > largeAmount {
		confidence += largeAmountScore
	}
	if tx.Amount < smallAmount {
		confidence += smallAmountScore
	}
	if len(tx.Note) > longNoteLength {
		confidence += longNoteScore
	}
	if categoryMatched && confidence < categoryMatchFloor {
		confidence = categoryMatchFloor
	}

	return Classification{Label: label, Confidence: capConfidence(confidence)}
}

// historyVote tallies a confidence-weighted need/want vote over prior
// classifications whose transactions are comparable to tx. It returns
// the winning label only when it disagrees with the default.
func (c *Classifier) historyVote(tx core.Transaction, history []core.ClassifiedTransaction, defaultLabel core.NeedWantLabel) (core.NeedWantLabel, bool) {
	var needWeight, wantWeight float64
	for _, prior := range history {
		// A record must not vote on itself.
		if prior.TransactionID == tx.ID {
			continue
		}
		record := c.lookup.LookupTransaction(prior.TransactionID)
		if record == nil {
			continue
		}
		if !strings.EqualFold(record.Category, tx.Category) {
			continue
		}
		if math.Abs(record.Amount-tx.Amount) > historyAmountWindow {
			continue
		}
		switch prior.Label {
		case core.Need:
			needWeight += prior.Confidence
		case core.Want:
			wantWeight += prior.Confidence
		}
	}

	var winner core.NeedWantLabel
	switch {
	case needWeight > wantWeight:
		winner = core.Need
	case wantWeight > needWeight:
		winner = core.Want
	default:
		return "", false
	}
	if winner == defaultLabel {
		return "", false
	}
	return winner, true
}

func countHits(haystack string, keywords []string) int {
	hits := 0
	for _, kw := range keywords {
		if strings.Contains(haystack, kw) {
			hits++
		}
	}
	return hits
}

func capConfidence(v float64) float64 {
	if v > 1 {
		return 1
	}
	return v
}
