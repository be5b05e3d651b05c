package amqp

import (
	"encoding/json"
	"time"
)

const (
	ReasonCreated = "created"
	ReasonUpdated = "updated"
)

// ClassifyMessage asks the worker to (re)compute the need/want
// classification for one transaction. It carries only the id; the
// worker fetches the full record from the store.
type ClassifyMessage struct {
	TransactionID string    `json:"transactionId"`
	Reason        string    `json:"reason"`
	Timestamp     time.Time `json:"timestamp"`
}

// NewClassifyMessage creates a classify message for a transaction.
func NewClassifyMessage(transactionID, reason string) *ClassifyMessage {
	return &ClassifyMessage{
		TransactionID: transactionID,
		Reason:        reason,
		Timestamp:     time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *ClassifyMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ClassifyMessageFromJSON creates a message from JSON bytes.
func ClassifyMessageFromJSON(data []byte) (*ClassifyMessage, error) {
	var msg ClassifyMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
