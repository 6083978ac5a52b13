package amqp

import (
	"encoding/json"
	"time"

	"expnote/internal/core"
)

// EventTransactionAppended is the type tag of TransactionAppendedMessage.
const EventTransactionAppended = "transaction.appended"

// TransactionAppendedMessage announces a newly saved ledger transaction.
// Amount is the nonzero side as a two-decimal string.
type TransactionAppendedMessage struct {
	Event     string    `json:"event"`
	ID        int64     `json:"id"`
	Kind      core.Kind `json:"kind"`
	SortDate  string    `json:"sort_date"`
	Amount    string    `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
}

// NewTransactionAppendedMessage builds the event for a saved transaction
func NewTransactionAppendedMessage(t core.Transaction, now time.Time) *TransactionAppendedMessage {
	return &TransactionAppendedMessage{
		Event:     EventTransactionAppended,
		ID:        t.ID,
		Kind:      t.Kind(),
		SortDate:  t.Date.SortKey(),
		Amount:    t.Amount().String(),
		Timestamp: now.UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *TransactionAppendedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// TransactionAppendedMessageFromJSON decodes a message body
func TransactionAppendedMessageFromJSON(data []byte) (*TransactionAppendedMessage, error) {
	var msg TransactionAppendedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
