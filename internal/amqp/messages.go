package amqp

import (
	"encoding/json"
	"time"
)

// Sync operations carried by RecordSyncMessage.
const (
	OpCreate = "create"
	OpDelete = "delete"
)

// RecordSyncMessage is a lightweight notification that a record changed.
// It carries the outbox entry id plus the record coordinates; the worker
// fetches the full record from the database before exporting it.
type RecordSyncMessage struct {
	QueueID   int64     `json:"queueId"`
	Domain    string    `json:"domain"`
	RecordID  string    `json:"recordId"`
	Op        string    `json:"op"`
	Timestamp time.Time `json:"timestamp"`
}

// NewRecordSyncMessage creates a sync message for one outbox entry.
func NewRecordSyncMessage(queueID int64, domain, recordID, op string) *RecordSyncMessage {
	return &RecordSyncMessage{
		QueueID:   queueID,
		Domain:    domain,
		RecordID:  recordID,
		Op:        op,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *RecordSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// RecordSyncMessageFromJSON creates a message from JSON bytes
func RecordSyncMessageFromJSON(data []byte) (*RecordSyncMessage, error) {
	var msg RecordSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
