package amqp

import (
	"encoding/json"
	"time"
)

// Message operations.
const (
	OpUpsert = "upsert"
	OpDelete = "delete"
)

// EntrySyncMessage tells the worker that a ledger entry needs its backup
// row refreshed. Only the id and version travel on the wire, the worker
// loads the full entry from the database.
type EntrySyncMessage struct {
	Op        string    `json:"op"`
	ID        string    `json:"id"`
	Version   int64     `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

// NewEntrySyncMessage builds an upsert message for the given entry.
func NewEntrySyncMessage(id string, version int64) *EntrySyncMessage {
	return &EntrySyncMessage{
		Op:        OpUpsert,
		ID:        id,
		Version:   version,
		Timestamp: time.Now(),
	}
}

// NewEntryDeleteMessage builds a delete message for the given entry.
func NewEntryDeleteMessage(id string) *EntrySyncMessage {
	return &EntrySyncMessage{
		Op:        OpDelete,
		ID:        id,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *EntrySyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// EntrySyncMessageFromJSON parses a message from JSON bytes.
func EntrySyncMessageFromJSON(data []byte) (*EntrySyncMessage, error) {
	var msg EntrySyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
