package amqp

import (
	"encoding/json"
	"time"
)

const (
	KindBill       = "bill"
	KindReceivable = "receivable"
)

// RecordSyncMessage asks the worker to push one record to the export target.
// It carries only the kind and id; the worker fetches the current row from
// the store, so stale messages resolve to the latest state.
type RecordSyncMessage struct {
	Kind      string    `json:"kind"`
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewRecordSyncMessage(kind string, id int64) *RecordSyncMessage {
	return &RecordSyncMessage{
		Kind:      kind,
		ID:        id,
		Timestamp: time.Now(),
	}
}

func (m *RecordSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func RecordSyncMessageFromJSON(data []byte) (*RecordSyncMessage, error) {
	var msg RecordSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
