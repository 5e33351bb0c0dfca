package amqp

import (
	"encoding/json"
	"time"
)

// DatasetChangedMessage announces that a mode's dataset was mutated.
// It carries only identifying data; consumers load the full dataset
// from the store.
type DatasetChangedMessage struct {
	Mode         string    `json:"mode"`
	Revision     int64     `json:"revision"`
	Transactions int       `json:"transactions"`
	Timestamp    time.Time `json:"timestamp"`
}

func NewDatasetChangedMessage(mode string, revision int64, transactions int) *DatasetChangedMessage {
	return &DatasetChangedMessage{
		Mode:         mode,
		Revision:     revision,
		Transactions: transactions,
		Timestamp:    time.Now(),
	}
}

func (m *DatasetChangedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func DatasetChangedMessageFromJSON(data []byte) (*DatasetChangedMessage, error) {
	var msg DatasetChangedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
