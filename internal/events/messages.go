package events

import (
	"encoding/json"
	"time"

	"txdash/internal/service"
)

const SeededEventType = "transactions.seeded"

// SeededMessage announces that the record store was fully replaced.
type SeededMessage struct {
	Type     string    `json:"type"`
	RunID    string    `json:"run_id"`
	Count    int       `json:"count"`
	SeededAt time.Time `json:"seeded_at"`
}

func NewSeededMessage(result service.SeedResult) *SeededMessage {
	return &SeededMessage{
		Type:     SeededEventType,
		RunID:    result.RunID.String(),
		Count:    result.Count,
		SeededAt: result.SeededAt,
	}
}

func (m *SeededMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func SeededMessageFromJSON(data []byte) (*SeededMessage, error) {
	var msg SeededMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
