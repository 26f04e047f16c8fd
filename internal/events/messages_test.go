package events

import (
	"testing"
	"time"

	"txdash/internal/service"

	"github.com/google/uuid"
)

func TestSeededMessageRoundTrip(t *testing.T) {
	result := service.SeedResult{
		RunID:    uuid.MustParse("8a6e0804-2bd0-4672-b79d-d97027f9071a"),
		Count:    60,
		SeededAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}

	data, err := NewSeededMessage(result).ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	msg, err := SeededMessageFromJSON(data)
	if err != nil {
		t.Fatalf("SeededMessageFromJSON() error = %v", err)
	}

	if msg.Type != SeededEventType {
		t.Errorf("Type = %q, want %q", msg.Type, SeededEventType)
	}
	if msg.RunID != result.RunID.String() {
		t.Errorf("RunID = %q, want %q", msg.RunID, result.RunID)
	}
	if msg.Count != 60 {
		t.Errorf("Count = %d, want 60", msg.Count)
	}
	if !msg.SeededAt.Equal(result.SeededAt) {
		t.Errorf("SeededAt = %v, want %v", msg.SeededAt, result.SeededAt)
	}
}

func TestSeededMessageFromJSONRejectsGarbage(t *testing.T) {
	if _, err := SeededMessageFromJSON([]byte("{")); err == nil {
		t.Error("expected error for truncated JSON")
	}
}
