package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"
)

func TestEventMarshal(t *testing.T) {
	event := Event{
		Type:       CashFlowUpdated,
		OwnerID:    "owner-a",
		ActorID:    "member-1",
		EntryID:    "entry-1",
		EntityID:   "E1",
		Month:      7,
		OccurredAt: time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC),
	}

	body, err := event.Marshal()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("expected valid json, got %v", err)
	}
	if decoded["type"] != "cashflow.updated" || decoded["owner_id"] != "owner-a" || decoded["month"] != float64(7) {
		t.Fatalf("unexpected payload %s", body)
	}
	if event.RoutingKey() != "cashflow.updated" {
		t.Fatalf("unexpected routing key %q", event.RoutingKey())
	}
}

func TestNoopPublisher(t *testing.T) {
	var publisher Publisher = Noop{}
	if err := publisher.Publish(context.Background(), Event{Type: CashFlowCreated}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := publisher.Close(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}
