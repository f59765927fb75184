// Package events publishes cash flow changes for downstream consumers.
package events

import (
	"context"
	"encoding/json"
	"time"
)

type Type string

const (
	CashFlowCreated Type = "cashflow.created"
	CashFlowUpdated Type = "cashflow.updated"
	CashFlowDeleted Type = "cashflow.deleted"
)

type Event struct {
	Type       Type      `json:"type"`
	OwnerID    string    `json:"owner_id"`
	ActorID    string    `json:"actor_id"`
	EntryID    string    `json:"entry_id"`
	EntityID   string    `json:"entity_id"`
	Month      int       `json:"month"`
	OccurredAt time.Time `json:"occurred_at"`
}

// RoutingKey is the topic routing key, equal to the event type.
func (e Event) RoutingKey() string {
	return string(e.Type)
}

func (e Event) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// Noop drops every event. It is used when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, Event) error {
	return nil
}

func (Noop) Close() error {
	return nil
}
