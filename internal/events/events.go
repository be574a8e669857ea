// Package events publishes confirmed ledger changes to interested consumers.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Type identifies the kind of ledger change an Event describes.
type Type string

const (
	ParticipantAdded Type = "participant.added"
	GroupCreated     Type = "group.created"
	GroupDeleted     Type = "group.deleted"
	MemberAdded      Type = "group.member_added"
	ExpenseAdded     Type = "expense.added"
	ExpenseDeleted   Type = "expense.deleted"
	SplitCalculated  Type = "split.calculated"
	SharePaid        Type = "share.paid"
)

// Event is a single change, published after the store confirmed it.
type Event struct {
	ID        string          `json:"id"`
	Type      Type            `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// New builds an event with a fresh ID, encoding payload as JSON.
func New(typ Type, payload any) (Event, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Event{}, err
	}
	return Event{
		ID:        uuid.NewString(),
		Type:      typ,
		Payload:   body,
		Timestamp: time.Now().UTC(),
	}, nil
}

// Publisher delivers events. Implementations must be safe for sequential use
// by the ledger; delivery failures never roll back a confirmed change.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NopPublisher discards every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
func (NopPublisher) Close() error                         { return nil }
