// Package notify publishes domain events (new contact submissions and job
// applications) so back-office tooling can react without polling.
package notify

import (
	"context"
	"time"
)

// Event types.
const (
	ContactSubmitted    = "contact.submitted"
	ApplicationReceived = "application.received"
)

// Event is the message body published for every notification.
type Event struct {
	Type       string    `json:"type"`
	EntityID   int64     `json:"entityId"`
	OccurredAt time.Time `json:"occurredAt"`
	Payload    any       `json:"payload,omitempty"`
}

// NewEvent stamps an event with the current time.
func NewEvent(typ string, id int64, payload any) Event {
	return Event{Type: typ, EntityID: id, OccurredAt: time.Now().UTC(), Payload: payload}
}

// Publisher delivers events. Implementations must be safe for concurrent
// use.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
	Close() error
}

// Nop discards every event. It is used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
func (Nop) Close() error                         { return nil }

var _ Publisher = Nop{}
