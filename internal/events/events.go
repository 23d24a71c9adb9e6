// Package events publishes notifications about changes to the ledger.
//
// Publishing is best effort. A failed publication is logged and never
// fails the operation that caused the event.
package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	TransactionCreated = "transaction.created"
	TransactionDeleted = "transaction.deleted"
	TemplatesApplied   = "templates.applied"
)

// Event is a change to the ledger.
type Event struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`
	Data       any       `json:"data"`
}

// New returns an event of the given type that occurred now.
func New(eventType string, data any) Event {
	return Event{
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}
}

// JSON returns the JSON encoding of the event.
func (e Event) JSON() ([]byte, error) {
	return json.Marshal(e)
}

// Publisher delivers events to subscribers.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, Event) error { return nil }
func (nopPublisher) Close() error                         { return nil }

var (
	mu        sync.RWMutex
	publisher Publisher = nopPublisher{}
)

// SetPublisher replaces the publisher used by Publish and returns the
// previous one. A nil publisher disables publishing.
func SetPublisher(p Publisher) Publisher {
	if p == nil {
		p = nopPublisher{}
	}

	mu.Lock()
	defer mu.Unlock()

	previous := publisher
	publisher = p
	return previous
}

// Publish sends the event with the configured publisher.
func Publish(ctx context.Context, event Event) {
	mu.RLock()
	p := publisher
	mu.RUnlock()

	if err := p.Publish(ctx, event); err != nil {
		log.Warn().Err(err).Str("event", event.Type).Msg("could not publish event")
		return
	}

	log.Debug().Str("event", event.Type).Msg("published event")
}
