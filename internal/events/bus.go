// Package events is an in-process publish/subscribe bus that decouples
// catalog mutations from the components reacting to them.
package events

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Topic names an event stream.
type Topic string

const (
	// TopicCatalogChanged is published after an admin mutation of managed packages.
	TopicCatalogChanged Topic = "catalog.changed"
	// TopicCatalogRefreshed is published after a new snapshot is committed.
	TopicCatalogRefreshed Topic = "catalog.refreshed"
	// TopicLeadSubmitted is published after a lead is stored.
	TopicLeadSubmitted Topic = "lead.submitted"
)

// Event is a published message. Payload types are documented per topic.
type Event struct {
	Topic      Topic
	Payload    any
	OccurredAt time.Time
}

// CatalogChanged is the payload of TopicCatalogChanged.
type CatalogChanged struct {
	PackageID string
	Action    string
}

// CatalogRefreshed is the payload of TopicCatalogRefreshed.
type CatalogRefreshed struct {
	Version  uint64
	Packages int
}

// LeadSubmitted is the payload of TopicLeadSubmitted.
type LeadSubmitted struct {
	Reference string
	PackageID string
	Email     string
}

// Handler reacts to an event. Handlers run on the publisher's goroutine.
type Handler func(ctx context.Context, e Event)

type subscription struct {
	id      uint64
	handler Handler
}

// Bus dispatches events to subscribers in subscription order.
type Bus struct {
	mu     sync.RWMutex
	subs   map[Topic][]subscription
	nextID uint64
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[Topic][]subscription)}
}

// Subscribe registers h for topic and returns a function that removes it.
func (b *Bus) Subscribe(topic Topic, h Handler) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subs[topic] = append(b.subs[topic], subscription{id: id, handler: h})

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(topic, id) })
	}
}

func (b *Bus) remove(topic Topic, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.subs[topic]
	for i, s := range subs {
		if s.id == id {
			b.subs[topic] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

// Publish delivers an event to every current subscriber of topic. A
// panicking handler is logged and does not stop delivery to the others.
func (b *Bus) Publish(ctx context.Context, topic Topic, payload any) {
	b.mu.RLock()
	subs := b.subs[topic]
	b.mu.RUnlock()

	e := Event{Topic: topic, Payload: payload, OccurredAt: time.Now()}
	for _, s := range subs {
		b.deliver(ctx, s, e)
	}
}

func (b *Bus) deliver(ctx context.Context, s subscription, e Event) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Str("topic", string(e.Topic)).
				Str("panic", fmt.Sprint(r)).
				Msg("Event handler panicked")
		}
	}()
	s.handler(ctx, e)
}

// Subscribers returns the number of handlers registered for topic.
func (b *Bus) Subscribers(topic Topic) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[topic])
}
