// Package kafkatest provides an in-memory event publisher for tests.
package kafkatest

import (
	"context"
	"sync"

	"github.com/tair/storefront/kafka"
)

// Recorder keeps every published event
type Recorder struct {
	mu     sync.Mutex
	events []kafka.Event
	Err    error
}

func (r *Recorder) Publish(_ context.Context, event kafka.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.events = append(r.events, event)
	return nil
}

// Types returns the event types in publish order
func (r *Recorder) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]string, 0, len(r.events))
	for _, e := range r.events {
		types = append(types, e.EventType)
	}
	return types
}

// Events returns a copy of the published events
func (r *Recorder) Events() []kafka.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]kafka.Event(nil), r.events...)
}
