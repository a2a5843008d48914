package kafka

import (
	"context"
	"strings"
	"time"

	"github.com/tair/storefront/pkg/logger"
)

// Event is a catalog or basket change, published after the change commits
type Event struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	ProductID uint      `json:"product_id"`
	Quantity  int       `json:"quantity,omitempty"`
	Stock     int       `json:"stock"`
	Timestamp time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeProductCreated    = "product.created"
	EventTypeProductUpdated    = "product.updated"
	EventTypeProductDeleted    = "product.deleted"
	EventTypeBasketItemAdded   = "basket.item_added"
	EventTypeBasketItemRemoved = "basket.item_removed"
)

// Kafka topics
const (
	TopicProductEvents = "product-events"
	TopicBasketEvents  = "basket-events"
)

// Topic returns the topic an event type is published on
func (e Event) Topic() string {
	if strings.HasPrefix(e.EventType, "basket.") {
		return TopicBasketEvents
	}
	return TopicProductEvents
}

// EventPublisher publishes domain events
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}

// NoopPublisher drops events; used when no brokers are configured
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) error { return nil }

// PublishBestEffort publishes an event for a change that has already
// committed. A failure is logged and does not fail the request.
func PublishBestEffort(ctx context.Context, publisher EventPublisher, event Event) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, event); err != nil {
		logger.Warn(ctx).
			Err(err).
			Str("event_type", event.EventType).
			Uint("product_id", event.ProductID).
			Msg("Event not published")
	}
}
