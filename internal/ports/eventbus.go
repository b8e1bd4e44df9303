// Package ports defines the EventBus interface for event-driven communication.
// The event bus decouples the core state machine from frontends and logging.
package ports

import (
	"github.com/boombafm/boombafm/internal/domain"
)

// EventBus is the interface for publishing and subscribing to events.
//
// Multiple subscribers can listen to the same event type, and subscribers do
// not know about publishers. Implementations must be thread-safe: events may
// be published from the control loop while a frontend subscribes or
// unsubscribes concurrently.
type EventBus interface {
	// Publish delivers an event to all subscribers of its type.
	// Handlers must process events quickly or hand off to their own
	// goroutine; slow handlers block the publisher.
	Publish(event domain.Event)

	// Subscribe registers a handler for events of the specified type.
	// The same handler can be registered multiple times, each registration
	// receiving its own SubscriptionID.
	Subscribe(eventType domain.EventType, handler domain.EventHandler) domain.SubscriptionID

	// Unsubscribe removes a previously registered handler.
	// Unknown or already removed IDs are a no-op.
	Unsubscribe(id domain.SubscriptionID)

	// SubscribeAll registers a handler that receives every event.
	// Useful for logging and debugging.
	SubscribeAll(handler domain.EventHandler) domain.SubscriptionID

	// Close shuts the bus down and drops all subscriptions.
	Close() error
}
