// Package eventbus provides the synchronous EventBus implementation.
package eventbus

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/boombafm/boombafm/internal/domain"
	"github.com/boombafm/boombafm/internal/ports"
)

// SyncBus delivers events to handlers synchronously, in subscription order.
//
// Publishing is cheap and lock-free while handlers run: the subscriber list
// is copied under the read lock, then handlers are invoked outside it, so a
// handler may subscribe or unsubscribe without deadlocking.
//
// Handler panics are recovered and logged; one bad subscriber cannot take
// down the control loop.
type SyncBus struct {
	logger *slog.Logger

	mu     sync.RWMutex
	byType map[domain.EventType][]subscriber
	all    []subscriber
	closed bool
}

type subscriber struct {
	id      domain.SubscriptionID
	handler domain.EventHandler
}

// NewSyncBus creates a new synchronous event bus.
func NewSyncBus(logger *slog.Logger) *SyncBus {
	return &SyncBus{
		logger: logger,
		byType: make(map[domain.EventType][]subscriber),
	}
}

// Publish delivers an event to type subscribers, then wildcard subscribers.
// A nil event or a closed bus is a no-op.
func (b *SyncBus) Publish(event domain.Event) {
	if event == nil {
		return
	}

	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return
	}
	targets := make([]subscriber, 0, len(b.byType[event.Type()])+len(b.all))
	targets = append(targets, b.byType[event.Type()]...)
	targets = append(targets, b.all...)
	b.mu.RUnlock()

	for _, sub := range targets {
		b.deliver(sub.handler, event)
	}
}

func (b *SyncBus) deliver(handler domain.EventHandler, event domain.Event) {
	defer func() {
		if r := recover(); r != nil {
			if b.logger != nil {
				b.logger.Error("event handler panicked",
					slog.Any("panic", r),
					slog.String("event_type", string(event.Type())))
			}
		}
	}()
	handler(event)
}

// Subscribe registers a handler for one event type and returns its ID.
func (b *SyncBus) Subscribe(eventType domain.EventType, handler domain.EventHandler) domain.SubscriptionID {
	if handler == nil {
		panic("event handler cannot be nil")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		panic("cannot subscribe to closed event bus")
	}

	id := domain.SubscriptionID(uuid.NewString())
	b.byType[eventType] = append(b.byType[eventType], subscriber{id: id, handler: handler})
	return id
}

// SubscribeAll registers a handler that receives every event.
func (b *SyncBus) SubscribeAll(handler domain.EventHandler) domain.SubscriptionID {
	if handler == nil {
		panic("event handler cannot be nil")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		panic("cannot subscribe to closed event bus")
	}

	id := domain.SubscriptionID(uuid.NewString())
	b.all = append(b.all, subscriber{id: id, handler: handler})
	return id
}

// Unsubscribe removes a subscription. Unknown IDs are a no-op.
func (b *SyncBus) Unsubscribe(id domain.SubscriptionID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for eventType, subs := range b.byType {
		if filtered, removed := drop(subs, id); removed {
			b.byType[eventType] = filtered
			return
		}
	}
	if filtered, removed := drop(b.all, id); removed {
		b.all = filtered
	}
}

func drop(subs []subscriber, id domain.SubscriptionID) ([]subscriber, bool) {
	for i, sub := range subs {
		if sub.id == id {
			return append(subs[:i], subs[i+1:]...), true
		}
	}
	return subs, false
}

// Close shuts the bus down and drops all subscriptions.
// Returns an error when already closed.
func (b *SyncBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return errors.New("event bus already closed")
	}

	b.closed = true
	b.byType = make(map[domain.EventType][]subscriber)
	b.all = nil
	return nil
}

// Verify that SyncBus implements the EventBus interface
var _ ports.EventBus = (*SyncBus)(nil)
