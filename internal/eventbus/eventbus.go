package eventbus

import (
	"runtime/debug"
	"sync"

	"github.com/charmbracelet/log"

	"scrollgrip/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventScrollbarInitialized = domain.EventScrollbarInitialized
	EventScrollbarUpdated     = domain.EventScrollbarUpdated
	EventDragStarted          = domain.EventDragStarted
	EventDragEnded            = domain.EventDragEnded
	EventHoverChanged         = domain.EventHoverChanged
	EventTrackStepped         = domain.EventTrackStepped
	EventDirectionChanged     = domain.EventDirectionChanged
	EventError                = domain.EventError
	EventConfigLoaded         = domain.EventConfigLoaded
	EventConfigSaved          = domain.EventConfigSaved
)

// Re-export domain event types
type AfterInitEvent = domain.AfterInitEvent
type AfterUpdateEvent = domain.AfterUpdateEvent
type DragStartedEvent = domain.DragStartedEvent
type DragEndedEvent = domain.DragEndedEvent
type HoverChangedEvent = domain.HoverChangedEvent
type TrackSteppedEvent = domain.TrackSteppedEvent
type DirectionChangedEvent = domain.DirectionChangedEvent
type ErrorEvent = domain.ErrorEvent
type ConfigLoadedEvent = domain.ConfigLoadedEvent
type ConfigSavedEvent = domain.ConfigSavedEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
}

type subscription struct {
	id      uint64
	handler EventHandler
}

// bus is the concrete implementation of EventBus. Handlers run synchronously
// on the publisher's goroutine, in subscription order, so events are seen in
// exactly the order they were published.
type bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]subscription
	nextID   uint64
	logger   *log.Logger
}

// New creates a new event bus
func New() EventBus {
	return NewWithLogger(nil)
}

// NewWithLogger creates a new event bus that logs through logger
func NewWithLogger(logger *log.Logger) EventBus {
	if logger == nil {
		logger = log.Default()
	}
	return &bus{
		handlers: make(map[EventType][]subscription),
		logger:   logger,
	}
}

// Publish delivers an event to all subscribers
func (b *bus) Publish(event DomainEvent) {
	switch event.Type() {
	case EventScrollbarUpdated, EventTrackStepped, EventHoverChanged:
		// too frequent to log
	default:
		b.logger.Debug("publishing event", "type", event.Type())
	}

	// Copy so handlers can subscribe/unsubscribe while we dispatch
	b.mu.RLock()
	subs := make([]subscription, len(b.handlers[event.Type()]))
	copy(subs, b.handlers[event.Type()])
	b.mu.RUnlock()

	for _, s := range subs {
		b.call(s.handler, event)
	}
}

func (b *bus) call(h EventHandler, event DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event handler panic", "type", event.Type(), "panic", r, "stack", string(debug.Stack()))
		}
	}()
	h(event)
}

// Subscribe subscribes to events of a specific type
// Returns an unsubscribe function
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[eventType]
		for i, s := range subs {
			if s.id == id {
				b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
	}
}

// NullBus drops every event. Used when no bus is wired in.
type NullBus struct{}

func (NullBus) Publish(DomainEvent) {}

func (NullBus) Subscribe(EventType, EventHandler) func() { return func() {} }
