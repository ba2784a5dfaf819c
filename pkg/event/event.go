// pkg/event/event.go
package event

import (
	"sync"

	"github.com/opd-ai/go-starship/pkg/physics"
)

// Type represents the type of event
type Type string

// Simulation event types
const (
	SimulationStarted Type = "simulation_started"
	SimulationStopped Type = "simulation_stopped"
	FuelDepleted      Type = "fuel_depleted"
	ShipWrapped       Type = "ship_wrapped"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// SubscriptionID identifies a registered handler so it can be removed
type SubscriptionID uint64

type subscription struct {
	id SubscriptionID
	fn Handler
}

// Bus manages event subscriptions and dispatching
type Bus struct {
	handlers map[Type][]subscription
	nextID   SubscriptionID
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]subscription),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type and returns
// the id to unsubscribe with
func (b *Bus) Subscribe(eventType Type, handler Handler) SubscriptionID {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, fn: handler})
	return id
}

// Unsubscribe removes a previously registered handler
func (b *Bus) Unsubscribe(eventType Type, id SubscriptionID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.handlers[eventType]
	for i, sub := range subs {
		if sub.id == id {
			b.handlers[eventType] = append(subs[:i], subs[i+1:]...)
			return
		}
	}
}

// Publish sends an event to all subscribed handlers. Handlers run on
// the publishing goroutine, in subscription order, outside the bus
// lock so they may subscribe or unsubscribe freely.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	subs := b.handlers[event.GetType()]
	fns := make([]Handler, len(subs))
	for i, sub := range subs {
		fns[i] = sub.fn
	}
	b.mu.RUnlock()

	for _, fn := range fns {
		fn(event)
	}
}

// Specific event implementations

// SimEvent carries the tick a lifecycle or fuel event occurred on
type SimEvent struct {
	BaseEvent
	Tick uint64
}

// NewSimEvent creates a new simulation event
func NewSimEvent(eventType Type, source interface{}, tick uint64) *SimEvent {
	return &SimEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		Tick: tick,
	}
}

// WrapEvent describes the ship crossing a screen edge and re-entering
// through the opposite one
type WrapEvent struct {
	BaseEvent
	Tick     uint64
	From     physics.Vector2D
	To       physics.Vector2D
	WrappedX bool
	WrappedY bool
}

// NewWrapEvent creates a new wrap event
func NewWrapEvent(source interface{}, tick uint64, from, to physics.Vector2D, wrappedX, wrappedY bool) *WrapEvent {
	return &WrapEvent{
		BaseEvent: BaseEvent{
			EventType: ShipWrapped,
			Source:    source,
		},
		Tick:     tick,
		From:     from,
		To:       to,
		WrappedX: wrappedX,
		WrappedY: wrappedY,
	}
}
