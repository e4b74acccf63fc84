package game

import (
	"sync"
	"time"

	"github.com/lox/golfforbots/internal/geom"
)

// GameEvent represents any event that occurs while playing a hole
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// StrokeEvent is published once a stroke has been resolved
type StrokeEvent struct {
	Result    StrokeResult
	timestamp time.Time
}

func (e StrokeEvent) EventType() EventType { return EventTypeStroke }
func (e StrokeEvent) Timestamp() time.Time { return e.timestamp }

// NewStrokeEvent creates a new stroke event
func NewStrokeEvent(result StrokeResult) StrokeEvent {
	return StrokeEvent{Result: result, timestamp: time.Now()}
}

// PenaltyEvent is published when a ball finishes out of bounds or in water
type PenaltyEvent struct {
	Result    StrokeResult
	Strokes   int
	timestamp time.Time
}

func (e PenaltyEvent) EventType() EventType { return EventTypePenalty }
func (e PenaltyEvent) Timestamp() time.Time { return e.timestamp }

// NewPenaltyEvent creates a new penalty event
func NewPenaltyEvent(result StrokeResult, strokes int) PenaltyEvent {
	return PenaltyEvent{Result: result, Strokes: strokes, timestamp: time.Now()}
}

// HoleCompleteEvent is published when the ball reaches the green
type HoleCompleteEvent struct {
	Hole      int
	Par       int
	Score     int
	timestamp time.Time
}

func (e HoleCompleteEvent) EventType() EventType { return EventTypeHoleComplete }
func (e HoleCompleteEvent) Timestamp() time.Time { return e.timestamp }

// ToPar returns the score relative to par.
func (e HoleCompleteEvent) ToPar() int { return e.Score - e.Par }

// NewHoleCompleteEvent creates a new hole complete event
func NewHoleCompleteEvent(hole, par, score int) HoleCompleteEvent {
	return HoleCompleteEvent{Hole: hole, Par: par, Score: score, timestamp: time.Now()}
}

// NewHoleEvent is published when a fresh layout has been generated
type NewHoleEvent struct {
	Hole       int
	Par        int
	Difficulty int
	Tee        geom.Point
	Cup        geom.Point
	Attempts   int
	timestamp  time.Time
}

func (e NewHoleEvent) EventType() EventType { return EventTypeNewHole }
func (e NewHoleEvent) Timestamp() time.Time { return e.timestamp }

// NewNewHoleEvent creates a new hole start event
func NewNewHoleEvent(hole, par, difficulty int, tee, cup geom.Point, attempts int) NewHoleEvent {
	return NewHoleEvent{
		Hole:       hole,
		Par:        par,
		Difficulty: difficulty,
		Tee:        tee,
		Cup:        cup,
		Attempts:   attempts,
		timestamp:  time.Now(),
	}
}

// ClubChangeEvent is published when a different club is selected
type ClubChangeEvent struct {
	Index     int
	Name      string
	timestamp time.Time
}

func (e ClubChangeEvent) EventType() EventType { return EventTypeClubChange }
func (e ClubChangeEvent) Timestamp() time.Time { return e.timestamp }

// NewClubChangeEvent creates a new club change event
func NewClubChangeEvent(index int, name string) ClubChangeEvent {
	return ClubChangeEvent{Index: index, Name: name, timestamp: time.Now()}
}

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// SubscriberFunc adapts a function to EventSubscriber.
type SubscriberFunc func(GameEvent)

func (f SubscriberFunc) OnEvent(event GameEvent) { f(event) }

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a basic in-memory event bus implementation
type SimpleEventBus struct {
	mu          sync.RWMutex
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() EventBus {
	return &SimpleEventBus{
		subscribers: make([]EventSubscriber, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events. Subscribers must
// be comparable; function adapters cannot be unsubscribed.
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	bus.mu.RLock()
	subs := make([]EventSubscriber, len(bus.subscribers))
	copy(subs, bus.subscribers)
	bus.mu.RUnlock()

	for _, subscriber := range subs {
		subscriber.OnEvent(event)
	}
}
