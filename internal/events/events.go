// Package events distributes progress notifications from long-running
// search and simulation batches to any interested UI or logging layer.
// Reporting is an observational side channel: observers run on a single
// dispatch path so they never contend with simulation workers.
package events

import (
	"log"
	"sync"
)

// Event types dispatched by the toolkit.
const (
	TypeSearchProgress     = "search:progress"
	TypeSimulationProgress = "simulation:progress"
	TypeRunStarted         = "run:started"
	TypeRunCompleted       = "run:completed"
)

// Event is one progress notification with a typed payload.
type Event struct {
	Type string
	Data any
}

// SearchProgress is the payload for search:progress events.
type SearchProgress struct {
	Examined int // complete compositions examined so far
	Limit    int // brute-force cap, zero when unlimited
}

// SimulationProgress is the payload for simulation:progress events.
type SimulationProgress struct {
	Done  int // playouts finished
	Total int // decklists x games
}

// RunStarted is the payload for run:started events.
type RunStarted struct {
	RunID string
	Decks int
	Games int
}

// RunCompleted is the payload for run:completed events.
type RunCompleted struct {
	RunID string
	Decks int
}

// Observer receives dispatched events.
type Observer interface {
	// OnEvent handles one event. Errors are logged, not propagated.
	OnEvent(event Event) error

	// Name identifies the observer in logs.
	Name() string

	// ShouldHandle filters event types the observer cares about.
	ShouldHandle(eventType string) bool
}

// Dispatcher fans events out to registered observers sequentially, in
// registration order. Safe for concurrent use; a nil *Dispatcher drops
// all events, so callers can pass one through unconditionally.
type Dispatcher struct {
	mu        sync.RWMutex
	observers []Observer
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Register adds an observer for all future events.
func (d *Dispatcher) Register(observer Observer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.observers = append(d.observers, observer)
}

// Dispatch delivers the event to every observer that wants it. A failing
// observer is logged and the rest still run.
func (d *Dispatcher) Dispatch(event Event) {
	if d == nil {
		return
	}
	d.mu.RLock()
	observers := make([]Observer, len(d.observers))
	copy(observers, d.observers)
	d.mu.RUnlock()

	for _, observer := range observers {
		if !observer.ShouldHandle(event.Type) {
			continue
		}
		if err := observer.OnEvent(event); err != nil {
			log.Printf("[events] observer %s failed on %s: %v", observer.Name(), event.Type, err)
		}
	}
}

// ObserverFunc adapts a function to the Observer interface, handling
// every event type.
type ObserverFunc struct {
	ObserverName string
	Fn           func(Event) error
}

func (o ObserverFunc) OnEvent(event Event) error          { return o.Fn(event) }
func (o ObserverFunc) Name() string                       { return o.ObserverName }
func (o ObserverFunc) ShouldHandle(eventType string) bool { return true }
