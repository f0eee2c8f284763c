package mapview

import (
	"sync"
	"time"

	"github.com/samirrijal/crestfield/internal/core/domain"
)

// EventType names an adapter notification.
type EventType string

const (
	EventStateChanged    EventType = "state_changed"
	EventStationSelected EventType = "station_selected"
	EventRouteComputing  EventType = "route_computing"
	EventRouteDisplayed  EventType = "route_displayed"
	EventRouteFailed     EventType = "route_failed"
)

// Event is delivered to the subscribers of a single adapter.
type Event struct {
	Type       EventType       `json:"type"`
	State      State           `json:"state"`
	RouteState RouteState      `json:"route_state"`
	StationID  int             `json:"station_id,omitempty"`
	Station    *domain.Station `json:"station,omitempty"`
	Route      *domain.Route   `json:"route,omitempty"`
	Error      string          `json:"error,omitempty"`
	At         time.Time       `json:"at"`
}

// emitter fans events out to the listeners registered on one adapter.
// Listeners run synchronously on the emitting goroutine and must not block.
type emitter struct {
	mu        sync.Mutex
	next      int
	listeners map[int]func(Event)
}

func (e *emitter) subscribe(fn func(Event)) func() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.listeners == nil {
		e.listeners = make(map[int]func(Event))
	}
	id := e.next
	e.next++
	e.listeners[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Lock()
			delete(e.listeners, id)
			e.mu.Unlock()
		})
	}
}

func (e *emitter) emit(ev Event) {
	e.mu.Lock()
	fns := make([]func(Event), 0, len(e.listeners))
	for _, fn := range e.listeners {
		fns = append(fns, fn)
	}
	e.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

func (e *emitter) reset() {
	e.mu.Lock()
	e.listeners = nil
	e.mu.Unlock()
}

func (e *emitter) len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.listeners)
}
