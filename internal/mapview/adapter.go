// Package mapview mediates between the locator page and the third-party mapping
// SDK. Each Adapter is one map mount: it owns its markers, popups, route overlay
// and listeners, and nothing is shared between mounts.
package mapview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/samirrijal/crestfield/internal/core/domain"
	"github.com/samirrijal/crestfield/internal/core/ports"
	"github.com/samirrijal/crestfield/internal/pkg/metrics"
)

// State is the SDK load state of a mount.
type State string

const (
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateError   State = "error"
)

// RouteState layers on top of StateReady and never affects markers.
type RouteState string

const (
	RouteIdle      RouteState = "idle"
	RouteComputing RouteState = "computing"
	RouteDisplayed RouteState = "displayed"
	RouteFailed    RouteState = "failed"
)

var (
	ErrClosed       = errors.New("map adapter closed")
	ErrNotRetryable = errors.New("map is not in error state")
	ErrSuperseded   = errors.New("route request superseded by a newer one")
)

// RoutePlanner resolves an origin and computes a route to a station.
type RoutePlanner interface {
	Plan(ctx context.Context, station domain.Station, src ports.PositionSource, center domain.GeoPoint) (*domain.Route, error)
}

// Options configures a mount. Routing enables the "show route" popup action.
type Options struct {
	Stations    []domain.Station
	Center      domain.GeoPoint
	Zoom        int
	LoadTimeout time.Duration
	Routing     bool
}

// Marker is one station pin.
type Marker struct {
	StationID int             `json:"station_id"`
	Title     string          `json:"title"`
	Position  domain.GeoPoint `json:"position"`
}

// View is a point-in-time copy of the adapter state.
type View struct {
	State          State           `json:"state"`
	Error          string          `json:"error,omitempty"`
	RetryAvailable bool            `json:"retry_available"`
	Center         domain.GeoPoint `json:"center"`
	Zoom           int             `json:"zoom"`
	Markers        []Marker        `json:"markers"`
	Selected       *domain.Station `json:"selected,omitempty"`
	RouteState     RouteState      `json:"route_state"`
	Route          *domain.Route   `json:"route,omitempty"`
	RouteError     string          `json:"route_error,omitempty"`
	Viewport       *domain.Bounds  `json:"viewport,omitempty"`
}

// Adapter is a single map mount.
type Adapter struct {
	opts    Options
	loader  ports.SDKLoader
	planner RoutePlanner
	events  emitter

	base context.Context
	stop context.CancelFunc
	wg   sync.WaitGroup

	mu         sync.Mutex
	closed     bool
	started    bool
	attempt    int
	settled    chan struct{}
	state      State
	loadErr    error
	markers    []Marker
	selected   *domain.Station
	routeState RouteState
	routeSeq   int
	route      *domain.Route
	routeErr   error
}

// New creates an adapter in the loading state. Call Load to start the SDK load.
func New(opts Options, loader ports.SDKLoader, planner RoutePlanner) *Adapter {
	if opts.LoadTimeout <= 0 {
		opts.LoadTimeout = 15 * time.Second
	}
	if opts.Zoom == 0 {
		opts.Zoom = domain.DefaultZoom(len(opts.Stations))
	}
	opts.Stations = domain.CloneStations(opts.Stations)

	base, stop := context.WithCancel(context.Background())
	return &Adapter{
		opts:       opts,
		loader:     loader,
		planner:    planner,
		base:       base,
		stop:       stop,
		settled:    make(chan struct{}),
		state:      StateLoading,
		routeState: RouteIdle,
	}
}

// Subscribe registers fn for this adapter's events and returns its unsubscribe func.
func (a *Adapter) Subscribe(fn func(Event)) (unsubscribe func()) {
	return a.events.subscribe(fn)
}

// Load starts the SDK load in the background. It is a no-op once a load has started.
// Values from ctx are kept; its cancellation is not, the load is bounded by
// the load timeout and Close.
func (a *Adapter) Load(ctx context.Context) error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return ErrClosed
	}
	if a.started {
		a.mu.Unlock()
		return nil
	}
	a.started = true
	a.mu.Unlock()

	a.startLoad(ctx)
	return nil
}

// Retry re-attempts the SDK load. Only valid from the error state.
func (a *Adapter) Retry(ctx context.Context) error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return ErrClosed
	}
	if a.state != StateError {
		a.mu.Unlock()
		return ErrNotRetryable
	}
	a.state = StateLoading
	a.loadErr = nil
	a.settled = make(chan struct{})
	a.mu.Unlock()

	a.emit(Event{Type: EventStateChanged})
	a.startLoad(ctx)
	return nil
}

func (a *Adapter) startLoad(ctx context.Context) {
	a.mu.Lock()
	a.attempt++
	attempt := a.attempt
	a.mu.Unlock()

	lctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.opts.LoadTimeout)
	stopOnClose := context.AfterFunc(a.base, cancel)

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		defer cancel()
		defer stopOnClose()

		err := a.loader.Load(lctx)
		if err != nil && !errors.Is(err, domain.ErrSDKUnavailable) && !errors.Is(err, domain.ErrMissingAPIKey) {
			err = fmt.Errorf("%w: %w", domain.ErrSDKUnavailable, err)
		}
		a.finishLoad(attempt, err)
	}()
}

func (a *Adapter) finishLoad(attempt int, err error) {
	a.mu.Lock()
	if a.closed || attempt != a.attempt {
		a.mu.Unlock()
		return
	}
	if err != nil {
		a.state = StateError
		a.loadErr = err
	} else {
		a.state = StateReady
		a.markers = make([]Marker, 0, len(a.opts.Stations))
		for _, st := range a.opts.Stations {
			a.markers = append(a.markers, Marker{StationID: st.ID, Title: st.Name, Position: st.Coordinates})
		}
	}
	settled := a.settled
	a.mu.Unlock()

	metrics.MapLoads.WithLabelValues(metrics.Outcome(err)).Inc()
	if err != nil {
		slog.Warn("mapping sdk load failed", "error", err)
	}
	a.emit(Event{Type: EventStateChanged})

	a.mu.Lock()
	closeOnce(settled)
	a.mu.Unlock()
}

// markSettled releases Settled waiters. Callers hold a.mu.
func (a *Adapter) markSettled() {
	closeOnce(a.settled)
}

func closeOnce(ch chan struct{}) {
	select {
	case <-ch:
	default:
		close(ch)
	}
}

// Settled blocks until the current load attempt finishes or ctx is done.
func (a *Adapter) Settled(ctx context.Context) (State, error) {
	a.mu.Lock()
	ch := a.settled
	a.mu.Unlock()

	select {
	case <-ch:
		return a.State(), nil
	case <-ctx.Done():
		return a.State(), ctx.Err()
	}
}

// State returns the current load state.
func (a *Adapter) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Station returns a copy of the mounted station with the given id.
func (a *Adapter) Station(id int) (domain.Station, error) {
	for _, st := range a.opts.Stations {
		if st.ID == id {
			return domain.CloneStation(st), nil
		}
	}
	return domain.Station{}, domain.ErrStationNotFound
}

// ClickMarker returns the popup for a station's marker.
func (a *Adapter) ClickMarker(id int) (Popup, error) {
	if err := a.requireReady(); err != nil {
		return Popup{}, err
	}
	st, err := a.Station(id)
	if err != nil {
		return Popup{}, err
	}
	return renderPopup(st, a.opts.Routing && a.planner != nil)
}

// SelectStation notifies subscribers that the user picked a station.
func (a *Adapter) SelectStation(id int) (domain.Station, error) {
	st, err := a.Station(id)
	if err != nil {
		return domain.Station{}, err
	}

	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return domain.Station{}, ErrClosed
	}
	sel := st
	a.selected = &sel
	a.mu.Unlock()

	out := domain.CloneStation(st)
	a.emit(Event{Type: EventStationSelected, StationID: id, Station: &out})
	return st, nil
}

// ShowRoute computes and displays a route to station id. src may be nil, in which
// case the map center is the origin. On failure the previous overlay is kept.
// Only the most recent request may change the overlay; older results get ErrSuperseded.
func (a *Adapter) ShowRoute(ctx context.Context, id int, src ports.PositionSource) (*domain.Route, error) {
	if a.planner == nil {
		return nil, fmt.Errorf("%w: routing disabled", domain.ErrRouteUnavailable)
	}
	if err := a.requireReady(); err != nil {
		return nil, err
	}
	st, err := a.Station(id)
	if err != nil {
		return nil, err
	}

	rctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stopOnClose := context.AfterFunc(a.base, cancel)
	defer stopOnClose()

	a.mu.Lock()
	a.routeSeq++
	seq := a.routeSeq
	a.routeState = RouteComputing
	a.mu.Unlock()
	a.emit(Event{Type: EventRouteComputing, StationID: id})

	route, err := a.planner.Plan(rctx, st, src, a.opts.Center)

	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil, ErrClosed
	}
	if seq != a.routeSeq {
		a.mu.Unlock()
		slog.DebugContext(ctx, "stale route dropped", "station_id", id)
		return nil, ErrSuperseded
	}
	if err != nil {
		a.routeState = RouteFailed
		a.routeErr = err
		a.mu.Unlock()
		slog.WarnContext(ctx, "route computation failed", "station_id", id, "error", err)
		a.emit(Event{Type: EventRouteFailed, StationID: id, Error: err.Error()})
		return nil, err
	}
	a.routeState = RouteDisplayed
	a.routeErr = nil
	a.route = route
	a.mu.Unlock()

	a.emit(Event{Type: EventRouteDisplayed, StationID: id, Route: route})
	return route, nil
}

func (a *Adapter) requireReady() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return ErrClosed
	}
	if a.state != StateReady {
		return domain.ErrMapNotReady
	}
	return nil
}

// View returns a snapshot of the mount.
func (a *Adapter) View() View {
	a.mu.Lock()
	defer a.mu.Unlock()
	v := View{
		State:          a.state,
		RetryAvailable: a.state == StateError && !a.closed,
		Center:         a.opts.Center,
		Zoom:           a.opts.Zoom,
		Markers:        append([]Marker(nil), a.markers...),
		RouteState:     a.routeState,
		Route:          a.route,
	}
	if a.loadErr != nil {
		v.Error = a.loadErr.Error()
	}
	if a.routeErr != nil {
		v.RouteError = a.routeErr.Error()
	}
	if a.selected != nil {
		s := domain.CloneStation(*a.selected)
		v.Selected = &s
	}
	if a.route != nil {
		b := a.route.Viewport
		v.Viewport = &b
	}
	return v
}

// Close cancels in-flight work, drops every listener and detaches markers and
// the route overlay. It is safe to call more than once.
func (a *Adapter) Close() {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.closed = true
	a.markSettled()
	a.markers = nil
	a.route = nil
	a.selected = nil
	a.mu.Unlock()

	a.events.reset()
	a.stop()
	a.wg.Wait()
}

// Listeners returns the number of registered listeners.
func (a *Adapter) Listeners() int { return a.events.len() }

func (a *Adapter) emit(ev Event) {
	a.mu.Lock()
	ev.State = a.state
	ev.RouteState = a.routeState
	a.mu.Unlock()
	ev.At = time.Now().UTC()
	a.events.emit(ev)
}
