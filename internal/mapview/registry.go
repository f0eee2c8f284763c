package mapview

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/samirrijal/crestfield/internal/core/domain"
	"github.com/samirrijal/crestfield/internal/core/ports"
	"github.com/samirrijal/crestfield/internal/pkg/metrics"
)

// Session is a mounted adapter addressable by id.
type Session struct {
	ID string
	*Adapter
	forward func()
}

// RegistryConfig holds what every new mount needs.
type RegistryConfig struct {
	IdleTTL     time.Duration
	LoadTimeout time.Duration
	Center      domain.GeoPoint
	Loader      ports.SDKLoader
	Planner     RoutePlanner
}

// Registry tracks live map sessions. Idle sessions expire and are closed.
type Registry struct {
	cfg       RegistryConfig
	sessions  *cache.Cache
	publisher ports.EventPublisher
}

// NewRegistry creates a registry. publisher may be nil, in which case events
// stay local to each session's own subscribers.
func NewRegistry(cfg RegistryConfig, publisher ports.EventPublisher) *Registry {
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 30 * time.Minute
	}
	c := cache.New(cfg.IdleTTL, cfg.IdleTTL/2)
	c.OnEvicted(func(id string, v interface{}) {
		if s, ok := v.(*Session); ok {
			s.forward()
			s.Close()
			metrics.MapSessionsActive.Dec()
			slog.Debug("map session closed", "session_id", id)
		}
	})
	return &Registry{cfg: cfg, sessions: c, publisher: publisher}
}

// Mount creates a session over stations and starts its SDK load.
func (r *Registry) Mount(ctx context.Context, stations []domain.Station) (*Session, error) {
	a := New(Options{
		Stations:    stations,
		Center:      r.cfg.Center,
		LoadTimeout: r.cfg.LoadTimeout,
		Routing:     r.cfg.Planner != nil,
	}, r.cfg.Loader, r.cfg.Planner)

	s := &Session{ID: uuid.NewString(), Adapter: a, forward: func() {}}
	if r.publisher != nil {
		s.forward = a.Subscribe(func(ev Event) {
			data, err := json.Marshal(ev)
			if err != nil {
				return
			}
			if err := r.publisher.PublishMapEvent(context.Background(), s.ID, data); err != nil {
				slog.Warn("publish map event", "session_id", s.ID, "error", err)
			}
		})
	}

	r.sessions.SetDefault(s.ID, s)
	metrics.MapSessionsActive.Inc()

	if err := a.Load(ctx); err != nil {
		r.sessions.Delete(s.ID)
		return nil, err
	}
	return s, nil
}

// Get returns a live session and refreshes its idle timer.
func (r *Registry) Get(id string) (*Session, error) {
	v, ok := r.sessions.Get(id)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	s := v.(*Session)
	r.sessions.SetDefault(id, s)
	return s, nil
}

// Unmount closes and forgets a session.
func (r *Registry) Unmount(id string) error {
	if _, ok := r.sessions.Get(id); !ok {
		return domain.ErrSessionNotFound
	}
	r.sessions.Delete(id)
	return nil
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	return r.sessions.ItemCount()
}

// Close unmounts every session.
func (r *Registry) Close() {
	for id := range r.sessions.Items() {
		r.sessions.Delete(id)
	}
}
