package usecases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samirrijal/crestfield/internal/core/domain"
	"github.com/samirrijal/crestfield/internal/core/ports"
	"github.com/samirrijal/crestfield/internal/pkg/metrics"
	"github.com/samirrijal/crestfield/internal/pkg/telemetry"
)

// RouteOptions bounds origin acquisition and fixes the route request shape.
type RouteOptions struct {
	GeolocationTimeout time.Duration
	MaxPositionAge     time.Duration
	UnitSystem         string
}

// RouteService plans driving routes from the caller's position to a station.
type RouteService struct {
	computer ports.RouteComputer
	opts     RouteOptions
	now      func() time.Time
}

// NewRouteService creates a new RouteService.
func NewRouteService(computer ports.RouteComputer, opts RouteOptions) *RouteService {
	if opts.GeolocationTimeout <= 0 {
		opts.GeolocationTimeout = 10 * time.Second
	}
	if opts.MaxPositionAge <= 0 {
		opts.MaxPositionAge = 5 * time.Minute
	}
	if opts.UnitSystem == "" {
		opts.UnitSystem = "metric"
	}
	return &RouteService{computer: computer, opts: opts, now: time.Now}
}

// ResolveOrigin asks src for the current position within the geolocation timeout.
// Denial, timeout, stale or invalid positions fall back to center; fallback is then true.
func (s *RouteService) ResolveOrigin(ctx context.Context, src ports.PositionSource, center domain.GeoPoint) (origin domain.GeoPoint, fallback bool) {
	ctx, span := telemetry.StartSpan(ctx, telemetry.SpanOriginResolve)
	defer span.End()

	reason := s.acquire(ctx, src, &origin)
	if reason == "" {
		return origin, false
	}
	span.SetAttributes(attribute.String("fallback.reason", reason))
	metrics.OriginFallbacks.WithLabelValues(reason).Inc()
	slog.DebugContext(ctx, "route origin fell back to map center", "reason", reason)
	return center, true
}

func (s *RouteService) acquire(ctx context.Context, src ports.PositionSource, out *domain.GeoPoint) (reason string) {
	if src == nil {
		return "unsupported"
	}
	ctx, cancel := context.WithTimeout(ctx, s.opts.GeolocationTimeout)
	defer cancel()

	pos, err := src.CurrentPosition(ctx)
	switch {
	case errors.Is(err, domain.ErrPermissionDenied):
		return "denied"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case err != nil:
		return "unavailable"
	case pos == nil || !pos.Point.Valid():
		return "invalid"
	case !pos.Timestamp.IsZero() && s.now().Sub(pos.Timestamp) > s.opts.MaxPositionAge:
		return "stale"
	}
	*out = pos.Point
	return ""
}

// Plan resolves an origin and computes a driving route to station. On failure the
// returned error wraps domain.ErrRouteUnavailable.
func (s *RouteService) Plan(ctx context.Context, station domain.Station, src ports.PositionSource, center domain.GeoPoint) (_ *domain.Route, err error) {
	start := time.Now()
	ctx, span := telemetry.StartSpan(ctx, telemetry.SpanRoutePlan, attribute.Int("station.id", station.ID))
	defer func() {
		telemetry.EndSpan(span, err)
		metrics.RouteRequests.WithLabelValues(metrics.Outcome(err)).Inc()
		metrics.RouteDuration.Observe(time.Since(start).Seconds())
	}()

	origin, fallback := s.ResolveOrigin(ctx, src, center)
	return s.Compute(ctx, station, origin, fallback)
}

// Compute requests a driving route from origin to station.
func (s *RouteService) Compute(ctx context.Context, station domain.Station, origin domain.GeoPoint, originFallback bool) (*domain.Route, error) {
	ctx, span := telemetry.StartSpan(ctx, telemetry.SpanRouteCompute)
	res, err := s.computer.ComputeRoute(ctx, ports.RouteRequest{
		Origin:      origin,
		Destination: station.Coordinates,
		TravelMode:  "driving",
		UnitSystem:  s.opts.UnitSystem,
	})
	telemetry.EndSpan(span, err)
	if err != nil {
		if errors.Is(err, domain.ErrRouteUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrRouteUnavailable, err)
	}
	if res == nil || len(res.Path) < 2 {
		return nil, fmt.Errorf("%w: empty route geometry", domain.ErrRouteUnavailable)
	}

	viewport, _ := domain.BoundsOf(res.Path)
	return &domain.Route{
		StationID:      station.ID,
		Origin:         origin,
		OriginFallback: originFallback,
		Destination:    station.Coordinates,
		Path:           domain.GeoLineString{Coordinates: res.Path},
		Viewport:       viewport,
		DistanceMeters: res.DistanceMeters,
		Duration:       time.Duration(res.DurationSecs * float64(time.Second)),
		TravelMode:     "driving",
		UnitSystem:     s.opts.UnitSystem,
	}, nil
}
