package usecases_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/samirrijal/crestfield/internal/core/domain"
	"github.com/samirrijal/crestfield/internal/core/ports"
	"github.com/samirrijal/crestfield/internal/core/usecases"
)

var center = domain.GeoPoint{Lat: 9.082, Lon: 8.6753}

func TestRouteService_Plan_UsesPosition(t *testing.T) {
	comp := &mockComputer{}
	svc := usecases.NewRouteService(comp, usecases.RouteOptions{})
	here := domain.GeoPoint{Lat: 6.6, Lon: 3.35}

	route, err := svc.Plan(context.Background(), domain.DefaultDirectory()[0],
		positionFunc(func(ctx context.Context) (*domain.Position, error) {
			return &domain.Position{Point: here, Timestamp: time.Now()}, nil
		}), center)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if route.OriginFallback || route.Origin != here {
		t.Errorf("expected device origin, got %+v (fallback=%v)", route.Origin, route.OriginFallback)
	}
	if comp.requests[0].TravelMode != "driving" || comp.requests[0].UnitSystem != "metric" {
		t.Errorf("unexpected request %+v", comp.requests[0])
	}
	if route.Duration != 3*time.Minute {
		t.Errorf("expected 3m, got %v", route.Duration)
	}
	if route.Viewport.MinLat != 6.5952 || route.Viewport.MaxLat != 6.6 {
		t.Errorf("viewport not fitted to path: %+v", route.Viewport)
	}
}

func TestRouteService_Plan_DeniedFallsBackToCenter(t *testing.T) {
	comp := &mockComputer{}
	svc := usecases.NewRouteService(comp, usecases.RouteOptions{})

	route, err := svc.Plan(context.Background(), domain.DefaultDirectory()[1],
		positionFunc(func(ctx context.Context) (*domain.Position, error) {
			return nil, domain.ErrPermissionDenied
		}), center)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !route.OriginFallback || route.Origin != center {
		t.Errorf("expected center fallback, got %+v", route.Origin)
	}
	if comp.requests[0].Origin != center {
		t.Errorf("route requested from %+v", comp.requests[0].Origin)
	}
}

func TestRouteService_ResolveOrigin_Timeout(t *testing.T) {
	svc := usecases.NewRouteService(&mockComputer{}, usecases.RouteOptions{GeolocationTimeout: 20 * time.Millisecond})

	origin, fallback := svc.ResolveOrigin(context.Background(),
		positionFunc(func(ctx context.Context) (*domain.Position, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		}), center)
	if !fallback || origin != center {
		t.Errorf("expected center fallback on timeout, got %+v", origin)
	}
}

func TestRouteService_ResolveOrigin_StalePosition(t *testing.T) {
	svc := usecases.NewRouteService(&mockComputer{}, usecases.RouteOptions{MaxPositionAge: time.Minute})

	_, fallback := svc.ResolveOrigin(context.Background(),
		positionFunc(func(ctx context.Context) (*domain.Position, error) {
			return &domain.Position{Point: domain.GeoPoint{Lat: 6, Lon: 3}, Timestamp: time.Now().Add(-time.Hour)}, nil
		}), center)
	if !fallback {
		t.Error("expected stale position to fall back")
	}
}

func TestRouteService_ResolveOrigin_NilSource(t *testing.T) {
	svc := usecases.NewRouteService(&mockComputer{}, usecases.RouteOptions{})
	origin, fallback := svc.ResolveOrigin(context.Background(), nil, center)
	if !fallback || origin != center {
		t.Errorf("expected center fallback, got %+v", origin)
	}
}

func TestRouteService_Plan_ComputeFailure(t *testing.T) {
	comp := &mockComputer{computeFn: func(ctx context.Context, req ports.RouteRequest) (*ports.RouteResult, error) {
		return nil, errors.New("ZERO_RESULTS")
	}}
	svc := usecases.NewRouteService(comp, usecases.RouteOptions{})

	_, err := svc.Plan(context.Background(), domain.DefaultDirectory()[4], nil, center)
	if !errors.Is(err, domain.ErrRouteUnavailable) {
		t.Errorf("expected ErrRouteUnavailable, got %v", err)
	}
}

func TestRouteService_Plan_EmptyGeometry(t *testing.T) {
	comp := &mockComputer{computeFn: func(ctx context.Context, req ports.RouteRequest) (*ports.RouteResult, error) {
		return &ports.RouteResult{}, nil
	}}
	svc := usecases.NewRouteService(comp, usecases.RouteOptions{})

	_, err := svc.Plan(context.Background(), domain.DefaultDirectory()[4], nil, center)
	if !errors.Is(err, domain.ErrRouteUnavailable) {
		t.Errorf("expected ErrRouteUnavailable, got %v", err)
	}
}
