package ports

import (
	"context"

	"github.com/samirrijal/crestfield/internal/core/domain"
)

// InquirySink is the submission boundary for validated contact and quote forms.
type InquirySink interface {
	Submit(ctx context.Context, inq *domain.Inquiry) error
}

// EventPublisher publishes domain events to a message broker.
type EventPublisher interface {
	PublishInquiry(ctx context.Context, inq *domain.Inquiry) error
	PublishMapEvent(ctx context.Context, sessionID string, data []byte) error
}

// EventSubscriber subscribes to domain events from a message broker.
type EventSubscriber interface {
	SubscribeInquiries(ctx context.Context, handler func(ctx context.Context, inq *domain.Inquiry) error) error
}

// CacheService provides read-through caching.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}

// NotificationService sends notifications to the sales team.
type NotificationService interface {
	NotifyInquiry(ctx context.Context, inq *domain.Inquiry) error
}

// SDKLoader loads the third-party mapping SDK.
type SDKLoader interface {
	Load(ctx context.Context) error
}

// RouteRequest asks for a route between two points.
type RouteRequest struct {
	Origin      domain.GeoPoint
	Destination domain.GeoPoint
	TravelMode  string // "driving"
	UnitSystem  string // "metric"
}

// RouteResult is a computed route polyline with its totals.
type RouteResult struct {
	Path           []domain.GeoPoint
	DistanceMeters float64
	DurationSecs   float64
}

// RouteComputer computes routes between two points.
type RouteComputer interface {
	ComputeRoute(ctx context.Context, req RouteRequest) (*RouteResult, error)
}

// PositionSource acquires the caller's current position.
type PositionSource interface {
	CurrentPosition(ctx context.Context) (*domain.Position, error)
}
