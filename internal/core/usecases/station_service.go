package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samirrijal/crestfield/internal/core/domain"
	"github.com/samirrijal/crestfield/internal/core/ports"
	"github.com/samirrijal/crestfield/internal/pkg/metrics"
	"github.com/samirrijal/crestfield/internal/pkg/telemetry"
)

// MaxQueryLength bounds free-text station searches.
const MaxQueryLength = 200

// StationService handles station directory lookups and search.
type StationService struct {
	stations ports.StationRepository
	cache    ports.CacheService
}

// NewStationService creates a new StationService. cache may be nil.
func NewStationService(stations ports.StationRepository, cache ports.CacheService) *StationService {
	return &StationService{stations: stations, cache: cache}
}

// List returns the whole directory in its original order.
func (s *StationService) List(ctx context.Context) ([]domain.Station, error) {
	return s.stations.List(ctx)
}

// Search returns stations whose name, address or region contains query,
// case-insensitively. A blank query returns the whole directory.
func (s *StationService) Search(ctx context.Context, query string) (_ []domain.Station, err error) {
	if utf8.RuneCountInString(query) > MaxQueryLength {
		return nil, fmt.Errorf("%w: max %d characters", domain.ErrQueryTooLong, MaxQueryLength)
	}
	q := domain.NormalizeQuery(query)

	ctx, span := telemetry.StartSpan(ctx, telemetry.SpanStationSearch, attribute.String("query", q))
	defer func() { telemetry.EndSpan(span, err) }()

	// Try cache
	cacheKey := "stations:search:" + q
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var stations []domain.Station
			if err := json.Unmarshal(data, &stations); err == nil {
				metrics.CacheHits.WithLabelValues("station_search").Inc()
				return stations, nil
			}
		}
		metrics.CacheMisses.WithLabelValues("station_search").Inc()
	}

	all, err := s.stations.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list stations: %w", err)
	}
	stations := domain.FilterStations(all, q)

	if len(stations) == 0 {
		metrics.StationSearches.WithLabelValues("empty").Inc()
	} else {
		metrics.StationSearches.WithLabelValues("match").Inc()
	}

	// Cache for 5 minutes
	if s.cache != nil {
		if data, err := json.Marshal(stations); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, 300)
		}
	}

	return stations, nil
}

// GetByID returns a single station.
func (s *StationService) GetByID(ctx context.Context, id int) (*domain.Station, error) {
	return s.stations.GetByID(ctx, id)
}

// FindNearby returns stations within radiusMeters of the given point, closest first.
func (s *StationService) FindNearby(ctx context.Context, lat, lon, radiusMeters float64, limit int) (_ []domain.Station, err error) {
	if !(domain.GeoPoint{Lat: lat, Lon: lon}).Valid() {
		return nil, domain.ErrInvalidCoordinates
	}
	if radiusMeters <= 0 {
		radiusMeters = 50_000
	}
	if limit <= 0 || limit > 50 {
		limit = 50
	}

	ctx, span := telemetry.StartSpan(ctx, telemetry.SpanStationNearby,
		attribute.Float64("lat", lat), attribute.Float64("lon", lon), attribute.Float64("radius", radiusMeters))
	defer func() { telemetry.EndSpan(span, err) }()

	return s.stations.FindNearby(ctx, lat, lon, radiusMeters, limit)
}

// Regions returns the distinct regions covered, in directory order.
func (s *StationService) Regions(ctx context.Context) ([]string, error) {
	all, err := s.stations.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.Regions(all), nil
}
