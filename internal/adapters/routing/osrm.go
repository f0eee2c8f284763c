package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bluele/gcache"

	"github.com/samirrijal/crestfield/internal/core/domain"
	"github.com/samirrijal/crestfield/internal/core/ports"
)

// OSRMOptions configures an OSRM client.
type OSRMOptions struct {
	BaseURL   string
	Timeout   time.Duration
	CacheSize int
	CacheTTL  time.Duration
}

// OSRM implements ports.RouteComputer against an OSRM /route/v1 endpoint.
// Results are memoized per origin/destination pair rounded to ~1 m.
type OSRM struct {
	baseURL string
	client  *http.Client
	memo    gcache.Cache
}

// NewOSRM creates an OSRM route computer.
func NewOSRM(opts OSRMOptions) *OSRM {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = 1000
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 10 * time.Minute
	}
	return &OSRM{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		client:  &http.Client{Timeout: opts.Timeout},
		memo:    gcache.New(opts.CacheSize).LRU().Expiration(opts.CacheTTL).Build(),
	}
}

type osrmResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Routes  []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"routes"`
}

// ComputeRoute returns the first route OSRM proposes between req.Origin and req.Destination.
func (o *OSRM) ComputeRoute(ctx context.Context, req ports.RouteRequest) (*ports.RouteResult, error) {
	key := memoKey(req)
	if v, err := o.memo.Get(key); err == nil {
		return v.(*ports.RouteResult), nil
	}

	res, err := o.fetch(ctx, req)
	if err != nil {
		return nil, err
	}
	_ = o.memo.Set(key, res)
	return res, nil
}

func (o *OSRM) fetch(ctx context.Context, req ports.RouteRequest) (*ports.RouteResult, error) {
	u := fmt.Sprintf("%s/route/v1/%s/%s;%s?overview=full&geometries=geojson",
		o.baseURL, profile(req.TravelMode), lonLat(req.Origin), lonLat(req.Destination))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := o.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("osrm request: %w", err)
	}
	defer resp.Body.Close()

	var body osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("osrm decode (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK || body.Code != "Ok" {
		return nil, fmt.Errorf("osrm: %s %s", body.Code, body.Message)
	}
	if len(body.Routes) == 0 {
		return nil, fmt.Errorf("osrm: no routes")
	}

	r := body.Routes[0]
	path := make([]domain.GeoPoint, 0, len(r.Geometry.Coordinates))
	for _, c := range r.Geometry.Coordinates {
		if len(c) < 2 {
			continue
		}
		path = append(path, domain.GeoPoint{Lat: c[1], Lon: c[0]})
	}
	return &ports.RouteResult{Path: path, DistanceMeters: r.Distance, DurationSecs: r.Duration}, nil
}

// OSRM only knows car, bike and foot profiles; everything else is driven.
func profile(mode string) string {
	switch mode {
	case "walking":
		return "foot"
	case "bicycling":
		return "bike"
	default:
		return "driving"
	}
}

func lonLat(p domain.GeoPoint) string {
	return strconv.FormatFloat(p.Lon, 'f', 6, 64) + "," + strconv.FormatFloat(p.Lat, 'f', 6, 64)
}

func memoKey(req ports.RouteRequest) string {
	return profile(req.TravelMode) + ":" +
		strconv.FormatFloat(req.Origin.Lat, 'f', 5, 64) + "," + strconv.FormatFloat(req.Origin.Lon, 'f', 5, 64) + ";" +
		strconv.FormatFloat(req.Destination.Lat, 'f', 5, 64) + "," + strconv.FormatFloat(req.Destination.Lon, 'f', 5, 64)
}
