// Package geoip provides ports.PositionSource implementations: positions
// reported by the browser, and an approximate position from the caller's IP.
package geoip

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/samirrijal/crestfield/internal/core/domain"
	"github.com/samirrijal/crestfield/internal/core/ports"
)

// Reported is a position the client obtained itself, or its refusal to share one.
type Reported struct {
	Position *domain.Position
	Denied   bool
}

// CurrentPosition implements ports.PositionSource.
func (r Reported) CurrentPosition(ctx context.Context) (*domain.Position, error) {
	switch {
	case r.Denied:
		return nil, domain.ErrPermissionDenied
	case r.Position == nil:
		return nil, domain.ErrPositionUnavailable
	}
	p := *r.Position
	return &p, nil
}

// Chain tries each source in order until one yields a position. A permission
// denial ends the chain so a refused location is never approximated.
type Chain []ports.PositionSource

// CurrentPosition implements ports.PositionSource.
func (c Chain) CurrentPosition(ctx context.Context) (*domain.Position, error) {
	err := domain.ErrPositionUnavailable
	for _, src := range c {
		if src == nil {
			continue
		}
		var pos *domain.Position
		pos, err = src.CurrentPosition(ctx)
		if err == nil {
			return pos, nil
		}
		if errors.Is(err, domain.ErrPermissionDenied) || ctx.Err() != nil {
			return nil, err
		}
	}
	return nil, err
}

// ipAPIAccuracy is the nominal city-level accuracy of an IP lookup, in meters.
const ipAPIAccuracy = 25000

// IPAPI resolves approximate positions with the ip-api.com JSON endpoint.
type IPAPI struct {
	baseURL string
	client  *http.Client
	now     func() time.Time
}

// NewIPAPI creates a client for the ip-api endpoint at baseURL (e.g. http://ip-api.com/json).
func NewIPAPI(baseURL string, timeout time.Duration) *IPAPI {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &IPAPI{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		now:     time.Now,
	}
}

type ipAPIResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// Lookup returns the approximate position of ip.
func (a *IPAPI) Lookup(ctx context.Context, ip string) (*domain.Position, error) {
	if ip == "" {
		return nil, domain.ErrPositionUnavailable
	}
	u := a.baseURL + "/" + url.PathEscape(ip) + "?fields=status,message,lat,lon"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, err
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ip-api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: ip-api status %d", domain.ErrPositionUnavailable, resp.StatusCode)
	}
	var body ipAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("ip-api decode: %w", err)
	}
	if body.Status != "success" {
		return nil, fmt.Errorf("%w: ip-api %s", domain.ErrPositionUnavailable, body.Message)
	}
	return &domain.Position{
		Point:     domain.GeoPoint{Lat: body.Lat, Lon: body.Lon},
		Accuracy:  ipAPIAccuracy,
		Timestamp: a.now(),
	}, nil
}

// ForIP binds the client to one caller address.
func (a *IPAPI) ForIP(ip string) ports.PositionSource {
	return ipSource{api: a, ip: ip}
}

type ipSource struct {
	api *IPAPI
	ip  string
}

func (s ipSource) CurrentPosition(ctx context.Context) (*domain.Position, error) {
	return s.api.Lookup(ctx, s.ip)
}
