package routing

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samirrijal/crestfield/internal/core/domain"
	"github.com/samirrijal/crestfield/internal/core/ports"
)

func setupHTTPMock(t *testing.T) {
	t.Helper()
	httpmock.Activate()
	t.Cleanup(httpmock.DeactivateAndReset)
}

const osrmOK = `{
  "code": "Ok",
  "routes": [{
    "distance": 1523.4,
    "duration": 312.9,
    "geometry": {"type": "LineString", "coordinates": [[3.3792, 6.5244], [3.3850, 6.5300], [3.3958, 6.4281]]}
  }]
}`

func lagosRequest() ports.RouteRequest {
	return ports.RouteRequest{
		Origin:      domain.GeoPoint{Lat: 6.5244, Lon: 3.3792},
		Destination: domain.GeoPoint{Lat: 6.4281, Lon: 3.3958},
		TravelMode:  "driving",
		UnitSystem:  "metric",
	}
}

func TestOSRM_ComputeRoute(t *testing.T) {
	setupHTTPMock(t)
	httpmock.RegisterResponder("GET", `=~^https://osrm\.test/route/v1/driving/3\.379200,6\.524400;3\.395800,6\.428100`,
		httpmock.NewStringResponder(http.StatusOK, osrmOK))

	o := NewOSRM(OSRMOptions{BaseURL: "https://osrm.test/"})
	res, err := o.ComputeRoute(context.Background(), lagosRequest())
	require.NoError(t, err)

	require.Len(t, res.Path, 3)
	assert.InDelta(t, 6.5244, res.Path[0].Lat, 1e-9)
	assert.InDelta(t, 3.3792, res.Path[0].Lon, 1e-9)
	assert.InDelta(t, 1523.4, res.DistanceMeters, 1e-9)
	assert.InDelta(t, 312.9, res.DurationSecs, 1e-9)

	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestOSRM_ComputeRoute_Memoized(t *testing.T) {
	setupHTTPMock(t)
	httpmock.RegisterResponder("GET", `=~^https://osrm\.test/route/v1/driving/`,
		httpmock.NewStringResponder(http.StatusOK, osrmOK))

	o := NewOSRM(OSRMOptions{BaseURL: "https://osrm.test"})
	for range 3 {
		_, err := o.ComputeRoute(context.Background(), lagosRequest())
		require.NoError(t, err)
	}
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestOSRM_ComputeRoute_NoRoute(t *testing.T) {
	setupHTTPMock(t)
	httpmock.RegisterResponder("GET", `=~^https://osrm\.test/route/v1/`,
		httpmock.NewStringResponder(http.StatusBadRequest, `{"code":"NoRoute","message":"Impossible route between points"}`))

	o := NewOSRM(OSRMOptions{BaseURL: "https://osrm.test"})
	_, err := o.ComputeRoute(context.Background(), lagosRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NoRoute")
}

func TestOSRM_ComputeRoute_TransportError(t *testing.T) {
	setupHTTPMock(t)
	httpmock.RegisterResponder("GET", `=~^https://osrm\.test/route/v1/`,
		httpmock.NewErrorResponder(assert.AnError))

	o := NewOSRM(OSRMOptions{BaseURL: "https://osrm.test"})
	_, err := o.ComputeRoute(context.Background(), lagosRequest())
	require.ErrorIs(t, err, assert.AnError)
}

func TestProfile(t *testing.T) {
	assert.Equal(t, "driving", profile("driving"))
	assert.Equal(t, "driving", profile(""))
	assert.Equal(t, "foot", profile("walking"))
	assert.Equal(t, "bike", profile("bicycling"))
}

func TestSDKLoader_Load(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		status  int
		body    string
		wantErr error
	}{
		{name: "loaded", key: "k", status: http.StatusOK, body: "window.google={};"},
		{name: "missing key", key: "", wantErr: domain.ErrMissingAPIKey},
		{name: "forbidden", key: "k", status: http.StatusForbidden, body: "denied", wantErr: domain.ErrSDKUnavailable},
		{name: "empty body", key: "k", status: http.StatusOK, body: "", wantErr: domain.ErrSDKUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupHTTPMock(t)
			httpmock.RegisterResponder("GET", `=~^https://maps\.test/js`,
				httpmock.NewStringResponder(tt.status, tt.body))

			l := NewSDKLoader("https://maps.test/js", tt.key, time.Second)
			err := l.Load(context.Background())
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSDKLoader_LoadNetworkError(t *testing.T) {
	setupHTTPMock(t)
	httpmock.RegisterResponder("GET", `=~^https://maps\.test/js`, httpmock.NewErrorResponder(assert.AnError))

	err := NewSDKLoader("https://maps.test/js", "k", time.Second).Load(context.Background())
	require.ErrorIs(t, err, domain.ErrSDKUnavailable)
	require.ErrorIs(t, err, assert.AnError)
}

func TestSDKLoader_ScriptURL(t *testing.T) {
	u, err := NewSDKLoader("https://maps.test/js", "abc 123", 0).ScriptURL()
	require.NoError(t, err)
	assert.Equal(t, "https://maps.test/js?key=abc+123&libraries=places", u)
}
