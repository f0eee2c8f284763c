package domain

import (
	"time"
)

// Station is one physical fuel outlet in the directory.
type Station struct {
	ID          int      `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Address     string   `json:"address" yaml:"address"`
	Region      string   `json:"region" yaml:"region"`
	Hours       string   `json:"hours" yaml:"hours"`
	Phone       string   `json:"phone" yaml:"phone"`
	Services    []string `json:"services" yaml:"services"`
	Coordinates GeoPoint `json:"coordinates" yaml:"coordinates"`
	Distance    *float64 `json:"distance,omitempty" yaml:"-"` // computed field
}

// Feature converts the station into a GeoJSON point feature.
func (s Station) Feature() GeoJSONFeature {
	return GeoJSONFeature{
		Type: "Feature",
		Geometry: GeoJSONGeometry{
			Type:        "Point",
			Coordinates: []float64{s.Coordinates.Lon, s.Coordinates.Lat},
		},
		Properties: map[string]any{
			"id":       s.ID,
			"name":     s.Name,
			"address":  s.Address,
			"region":   s.Region,
			"hours":    s.Hours,
			"phone":    s.Phone,
			"services": s.Services,
		},
	}
}

// FeatureCollection wraps stations as a GeoJSON FeatureCollection.
func FeatureCollection(stations []Station) GeoJSONFeatureCollection {
	fc := GeoJSONFeatureCollection{Type: "FeatureCollection", Features: make([]GeoJSONFeature, 0, len(stations))}
	for _, s := range stations {
		fc.Features = append(fc.Features, s.Feature())
	}
	return fc
}

// DirectionsLink is an outbound deep link into an external navigation app.
type DirectionsLink struct {
	Provider string `json:"provider"`
	Label    string `json:"label"`
	URL      string `json:"url"`
}

// ChatLink is a deep link into the external messaging app with a pre-filled message.
type ChatLink struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
	URL     string `json:"url"`
}

// Confirmation is a user-visible acknowledgment (toast) for a completed action.
type Confirmation struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// AddressCopy is the payload the client writes to its clipboard.
type AddressCopy struct {
	StationID    int          `json:"station_id"`
	Address      string       `json:"address"`
	Confirmation Confirmation `json:"confirmation"`
}

// Route is a computed driving route from an origin to a station.
type Route struct {
	StationID      int           `json:"station_id"`
	Origin         GeoPoint      `json:"origin"`
	OriginFallback bool          `json:"origin_fallback"` // true when the map center was used
	Destination    GeoPoint      `json:"destination"`
	Path           GeoLineString `json:"path"`
	Viewport       Bounds        `json:"viewport"`
	DistanceMeters float64       `json:"distance_meters"`
	Duration       time.Duration `json:"duration"`
	TravelMode     string        `json:"travel_mode"`
	UnitSystem     string        `json:"unit_system"`
}

// Position is a device position report, as returned by a geolocation capability.
type Position struct {
	Point     GeoPoint  `json:"point"`
	Accuracy  float64   `json:"accuracy"` // meters
	Timestamp time.Time `json:"timestamp"`
}
