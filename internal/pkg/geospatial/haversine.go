package geospatial

import (
	"math"
	"slices"

	"github.com/samirrijal/crestfield/internal/core/domain"
)

const earthRadiusKm = 6371.0

// Haversine calculates the great-circle distance in meters between two points.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c * 1000 // meters
}

// BoundingBox returns a bounding box around a point with the given radius in meters.
func BoundingBox(lat, lon, radiusMeters float64) (minLat, minLon, maxLat, maxLon float64) {
	latDelta := radiusMeters / 111320.0
	lonDelta := radiusMeters / (111320.0 * math.Cos(toRad(lat)))

	return lat - latDelta, lon - lonDelta, lat + latDelta, lon + lonDelta
}

// Nearest returns copies of the stations within radiusMeters of (lat, lon), closest first,
// with Distance populated. limit <= 0 means no limit.
func Nearest(stations []domain.Station, lat, lon, radiusMeters float64, limit int) []domain.Station {
	minLat, minLon, maxLat, maxLon := BoundingBox(lat, lon, radiusMeters)
	var out []domain.Station
	for _, s := range stations {
		p := s.Coordinates
		if p.Lat < minLat || p.Lat > maxLat || p.Lon < minLon || p.Lon > maxLon {
			continue
		}
		d := Haversine(lat, lon, p.Lat, p.Lon)
		if d > radiusMeters {
			continue
		}
		c := domain.CloneStation(s)
		c.Distance = &d
		out = append(out, c)
	}
	slices.SortStableFunc(out, func(a, b domain.Station) int {
		switch {
		case *a.Distance < *b.Distance:
			return -1
		case *a.Distance > *b.Distance:
			return 1
		}
		return 0
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
