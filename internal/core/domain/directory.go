package domain

import (
	"errors"
	"fmt"
	"slices"
)

// DefaultPhone is the shared contact number for every station in the sample directory.
const DefaultPhone = "+2349051600569"

// DefaultCenter is the map center used when no other origin is available (central Nigeria).
var DefaultCenter = GeoPoint{Lat: 9.0820, Lon: 8.6753}

// DefaultZoom returns the initial zoom for a map showing the given number of stations.
func DefaultZoom(stationCount int) int {
	if stationCount > 0 {
		return 6
	}
	return 10
}

// DefaultDirectory returns the built-in station directory. Each call returns a fresh copy.
func DefaultDirectory() []Station {
	return []Station{
		{
			ID:          1,
			Name:        "Crestfield Ikeja Central",
			Address:     "Plot 45, Oba Akran Avenue, Ikeja, Lagos",
			Region:      "Lagos",
			Hours:       "24/7",
			Phone:       DefaultPhone,
			Services:    []string{"PMS", "AGO", "DPK", "Car Wash", "Mini Mart"},
			Coordinates: GeoPoint{Lat: 6.5952, Lon: 3.3441},
		},
		{
			ID:          2,
			Name:        "Crestfield Victoria Island",
			Address:     "15 Ahmadu Bello Way, Victoria Island, Lagos",
			Region:      "Lagos",
			Hours:       "5:00 AM - 11:00 PM",
			Phone:       DefaultPhone,
			Services:    []string{"PMS", "AGO", "DPK", "ATM"},
			Coordinates: GeoPoint{Lat: 6.4281, Lon: 3.4219},
		},
		{
			ID:          3,
			Name:        "Crestfield Abuja Express",
			Address:     "Km 8, Abuja-Kaduna Expressway, Abuja",
			Region:      "FCT",
			Hours:       "24/7",
			Phone:       DefaultPhone,
			Services:    []string{"PMS", "AGO", "DPK", "Truck Bay", "Restaurant"},
			Coordinates: GeoPoint{Lat: 9.0579, Lon: 7.4951},
		},
		{
			ID:          4,
			Name:        "Crestfield Port Harcourt",
			Address:     "201 Aba Road, Port Harcourt, Rivers",
			Region:      "Rivers",
			Hours:       "6:00 AM - 10:00 PM",
			Phone:       DefaultPhone,
			Services:    []string{"PMS", "AGO", "DPK", "Mini Mart"},
			Coordinates: GeoPoint{Lat: 4.8156, Lon: 7.0498},
		},
		{
			ID:          5,
			Name:        "Crestfield Kano Industrial",
			Address:     "Industrial Area, Bompai Road, Kano",
			Region:      "Kano",
			Hours:       "24/7",
			Phone:       DefaultPhone,
			Services:    []string{"PMS", "AGO", "DPK", "Bulk Supply", "Truck Bay"},
			Coordinates: GeoPoint{Lat: 12.0022, Lon: 8.5919},
		},
		{
			ID:          6,
			Name:        "Crestfield Ibadan Ring Road",
			Address:     "Km 12, Lagos-Ibadan Expressway, Ibadan",
			Region:      "Oyo",
			Hours:       "5:30 AM - 11:30 PM",
			Phone:       DefaultPhone,
			Services:    []string{"PMS", "AGO", "DPK", "Car Wash"},
			Coordinates: GeoPoint{Lat: 7.3775, Lon: 3.9470},
		},
	}
}

// ValidateDirectory checks that station IDs are unique and coordinates are in range.
// All problems are reported together.
func ValidateDirectory(stations []Station) error {
	var errs []error
	seen := make(map[int]bool, len(stations))
	for _, s := range stations {
		if seen[s.ID] {
			errs = append(errs, fmt.Errorf("station %d: duplicate id", s.ID))
		}
		seen[s.ID] = true
		if s.Coordinates.Lat < -90 || s.Coordinates.Lat > 90 {
			errs = append(errs, fmt.Errorf("station %d: latitude %v out of range [-90, 90]", s.ID, s.Coordinates.Lat))
		}
		if s.Coordinates.Lon < -180 || s.Coordinates.Lon > 180 {
			errs = append(errs, fmt.Errorf("station %d: longitude %v out of range [-180, 180]", s.ID, s.Coordinates.Lon))
		}
	}
	return errors.Join(errs...)
}

// Regions returns the distinct station regions in first-seen order.
func Regions(stations []Station) []string {
	var out []string
	for _, s := range stations {
		if s.Region != "" && !slices.Contains(out, s.Region) {
			out = append(out, s.Region)
		}
	}
	return out
}

// CloneStation returns a deep copy so callers cannot mutate the directory.
func CloneStation(s Station) Station {
	s.Services = slices.Clone(s.Services)
	if s.Distance != nil {
		d := *s.Distance
		s.Distance = &d
	}
	return s
}

// CloneStations deep-copies a slice of stations.
func CloneStations(stations []Station) []Station {
	if stations == nil {
		return nil
	}
	out := make([]Station, len(stations))
	for i, s := range stations {
		out[i] = CloneStation(s)
	}
	return out
}
