package domain

import (
	"strings"

	"golang.org/x/text/cases"
)

// NormalizeQuery trims surrounding whitespace and case-folds the query.
func NormalizeQuery(query string) string {
	return cases.Fold().String(strings.TrimSpace(query))
}

// FilterStations returns the stations whose name, address or region contains the
// query, ignoring case. An empty or blank query returns every station in order.
func FilterStations(stations []Station, query string) []Station {
	q := NormalizeQuery(query)
	if q == "" {
		return stations
	}
	fold := cases.Fold()
	out := make([]Station, 0, len(stations))
	for _, s := range stations {
		if strings.Contains(fold.String(s.Name), q) ||
			strings.Contains(fold.String(s.Address), q) ||
			strings.Contains(fold.String(s.Region), q) {
			out = append(out, s)
		}
	}
	return out
}
