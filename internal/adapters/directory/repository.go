// Package directory holds the in-memory station directory and the sources it
// can be loaded from.
package directory

import (
	"context"
	"fmt"

	"github.com/samirrijal/crestfield/internal/core/domain"
	"github.com/samirrijal/crestfield/internal/core/ports"
	"github.com/samirrijal/crestfield/internal/pkg/geospatial"
)

// Repository implements ports.StationRepository over a fixed, validated slice.
// It is never mutated after construction; every read returns copies.
type Repository struct {
	stations []domain.Station
	byID     map[int]int
}

// NewRepository validates stations and builds a read-only repository.
func NewRepository(stations []domain.Station) (*Repository, error) {
	if err := domain.ValidateDirectory(stations); err != nil {
		return nil, fmt.Errorf("invalid station directory: %w", err)
	}
	r := &Repository{
		stations: domain.CloneStations(stations),
		byID:     make(map[int]int, len(stations)),
	}
	for i, s := range r.stations {
		r.byID[s.ID] = i
	}
	return r, nil
}

// Load reads the directory once from src.
func Load(ctx context.Context, src ports.DirectorySource) (*Repository, error) {
	stations, err := src.LoadStations(ctx)
	if err != nil {
		return nil, fmt.Errorf("load stations: %w", err)
	}
	return NewRepository(stations)
}

func (r *Repository) List(ctx context.Context) ([]domain.Station, error) {
	return domain.CloneStations(r.stations), nil
}

func (r *Repository) GetByID(ctx context.Context, id int) (*domain.Station, error) {
	i, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrStationNotFound
	}
	s := domain.CloneStation(r.stations[i])
	return &s, nil
}

func (r *Repository) FindNearby(ctx context.Context, lat, lon, radiusMeters float64, limit int) ([]domain.Station, error) {
	return geospatial.Nearest(r.stations, lat, lon, radiusMeters, limit), nil
}

// Len returns the number of stations.
func (r *Repository) Len() int { return len(r.stations) }

// Builtin is the compiled-in sample directory.
type Builtin struct{}

func (Builtin) LoadStations(ctx context.Context) ([]domain.Station, error) {
	return domain.DefaultDirectory(), nil
}
