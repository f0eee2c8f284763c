package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/samirrijal/crestfield/internal/core/domain"
)

// StationSource implements ports.DirectorySource over the stations table.
type StationSource struct {
	db *DB
}

// NewStationSource creates a new StationSource.
func NewStationSource(db *DB) *StationSource {
	return &StationSource{db: db}
}

// LoadStations reads every station ordered by id.
func (r *StationSource) LoadStations(ctx context.Context) ([]domain.Station, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, name, address, region, hours, phone, services, lat, lon
		FROM stations
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stations []domain.Station
	for rows.Next() {
		var s domain.Station
		if err := rows.Scan(
			&s.ID, &s.Name, &s.Address, &s.Region, &s.Hours, &s.Phone,
			&s.Services, &s.Coordinates.Lat, &s.Coordinates.Lon,
		); err != nil {
			return nil, err
		}
		stations = append(stations, s)
	}
	return stations, rows.Err()
}

// UpsertBatch inserts or updates many stations using pgx.Batch.
func (r *StationSource) UpsertBatch(ctx context.Context, stations []domain.Station) error {
	batch := &pgx.Batch{}
	for _, s := range stations {
		batch.Queue(`
			INSERT INTO stations (id, name, address, region, hours, phone, services, lat, lon)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (id) DO UPDATE
			SET name = EXCLUDED.name, address = EXCLUDED.address, region = EXCLUDED.region,
			    hours = EXCLUDED.hours, phone = EXCLUDED.phone, services = EXCLUDED.services,
			    lat = EXCLUDED.lat, lon = EXCLUDED.lon
		`, s.ID, s.Name, s.Address, s.Region, s.Hours, s.Phone, s.Services,
			s.Coordinates.Lat, s.Coordinates.Lon)
	}
	br := r.db.Pool.SendBatch(ctx, batch)
	defer br.Close()
	for range stations {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("batch exec: %w", err)
		}
	}
	return nil
}
