package ports

import (
	"context"

	"github.com/samirrijal/crestfield/internal/core/domain"
)

// StationRepository is the read-only station directory.
type StationRepository interface {
	List(ctx context.Context) ([]domain.Station, error)
	GetByID(ctx context.Context, id int) (*domain.Station, error)
	FindNearby(ctx context.Context, lat, lon, radiusMeters float64, limit int) ([]domain.Station, error)
}

// DirectorySource loads the station directory once at startup.
type DirectorySource interface {
	LoadStations(ctx context.Context) ([]domain.Station, error)
}

// InquiryRepository persists submitted inquiries and their follow-up status.
type InquiryRepository interface {
	Create(ctx context.Context, inq *domain.Inquiry) error
	GetByID(ctx context.Context, id string) (*domain.Inquiry, error)
	UpdateStatus(ctx context.Context, id string, status domain.InquiryStatus) error
}
