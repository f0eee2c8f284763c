package usecases

import (
	"github.com/samirrijal/crestfield/internal/core/domain"
	"github.com/samirrijal/crestfield/internal/pkg/metrics"
)

// DirectionsService builds outbound navigation links and the copy-address payload.
// It makes no network calls.
type DirectionsService struct{}

// NewDirectionsService creates a new DirectionsService.
func NewDirectionsService() *DirectionsService {
	return &DirectionsService{}
}

// Links returns one link per supported provider, in display order.
func (s *DirectionsService) Links(station domain.Station) []domain.DirectionsLink {
	links := make([]domain.DirectionsLink, 0, len(domain.Providers))
	for _, p := range domain.Providers {
		link, err := domain.NewDirectionsLink(p, station.Coordinates)
		if err != nil {
			continue
		}
		links = append(links, link)
	}
	return links
}

// Link returns the link for a single provider.
func (s *DirectionsService) Link(station domain.Station, provider string) (domain.DirectionsLink, error) {
	link, err := domain.NewDirectionsLink(provider, station.Coordinates)
	if err != nil {
		return domain.DirectionsLink{}, err
	}
	metrics.DirectionsLinks.WithLabelValues(provider).Inc()
	return link, nil
}

// CopyAddress returns the address to place on the clipboard and the confirmation to show.
func (s *DirectionsService) CopyAddress(station domain.Station) domain.AddressCopy {
	return domain.AddressCopy{
		StationID: station.ID,
		Address:   station.Address,
		Confirmation: domain.Confirmation{
			Title:       "Address Copied",
			Description: "Station address has been copied to clipboard.",
		},
	}
}
