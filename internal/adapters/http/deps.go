package http

import (
	"github.com/nats-io/nats.go"

	"github.com/samirrijal/crestfield/internal/adapters/geoip"
	"github.com/samirrijal/crestfield/internal/adapters/postgres"
	"github.com/samirrijal/crestfield/internal/adapters/valkey"
	"github.com/samirrijal/crestfield/internal/core/domain"
	"github.com/samirrijal/crestfield/internal/core/usecases"
	"github.com/samirrijal/crestfield/internal/mapview"
)

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Stations   *usecases.StationService
	Directions *usecases.DirectionsService
	Chat       *usecases.ChatService
	Inquiries  *usecases.InquiryService
	Maps       *mapview.Registry
	IPLookup   *geoip.IPAPI
	Site       Site
	NATS       *nats.Conn
	DB         *postgres.DB
	Cache      *valkey.Cache
}

// Site carries the page-level settings the templates and map clients need.
// MapScriptURL is empty when no mapping API key is configured.
type Site struct {
	Name         string
	Version      string
	MapScriptURL string
	Center       domain.GeoPoint
}
