package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/timeout"
	"github.com/gofiber/websocket/v2"

	"github.com/samirrijal/crestfield/internal/pkg/metrics"
)

const (
	apiTimeout   = 15 * time.Second
	routeTimeout = 30 * time.Second
)

// SetupRoutes registers the pages and all REST, GraphQL and WebSocket routes.
func SetupRoutes(app *fiber.App, deps *Dependencies) error {
	pages, err := NewPages(deps)
	if err != nil {
		return err
	}

	app.Use(recover.New())

	// Prometheus metrics
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())

	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	app.Use(requestid.New())
	app.Use(RequestIDLogMiddleware())
	app.Use(AccessLogMiddleware())

	// Rate limiting: 120 requests per minute per IP
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return newError(c, fiber.StatusTooManyRequests, "rate_limited", "too many requests, please try again later")
		},
	}))

	// Security headers + API version
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Set("X-API-Version", "1.0.0")
		return c.Next()
	})

	app.Use(DeprecationMiddleware(legacyRoutes))
	app.Use(ETagMiddleware())
	app.Use(CachingMiddleware())

	// Health & readiness
	app.Get("/v1/health", HealthHandler(deps))
	app.Get("/v1/ready", ReadyHandler(deps))

	// Pages
	app.Get("/", pages.Home)
	app.Get("/about", pages.About)
	app.Get("/services", pages.Services)
	app.Get("/locator", pages.Locator)
	app.Post("/locator/map/:id/retry", pages.RetryMap)
	app.Get("/contact", pages.Contact)
	app.Post("/contact", pages.SubmitContact)
	app.Post("/quote", pages.SubmitQuote)
	app.Get("/station-locator", LegacyLocatorHandler())

	// REST API v1
	v1 := app.Group("/v1")
	v1.Get("/stations", timeout.NewWithContext(ListStationsHandler(deps), apiTimeout))
	v1.Get("/stations/geojson", timeout.NewWithContext(StationsGeoJSONHandler(deps), apiTimeout))
	v1.Get("/stations/nearby", timeout.NewWithContext(NearbyStationsHandler(deps), apiTimeout))
	v1.Get("/stations/regions", timeout.NewWithContext(RegionsHandler(deps), apiTimeout))
	v1.Get("/stations/:id", timeout.NewWithContext(GetStationHandler(deps), apiTimeout))
	v1.Get("/stations/:id/directions", timeout.NewWithContext(DirectionsHandler(deps), apiTimeout))
	v1.Get("/stations/:id/directions/:provider", timeout.NewWithContext(DirectionsRedirectHandler(deps), apiTimeout))
	v1.Post("/stations/:id/copy-address", timeout.NewWithContext(CopyAddressHandler(deps), apiTimeout))
	v1.Get("/stations/:id/chat", timeout.NewWithContext(StationChatHandler(deps), apiTimeout))

	v1.Get("/services", ServicesHandler())
	v1.Get("/chat/messages", ChatMessagesHandler(deps))
	v1.Get("/chat/link", ChatLinkHandler(deps))

	v1.Post("/contact", timeout.NewWithContext(ContactHandler(deps), apiTimeout))
	v1.Post("/quote", timeout.NewWithContext(QuoteHandler(deps), apiTimeout))

	// Map sessions
	v1.Post("/map/sessions", timeout.NewWithContext(MountMapHandler(deps), apiTimeout))
	v1.Get("/map/sessions/:id", timeout.NewWithContext(GetMapHandler(deps), apiTimeout))
	v1.Delete("/map/sessions/:id", UnmountMapHandler(deps))
	v1.Post("/map/sessions/:id/retry", timeout.NewWithContext(RetryMapHandler(deps), apiTimeout))
	v1.Get("/map/sessions/:id/markers/:stationId", MarkerPopupHandler(deps))
	v1.Post("/map/sessions/:id/select", SelectStationHandler(deps))
	v1.Post("/map/sessions/:id/route", timeout.NewWithContext(RouteHandler(deps), routeTimeout))
	v1.Get("/map/sessions/:id/events", MapEventsUpgrade(deps), websocket.New(MapEventsHandler(deps)))

	// GraphQL
	app.Post("/graphql", GraphQLHandler(deps))

	// API documentation (Swagger UI)
	SetupDocs(app)

	return nil
}
