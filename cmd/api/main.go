package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/samirrijal/crestfield/internal/adapters/directory"
	"github.com/samirrijal/crestfield/internal/adapters/geoip"
	"github.com/samirrijal/crestfield/internal/adapters/http"
	natsadapter "github.com/samirrijal/crestfield/internal/adapters/nats"
	"github.com/samirrijal/crestfield/internal/adapters/postgres"
	"github.com/samirrijal/crestfield/internal/adapters/routing"
	"github.com/samirrijal/crestfield/internal/adapters/valkey"
	"github.com/samirrijal/crestfield/internal/core/domain"
	"github.com/samirrijal/crestfield/internal/core/ports"
	"github.com/samirrijal/crestfield/internal/core/usecases"
	"github.com/samirrijal/crestfield/internal/mapview"
	"github.com/samirrijal/crestfield/internal/pkg/config"
	"github.com/samirrijal/crestfield/internal/pkg/logging"
	"github.com/samirrijal/crestfield/internal/pkg/telemetry"
)

var version = "dev"

func main() {
	cfg, err := config.Load("crestfield-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.OTLPAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}
	if cfg.Sentry.DSN != "" {
		flush, err := telemetry.InitSentry(cfg.Sentry.DSN, cfg.Sentry.Environment, version)
		if err != nil {
			slog.Warn("sentry init failed", "error", err)
		} else {
			defer flush()
		}
	}

	// Database (only the postgres directory needs it)
	var db *postgres.DB
	if cfg.Directory.Source == "postgres" {
		db, err = postgres.New(ctx, cfg.Database.DSN())
		if err != nil {
			log.Fatalf("database: %v", err)
		}
		defer db.Close()
		go db.ReportPoolStats(ctx, 15*time.Second)
	}

	// Station directory
	repo, err := directory.Load(ctx, directorySource(cfg, db))
	if err != nil {
		log.Fatalf("directory: %v", err)
	}
	slog.Info("station directory loaded", "source", cfg.Directory.Source, "stations", repo.Len())

	// Cache
	var cache *valkey.Cache
	if cfg.Valkey.Enabled {
		cache, err = valkey.New(cfg.Valkey.Addr, cfg.Valkey.Namespace)
		if err != nil {
			slog.Warn("valkey unavailable", "error", err)
		} else {
			defer cache.Close()
		}
	}

	// NATS: JetStream inquiries plus map event fan-out
	var publisher *natsadapter.Publisher
	if cfg.Intake.Sink == "nats" {
		publisher, err = natsadapter.NewPublisher(cfg.NATS.URL)
		if err != nil {
			log.Fatalf("nats: %v", err)
		}
		defer publisher.Close()
	}

	// Routing
	routes := usecases.NewRouteService(
		routing.NewOSRM(routing.OSRMOptions{
			BaseURL:   cfg.Routing.OSRMURL,
			Timeout:   time.Duration(cfg.Routing.Timeout) * time.Second,
			CacheSize: cfg.Routing.CacheSize,
			CacheTTL:  time.Duration(cfg.Routing.CacheTTL) * time.Second,
		}),
		usecases.RouteOptions{
			GeolocationTimeout: time.Duration(cfg.Geolocation.Timeout) * time.Millisecond,
			MaxPositionAge:     time.Duration(cfg.Geolocation.MaxAge) * time.Millisecond,
			UnitSystem:         cfg.Routing.UnitSystem,
		},
	)

	sdk := routing.NewSDKLoader(cfg.Maps.SDKURL, cfg.Maps.APIKey, time.Duration(cfg.Maps.LoadTimeout)*time.Second)
	center := domain.GeoPoint{Lat: cfg.Maps.CenterLat, Lon: cfg.Maps.CenterLon}

	var mapEvents ports.EventPublisher
	if publisher != nil {
		mapEvents = publisher
	}
	maps := mapview.NewRegistry(mapview.RegistryConfig{
		IdleTTL:     time.Duration(cfg.Maps.SessionIdleTTL) * time.Second,
		LoadTimeout: time.Duration(cfg.Maps.LoadTimeout) * time.Second,
		Center:      center,
		Loader:      sdk,
		Planner:     routes,
	}, mapEvents)
	defer maps.Close()

	// Use cases
	var sink ports.InquirySink = usecases.LogSink{}
	if publisher != nil {
		sink = publisher
	}

	deps := &http.Dependencies{
		Stations:   usecases.NewStationService(repo, cacheOrNil(cache)),
		Directions: usecases.NewDirectionsService(),
		Chat:       usecases.NewChatService(cfg.Chat.Phone),
		Inquiries:  usecases.NewInquiryService(sink),
		Maps:       maps,
		DB:         db,
		Cache:      cache,
		Site: http.Site{
			Name:    "Crestfield Petroleum",
			Version: version,
			Center:  center,
		},
	}
	if publisher != nil {
		deps.NATS = publisher.Conn()
	}
	if cfg.Geolocation.IPLookup {
		deps.IPLookup = geoip.NewIPAPI(cfg.Geolocation.IPAPIURL, 0)
	}
	if cfg.MapsReady() {
		scriptURL, err := sdk.ScriptURL()
		if err != nil {
			log.Fatalf("maps: %v", err)
		}
		deps.Site.MapScriptURL = scriptURL
	} else {
		slog.Warn("maps.api_key not set, interactive map disabled")
	}

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:           time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:          time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:             1024 * 1024, // 1 MB max request body
		AppName:               "Crestfield Locator",
		DisableStartupMessage: true,
	})
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.Server.AllowOrigins, ", "),
		AllowMethods:     "GET,POST,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: false,
		MaxAge:           3600,
	}))

	if err := http.SetupRoutes(app, deps); err != nil {
		log.Fatalf("routes: %v", err)
	}

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr, "version", version)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}

func directorySource(cfg *config.Config, db *postgres.DB) ports.DirectorySource {
	switch cfg.Directory.Source {
	case "yaml":
		return directory.YAMLSource{Path: cfg.Directory.File}
	case "postgres":
		return postgres.NewStationSource(db)
	default:
		return directory.Builtin{}
	}
}

// cacheOrNil keeps a nil *valkey.Cache from becoming a non-nil interface.
func cacheOrNil(c *valkey.Cache) ports.CacheService {
	if c == nil {
		return nil
	}
	return c
}
