package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "crestfield",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "crestfield",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"method", "path"})

	httpResponseSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "crestfield",
		Subsystem: "http",
		Name:      "response_size_bytes",
		Help:      "HTTP response size in bytes",
		Buckets:   prometheus.ExponentialBuckets(100, 10, 6),
	}, []string{"method", "path"})

	// Locator metrics
	StationSearches = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "crestfield",
		Subsystem: "locator",
		Name:      "searches_total",
		Help:      "Total station searches, by whether the query matched anything",
	}, []string{"result"})

	DirectionsLinks = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "crestfield",
		Subsystem: "locator",
		Name:      "directions_links_total",
		Help:      "Directions deep links handed out",
	}, []string{"provider"})

	ChatLinks = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "crestfield",
		Subsystem: "chat",
		Name:      "links_total",
		Help:      "Chat deep links built",
	}, []string{"source"})

	// Map adapter metrics
	MapSessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "crestfield",
		Subsystem: "map",
		Name:      "sessions_active",
		Help:      "Map sessions currently mounted",
	})

	MapLoads = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "crestfield",
		Subsystem: "map",
		Name:      "sdk_loads_total",
		Help:      "Mapping SDK load attempts by outcome",
	}, []string{"outcome"})

	RouteRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "crestfield",
		Subsystem: "map",
		Name:      "route_requests_total",
		Help:      "Route computations by outcome",
	}, []string{"outcome"})

	RouteDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "crestfield",
		Subsystem: "map",
		Name:      "route_duration_seconds",
		Help:      "Duration of route computation including origin acquisition",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	})

	OriginFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "crestfield",
		Subsystem: "map",
		Name:      "origin_fallbacks_total",
		Help:      "Route origins that fell back to the map center, by reason",
	}, []string{"reason"})

	// Intake metrics
	InquiriesSubmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "crestfield",
		Subsystem: "intake",
		Name:      "inquiries_total",
		Help:      "Inquiries accepted at the submission boundary",
	}, []string{"kind"})

	InquiriesRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "crestfield",
		Subsystem: "intake",
		Name:      "inquiries_rejected_total",
		Help:      "Inquiries rejected by validation",
	}, []string{"kind"})

	ActiveWebSockets = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "crestfield",
		Subsystem: "ws",
		Name:      "active_connections",
		Help:      "Current number of active WebSocket connections",
	})

	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "crestfield",
		Subsystem: "cache",
		Name:      "hits_total",
		Help:      "Total cache hits",
	}, []string{"operation"})

	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "crestfield",
		Subsystem: "cache",
		Name:      "misses_total",
		Help:      "Total cache misses",
	}, []string{"operation"})

	// Database pool metrics
	DBPoolConnsOpen = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "crestfield",
		Subsystem: "db",
		Name:      "pool_conns_open",
		Help:      "Total connections open in the database pool",
	})

	DBPoolConnsAcquired = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "crestfield",
		Subsystem: "db",
		Name:      "pool_conns_acquired",
		Help:      "Connections currently acquired from the database pool",
	})

	DBPoolConnsIdle = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "crestfield",
		Subsystem: "db",
		Name:      "pool_conns_idle",
		Help:      "Idle connections in the database pool",
	})
)

// Middleware records request metrics.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())
		path := c.Route().Path // route pattern keeps cardinality low
		if path == "" {
			path = c.Path()
		}
		method := c.Method()

		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(duration)
		httpResponseSize.WithLabelValues(method, path).Observe(float64(len(c.Response().Body())))

		return err
	}
}

// Handler returns a Fiber handler serving Prometheus /metrics endpoint.
func Handler() fiber.Handler {
	handler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	return func(c *fiber.Ctx) error {
		handler(c.Context())
		return nil
	}
}

// PoolStat is the subset of pgxpool.Stat read by UpdateDBPoolMetrics.
type PoolStat interface {
	AcquiredConns() int32
	IdleConns() int32
	TotalConns() int32
}

// UpdateDBPoolMetrics updates database pool gauges.
func UpdateDBPoolMetrics(s PoolStat) {
	DBPoolConnsAcquired.Set(float64(s.AcquiredConns()))
	DBPoolConnsIdle.Set(float64(s.IdleConns()))
	DBPoolConnsOpen.Set(float64(s.TotalConns()))
}

// Outcome labels a result for outcome counters.
func Outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
