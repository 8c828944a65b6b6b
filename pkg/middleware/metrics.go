package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vango-dev/homepage/pkg/server"
)

// MetricsConfig configures the Prometheus metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "homepage").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for durations.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "homepage",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the collectors. Create one per registry.
type Metrics struct {
	config  MetricsConfig
	factory promauto.Factory

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	eventsTotal     *prometheus.CounterVec
	eventDuration   *prometheus.HistogramVec
	patchesSent     prometheus.Counter
}

// NewMetrics registers the collectors with the configured registry.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		config:  config,
		factory: factory,

		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests served",
			ConstLabels: config.ConstLabels,
		}, []string{"route", "method", "code"}),

		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"route"}),

		eventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "events_total",
			Help:        "Total number of live events processed",
			ConstLabels: config.ConstLabels,
		}, []string{"kind", "status"}),

		eventDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "event_duration_seconds",
			Help:        "Live event processing duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"kind"}),

		patchesSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "patches_sent_total",
			Help:        "Total number of patches sent to clients",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// HTTP records request counts and latency. Requests are labeled by chi route
// pattern rather than raw path, so the not-found page does not create a
// series per URL.
func (m *Metrics) HTTP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := routePattern(r)
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		m.requestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
	})
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}

// Events returns live event middleware recording counts, latency and the
// number of patches each event produced.
func (m *Metrics) Events() server.EventMiddleware {
	return func(ctx server.Ctx, ev *server.Event, next func() error) error {
		start := time.Now()
		err := next()

		kind := ev.Kind.String()
		m.eventDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
		m.eventsTotal.WithLabelValues(kind, eventStatus(err)).Inc()
		m.patchesSent.Add(float64(ev.Patches))
		return err
	}
}

// eventStatus maps an event error to a fixed label value.
func eventStatus(err error) string {
	var handlerErr *server.HandlerError
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, server.ErrHandlerNotFound):
		return "not_found"
	case errors.As(err, &handlerErr):
		return "panic"
	case errors.Is(err, server.ErrSessionClosed):
		return "closed"
	default:
		return "error"
	}
}

// ObserveSessions exports the number of live sessions in sessions as a gauge.
func (m *Metrics) ObserveSessions(sessions *server.SessionManager) {
	m.factory.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace:   m.config.Namespace,
		Subsystem:   m.config.Subsystem,
		Name:        "active_sessions",
		Help:        "Number of active live sessions",
		ConstLabels: m.config.ConstLabels,
	}, func() float64 {
		return float64(sessions.Count())
	})
}

// MetricsHandler serves the metrics gathered by g.
func MetricsHandler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
