// Package middleware provides observability middleware for the homepage
// server: Prometheus metrics and OpenTelemetry tracing for both HTTP
// requests and live session events.
//
// # Prometheus Metrics
//
//	reg := prometheus.NewRegistry()
//	m := middleware.NewMetrics(middleware.WithRegistry(reg))
//	srv.Use(m.HTTP)
//	srv.UseEvent(m.Events())
//	m.ObserveSessions(srv.Sessions())
//	srv.Mount("/metrics", middleware.MetricsHandler(reg))
//
// Metrics collected (namespace "homepage" by default):
//   - http_requests_total: requests by route pattern, method and status code
//   - http_request_duration_seconds: request latency by route pattern
//   - events_total: live events by kind and outcome
//   - event_duration_seconds: event handling latency by kind
//   - patches_sent_total: patches sent to clients
//   - active_sessions: live sessions right now
//
// # OpenTelemetry
//
// Tracing and EventTracing start one span per request or event using the
// global tracer provider unless WithTracerProvider is given. Event spans are
// stored on the Ctx so handlers can reach them with SpanFromContext and
// propagate them with TraceContext.
package middleware
