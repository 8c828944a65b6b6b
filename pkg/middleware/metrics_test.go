package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/vango-dev/homepage/pkg/server"
)

// metricValue returns the counter or gauge value of the series in family
// name whose labels include want.
func metricValue(t *testing.T, reg *prometheus.Registry, name string, want map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		for _, m := range f.GetMetric() {
			if hasLabels(m, want) {
				switch {
				case m.Counter != nil:
					return m.Counter.GetValue()
				case m.Gauge != nil:
					return m.Gauge.GetValue()
				case m.Histogram != nil:
					return float64(m.Histogram.GetSampleCount())
				}
			}
		}
	}
	t.Fatalf("no series %s%v", name, want)
	return 0
}

func hasLabels(m *dto.Metric, want map[string]string) bool {
	found := 0
	for _, lp := range m.GetLabel() {
		if v, ok := want[lp.GetName()]; ok && v == lp.GetValue() {
			found++
		}
	}
	return found == len(want)
}

func TestHTTPMetricsUseRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg))

	r := chi.NewRouter()
	r.Use(m.HTTP)
	r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, path := range []string{"/a", "/b", "/c/d"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	got := metricValue(t, reg, "homepage_http_requests_total", map[string]string{
		"route": "/*", "method": "GET", "code": "404",
	})
	if got != 3 {
		t.Errorf("requests = %v, want 3 in one series", got)
	}
	if n := metricValue(t, reg, "homepage_http_request_duration_seconds", map[string]string{"route": "/*"}); n != 3 {
		t.Errorf("duration samples = %v, want 3", n)
	}
}

func TestEventMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg), WithNamespace("test"))
	mw := m.Events()
	ctx := newTestCtx("/")

	mw(ctx, &server.Event{Kind: server.EventDOM}, func() error { return nil })
	ev := &server.Event{Kind: server.EventDOM}
	mw(ctx, ev, func() error {
		ev.Patches = 2
		return nil
	})
	mw(ctx, &server.Event{Kind: server.EventDOM}, func() error { return server.ErrHandlerNotFound })
	mw(ctx, &server.Event{Kind: server.EventNavigate}, func() error { return &server.HandlerError{Panic: "x"} })

	tests := []struct {
		labels map[string]string
		want   float64
	}{
		{map[string]string{"kind": "dom", "status": "success"}, 2},
		{map[string]string{"kind": "dom", "status": "not_found"}, 1},
		{map[string]string{"kind": "navigate", "status": "panic"}, 1},
	}
	for _, tt := range tests {
		if got := metricValue(t, reg, "test_events_total", tt.labels); got != tt.want {
			t.Errorf("events%v = %v, want %v", tt.labels, got, tt.want)
		}
	}
	if got := metricValue(t, reg, "test_patches_sent_total", nil); got != 2 {
		t.Errorf("patches = %v, want 2", got)
	}
}

func TestEventStatus(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "success"},
		{server.ErrHandlerNotFound, "not_found"},
		{&server.HandlerError{}, "panic"},
		{server.ErrSessionClosed, "closed"},
		{errors.New("boom"), "error"},
	}
	for _, tt := range tests {
		if got := eventStatus(tt.err); got != tt.want {
			t.Errorf("eventStatus(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestObserveSessions(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg))
	m.ObserveSessions(server.NewSessionManager(nil))

	if got := metricValue(t, reg, "homepage_active_sessions", nil); got != 0 {
		t.Errorf("active sessions = %v, want 0", got)
	}
}

func TestMetricsHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg))
	m.patchesSent.Add(5)

	rec := httptest.NewRecorder()
	MetricsHandler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(rec.Body.String(), "homepage_patches_sent_total 5") {
		t.Errorf("exposition missing patches counter:\n%s", rec.Body.String())
	}
}
