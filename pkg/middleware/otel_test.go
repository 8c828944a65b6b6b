package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/vango-dev/homepage/pkg/server"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

func newTestCtx(path string) server.Ctx {
	return server.NewSSRContext(httptest.NewRequest(http.MethodGet, path, nil), nil, nil)
}

func TestEventTracingStoresTraceContext(t *testing.T) {
	ctx := newTestCtx("/")
	var extracted bool
	mw := EventTracing(
		WithTracerProvider(noop.NewTracerProvider()),
		WithAttributeExtractor(func(server.Ctx) []attribute.KeyValue {
			extracted = true
			return []attribute.KeyValue{attribute.String("test.attr", "ok")}
		}),
	)

	err := mw(ctx, &server.Event{Kind: server.EventDOM, HID: "h4", Name: "click"}, func() error {
		if SpanFromContext(ctx) == nil {
			t.Error("no span during handling")
		}
		_ = trace.SpanContextFromContext(TraceContext(ctx))
		return nil
	})
	if err != nil {
		t.Fatalf("middleware error = %v", err)
	}
	if !extracted {
		t.Error("attribute extractor not called")
	}

	stored, ok := ctx.Value(spanContextKey{}).(context.Context)
	if !ok || TraceContext(ctx) != stored {
		t.Error("TraceContext does not return the stored span context")
	}
}

func TestEventTracingPropagatesError(t *testing.T) {
	ctx := newTestCtx("/")
	want := errors.New("boom")

	err := EventTracing()(ctx, &server.Event{Kind: server.EventNavigate, Path: "/x"}, func() error { return want })
	if !errors.Is(err, want) {
		t.Errorf("error = %v, want %v", err, want)
	}
}

func TestEventTracingFilter(t *testing.T) {
	ctx := newTestCtx("/")
	mw := EventTracing(WithEventFilter(func(server.Ctx, *server.Event) bool { return false }))

	called := false
	mw(ctx, &server.Event{}, func() error {
		called = true
		return nil
	})
	if !called {
		t.Error("filtered event not passed through")
	}
	if SpanFromContext(ctx) != nil {
		t.Error("filtered event got a span")
	}
	if TraceContext(ctx) != ctx.StdContext() {
		t.Error("TraceContext should fall back to StdContext")
	}
}

func TestHTTPTracingPassesSpanContext(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Tracing(WithTracerProvider(noop.NewTracerProvider())))

	var sawSpan bool
	r.Get("/x", func(w http.ResponseWriter, r *http.Request) {
		sawSpan = trace.SpanFromContext(r.Context()) != nil
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	if rec.Code != http.StatusTeapot || !sawSpan {
		t.Errorf("status = %d, span seen = %v", rec.Code, sawSpan)
	}
}
