package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/vango-dev/homepage/pkg/server"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const defaultTracerName = "homepage"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "homepage").
	TracerName string

	// TracerProvider supplies the tracer. Default: otel.GetTracerProvider().
	TracerProvider trace.TracerProvider

	// Filter determines which events to trace. If nil, all events are traced.
	Filter func(ctx server.Ctx, ev *server.Event) bool

	// AttributeExtractor adds custom attributes to event spans.
	AttributeExtractor func(ctx server.Ctx) []attribute.KeyValue
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) OTelOption {
	return func(c *OTelConfig) {
		c.TracerProvider = tp
	}
}

// WithEventFilter sets a filter function for events.
func WithEventFilter(filter func(ctx server.Ctx, ev *server.Event) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(ctx server.Ctx) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

func newTracer(opts []OTelOption) (trace.Tracer, OTelConfig) {
	config := OTelConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	tp := config.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return tp.Tracer(config.TracerName), config
}

// Tracing starts a server span for every HTTP request. The span is renamed
// to the matched chi route pattern once routing is done.
func Tracing(opts ...OTelOption) server.Middleware {
	tracer, _ := newTracer(opts)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracer.Start(r.Context(), r.Method,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("http.method", r.Method),
					attribute.String("http.target", r.URL.Path),
					attribute.String("http.request_id", chimw.GetReqID(r.Context())),
				),
			)
			defer span.End()

			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				span.SetName(r.Method + " " + rctx.RoutePattern())
				span.SetAttributes(attribute.String("http.route", rctx.RoutePattern()))
			}
			span.SetAttributes(attribute.Int("http.status_code", status))
			if status >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, http.StatusText(status))
			}
		})
	}
}

// EventTracing starts a span for every live event:
//   - attributes carry the session, path, event target and name
//   - the span context is stored on ctx for SpanFromContext and TraceContext
//   - errors are recorded and set the span status
//   - the patch count is recorded once the event is handled
func EventTracing(opts ...OTelOption) server.EventMiddleware {
	tracer, config := newTracer(opts)

	return func(ctx server.Ctx, ev *server.Event, next func() error) error {
		if config.Filter != nil && !config.Filter(ctx, ev) {
			return next()
		}

		attrs := []attribute.KeyValue{
			attribute.String("homepage.path", ctx.Path()),
			attribute.String("homepage.event_kind", ev.Kind.String()),
			attribute.Int64("homepage.seq", int64(ev.Seq)),
		}
		if session := ctx.Session(); session != nil {
			attrs = append(attrs, attribute.String("homepage.session_id", session.ID))
		}
		if ev.Kind == server.EventDOM {
			attrs = append(attrs,
				attribute.String("homepage.event_name", ev.Name),
				attribute.String("homepage.event_target", ev.HID),
			)
		} else {
			attrs = append(attrs, attribute.String("homepage.navigate_to", ev.Path))
		}
		if config.AttributeExtractor != nil {
			attrs = append(attrs, config.AttributeExtractor(ctx)...)
		}

		spanCtx, span := tracer.Start(ctx.StdContext(), "homepage."+spanName(ev),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(attrs...),
		)
		defer span.End()

		ctx.SetValue(spanContextKey{}, spanCtx)

		err := next()
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.SetAttributes(attribute.Int("homepage.patch_count", ev.Patches))
		return err
	}
}

func spanName(ev *server.Event) string {
	if ev.Kind == server.EventDOM && ev.Name != "" {
		return ev.Name
	}
	return ev.Kind.String()
}

type spanContextKey struct{}

// SpanFromContext returns the span of the event being handled, or nil.
func SpanFromContext(ctx server.Ctx) trace.Span {
	if spanCtx, ok := ctx.Value(spanContextKey{}).(context.Context); ok {
		return trace.SpanFromContext(spanCtx)
	}
	return nil
}

// TraceContext returns a context carrying the current event span, falling
// back to ctx.StdContext().
func TraceContext(ctx server.Ctx) context.Context {
	if spanCtx, ok := ctx.Value(spanContextKey{}).(context.Context); ok {
		return spanCtx
	}
	return ctx.StdContext()
}
