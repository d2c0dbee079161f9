package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.9.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/rajgarments/storefront/pkg/correlationid"
)

// Trace starts a server span per request, continuing any trace propagated by
// the gateway. The span is named after the matched route once it is known.
func Trace(tracer trace.Tracer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if skipTracing(r) {
				next.ServeHTTP(w, r)
				return
			}

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

			ctx, span := tracer.Start(ctx, r.Method, trace.WithAttributes(
				semconv.HTTPURLKey.String(r.RequestURI),
				semconv.HTTPMethodKey.String(r.Method),
			), trace.WithSpanKind(trace.SpanKindServer))
			defer span.End()

			r = r.WithContext(ctx)
			next.ServeHTTP(ww, r)

			span.SetName(fmt.Sprintf("%s %s", r.Method, routePattern(r)))

			status := ww.Status()
			span.SetAttributes(semconv.HTTPStatusCodeKey.Int(status))
			if id := r.Header.Get(UserIDHeader); id != "" {
				span.SetAttributes(attribute.String("enduser.id", id))
			}
			if cid := ww.Header().Get(correlationid.Header); cid != "" {
				span.SetAttributes(attribute.String("correlation_id", cid))
			}
			if status >= 500 {
				span.SetStatus(codes.Error, fmt.Sprintf("error with HTTP status code %d", status))
			}
		})
	}
}

func skipTracing(r *http.Request) bool {
	switch r.URL.Path {
	case MetricsPath, HealthPath:
		return true
	}
	return strings.HasPrefix(r.URL.Path, "/docs")
}
