package httpapi

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// handlerSpanPrefix marks the only span names that open real spans; helpers
// and middleware reuse the request span.
const handlerSpanPrefix = "httpapi.Handler."

var apiTracer = otel.Tracer("football-tournament/internal/interfaces/httpapi")

// startSpan opens a child span for handler operations of traced requests.
// Untraced requests such as /healthz get a non-recording span.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if !strings.HasPrefix(name, handlerSpanPrefix) || !trace.SpanContextFromContext(ctx).IsValid() {
		return ctx, trace.SpanFromContext(context.Background())
	}
	return apiTracer.Start(ctx, name)
}
