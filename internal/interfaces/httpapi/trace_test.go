package httpapi

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/trace"
)

func TestStartSpan_RequiresTracedParent(t *testing.T) {
	ctx, span := startSpan(context.Background(), "httpapi.Handler.ListTeams")
	defer span.End()

	if span.SpanContext().IsValid() {
		t.Fatalf("expected non-recording span without a parent")
	}
	if trace.SpanFromContext(ctx).SpanContext().IsValid() {
		t.Fatalf("expected context to stay untraced")
	}
}

func TestStartSpan_SkipsHelperNames(t *testing.T) {
	parent := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{1},
		SpanID:     trace.SpanID{2},
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), parent)

	gotCtx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	if gotCtx != ctx {
		t.Fatalf("expected helper span to reuse the request context")
	}
	if span.SpanContext().IsValid() {
		t.Fatalf("expected helper name to get a non-recording span")
	}
}
