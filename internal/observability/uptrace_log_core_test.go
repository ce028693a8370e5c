package observability

import (
	"context"
	"errors"
	"testing"

	otellog "go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestShouldSkipUptraceLog(t *testing.T) {
	if !shouldSkipUptraceLog("http request", map[string]any{"path": "/healthz"}) {
		t.Fatalf("expected health check log to be skipped")
	}
	if shouldSkipUptraceLog("http request", map[string]any{"path": "/v1/teams"}) {
		t.Fatalf("did not expect non-health log to be skipped")
	}
	if shouldSkipUptraceLog("player created", map[string]any{"path": "/healthz"}) {
		t.Fatalf("did not expect non-request log to be skipped")
	}
}

func TestFieldValuesAndAttributes(t *testing.T) {
	values := fieldValues(
		[]zapcore.Field{zap.String("service", "football-tournament-api")},
		[]zapcore.Field{
			zap.String("team_id", "team-garuda"),
			zap.Int("jersey_number", 10),
			zap.NamedError("error", errors.New("jersey number already taken")),
			zap.String("trace_id", "4bf92f3577b34da6a3ce929d0e0e4736"),
		},
	)

	attrs := buildOTelLogAttributes(values)
	if len(attrs) != 4 {
		t.Fatalf("expected 4 attributes without trace ids, got %d", len(attrs))
	}
	byKey := make(map[string]otellog.Value, len(attrs))
	for _, attr := range attrs {
		byKey[attr.Key] = attr.Value
	}
	if byKey["team_id"].AsString() != "team-garuda" {
		t.Fatalf("unexpected team_id attribute")
	}
	if byKey["jersey_number"].AsInt64() != 10 {
		t.Fatalf("unexpected jersey_number attribute")
	}
	if byKey["error"].AsString() != "jersey number already taken" {
		t.Fatalf("unexpected error attribute: %v", byKey["error"])
	}
}

func TestTraceContext(t *testing.T) {
	ctx := traceContext(map[string]any{
		"trace_id": "4bf92f3577b34da6a3ce929d0e0e4736",
		"span_id":  "00f067aa0ba902b7",
	})
	if !spanContextValid(ctx) {
		t.Fatalf("expected valid span context")
	}
	if spanContextValid(traceContext(map[string]any{"trace_id": "bad"})) {
		t.Fatalf("expected invalid span context for malformed ids")
	}
}

func TestToOTelLogValue_Map(t *testing.T) {
	v := toOTelLogValue(map[string]any{
		"goals": 3,
		"won":   true,
	}, 0)
	if v.Kind() != otellog.KindMap {
		t.Fatalf("expected map value, got %s", v.Kind())
	}
	if items := v.AsMap(); len(items) != 2 {
		t.Fatalf("expected 2 map items, got %d", len(items))
	}
}

func TestUptraceLogCore_RespectsLevel(t *testing.T) {
	core := newUptraceLogCore("dev", zapcore.WarnLevel)
	if core.Enabled(zapcore.InfoLevel) {
		t.Fatalf("expected info to be disabled")
	}
	if !core.Enabled(zapcore.ErrorLevel) {
		t.Fatalf("expected error to be enabled")
	}
	child := core.With([]zapcore.Field{zap.String("component", "httpapi")})
	if err := child.Write(zapcore.Entry{Level: zapcore.ErrorLevel, Message: "boom"}, nil); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func spanContextValid(ctx context.Context) bool {
	return trace.SpanContextFromContext(ctx).IsValid()
}
