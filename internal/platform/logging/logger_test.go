package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_WritesStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelInfo, Output: &buf, Service: "tournament-api"})

	logger.Info("player created", "player_id", "p-1", "error", errors.New("boom"))

	var entry map[string]any
	if err := sonic.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal log line: %v (raw=%s)", err, buf.String())
	}
	if entry["msg"] != "player created" {
		t.Fatalf("unexpected msg: %v", entry["msg"])
	}
	if entry["player_id"] != "p-1" {
		t.Fatalf("unexpected player_id: %v", entry["player_id"])
	}
	if entry["error"] != "boom" {
		t.Fatalf("unexpected error field: %v", entry["error"])
	}
	if entry["service"] != "tournament-api" {
		t.Fatalf("unexpected service field: %v", entry["service"])
	}
}

func TestLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelWarn, Output: &buf})

	logger.InfoContext(context.Background(), "ignored")
	if buf.Len() != 0 {
		t.Fatalf("expected info entry to be dropped, got %s", buf.String())
	}

	logger.WarnContext(context.Background(), "kept")
	if !strings.Contains(buf.String(), "kept") {
		t.Fatalf("expected warn entry, got %s", buf.String())
	}
}

func TestLogger_NilReceiverFallsBackToDefault(t *testing.T) {
	var logger *Logger
	logger.Info("no panic")
	if logger.With("k", "v") == nil {
		t.Fatalf("expected non-nil logger from nil receiver")
	}
}

func TestLogger_WithCoreTeesEntries(t *testing.T) {
	var buf bytes.Buffer
	core, observed := observer.New(zapcore.InfoLevel)
	logger := New(Options{Level: LevelInfo, Output: &buf}).WithCore(core)

	logger.Info("match updated", "match_id", "m-1")

	if !strings.Contains(buf.String(), "match updated") {
		t.Fatalf("expected primary output to keep the entry, got %s", buf.String())
	}
	entries := observed.FilterMessage("match updated").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 teed entry, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["match_id"]; got != "m-1" {
		t.Fatalf("unexpected teed match_id: %v", got)
	}
}
