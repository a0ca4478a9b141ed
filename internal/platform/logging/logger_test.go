package logging

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger() (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return FromZap(zap.New(core)), logs
}

func TestLogger_KeyValuePairs(t *testing.T) {
	t.Parallel()

	logger, logs := newObservedLogger()
	logger.Info("match scored", "match_id", "m-001", "error", errors.New("boom"))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["match_id"] != "m-001" {
		t.Fatalf("match_id = %v", fields["match_id"])
	}
	if fields["error"] != "boom" {
		t.Fatalf("error field = %v", fields["error"])
	}
}

func TestLogger_OddArgumentsDoNotDropRecords(t *testing.T) {
	t.Parallel()

	logger, logs := newObservedLogger()
	logger.Warn("lonely key", "count")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if _, ok := entries[0].ContextMap()["count"]; !ok {
		t.Fatalf("missing placeholder field: %v", entries[0].ContextMap())
	}
}

func TestLogger_WithCarriesFields(t *testing.T) {
	t.Parallel()

	logger, logs := newObservedLogger()
	logger.With("component", "scoring").Info("recount finished")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["component"]; got != "scoring" {
		t.Fatalf("component = %v", got)
	}
}

func TestLogger_NilIsSafe(t *testing.T) {
	t.Parallel()

	var logger *Logger
	logger.Info("ignored")
	if err := logger.Sync(); err != nil {
		t.Fatalf("nil sync: %v", err)
	}
	logger.With("k", "v").Info("also ignored")
}
