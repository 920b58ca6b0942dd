package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestWithFieldsFlowThroughContext(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "test", Level: zerolog.InfoLevel, Output: &buf})

	ctx := logg.WithFields(context.Background(), map[string]any{"username": "u1"})
	ctx = logg.WithRequestID(ctx, "req-123")
	logg.Info(ctx, "hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log line: %v", err)
	}
	if entry["username"] != "u1" {
		t.Fatalf("expected username field, got %v", entry["username"])
	}
	if entry["request_id"] != "req-123" {
		t.Fatalf("expected request_id field, got %v", entry["request_id"])
	}
	if entry["service"] != "test" {
		t.Fatalf("expected service field, got %v", entry["service"])
	}
}

func TestParseLevelFallsBackToInfo(t *testing.T) {
	if got := ParseLevel("nonsense"); got != zerolog.InfoLevel {
		t.Fatalf("expected info fallback, got %v", got)
	}
	if got := ParseLevel("debug"); got != zerolog.DebugLevel {
		t.Fatalf("expected debug, got %v", got)
	}
}
