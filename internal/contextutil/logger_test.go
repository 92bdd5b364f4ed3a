package contextutil

import (
	"context"
	"log/slog"
	"os"
	"testing"
)

func TestLoggerFromContext(t *testing.T) {
	ctx := context.Background()

	// No logger in context falls back to the default
	if got := LoggerFromContext(ctx); got != slog.Default() {
		t.Error("LoggerFromContext() without logger should return default")
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	ctx = WithLogger(ctx, logger)
	if got := LoggerFromContext(ctx); got != logger {
		t.Error("LoggerFromContext() should return the logger set via WithLogger")
	}
}

func TestRequestIDFromContext(t *testing.T) {
	ctx := context.Background()

	if got := RequestIDFromContext(ctx); got != "" {
		t.Errorf("RequestIDFromContext() without id = %q, want empty", got)
	}

	ctx = WithRequestID(ctx, "req-123")
	if got := RequestIDFromContext(ctx); got != "req-123" {
		t.Errorf("RequestIDFromContext() = %q, want req-123", got)
	}
}
