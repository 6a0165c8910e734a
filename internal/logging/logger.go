// Package logging provides structured logging configuration using log/slog.
//
// Every menu action gets an action ID (a UUID) stored in its context. Loggers
// obtained through FromContext carry that ID as action_id, so all entries
// written while serving one action can be correlated in the log file.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type actionIDKey struct{}

// Setup configures the global slog logger based on level and format and
// returns it.
//
// Level values: "debug", "info", "warn", "error" (default: "info")
// Format values: "text", "json" (default: "text")
//
// The terminal UI owns stdout, so w is normally a log file opened with Open.
func Setup(level, format string, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// Open returns the writer logs should go to. An empty path or "-" selects
// stderr; anything else is opened for appending, creating parent
// directories as needed. The returned close function is always non-nil.
func Open(path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return os.Stderr, func() error { return nil }, nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return f, f.Close, nil
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewActionID returns a fresh action identifier.
func NewActionID() string {
	return uuid.NewString()
}

// ContextWithActionID stores an action ID in ctx. An empty id mints a new one.
func ContextWithActionID(ctx context.Context, id string) context.Context {
	if id == "" {
		id = NewActionID()
	}
	return context.WithValue(ctx, actionIDKey{}, id)
}

// ActionID returns the action ID stored in ctx, or "" when there is none.
func ActionID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(actionIDKey{}).(string)
	return id
}

// FromContext returns a logger enriched with action context.
//
// Usage:
//
//	ctx := logging.ContextWithActionID(context.Background(), "")
//	logger := logging.FromContext(ctx)
//	logger.Info("loading table", "table", key)
func FromContext(ctx context.Context) *slog.Logger {
	logger := slog.Default()

	if id := ActionID(ctx); id != "" {
		logger = logger.With("action_id", id)
	}

	return logger
}

// WithFields returns a logger with additional structured fields.
//
// Usage:
//
//	opLogger := logging.WithFields(ctx,
//	    "table", key,
//	    "operation", "update",
//	)
//	opLogger.Info("rows rewritten", "rows", n)
func WithFields(ctx context.Context, args ...any) *slog.Logger {
	return FromContext(ctx).With(args...)
}
