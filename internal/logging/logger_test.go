package logging

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"nonsense", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFromContext_ActionID(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	defer slog.SetDefault(prev)

	Setup("info", "json", &buf)

	ctx := ContextWithActionID(context.Background(), "abc-123")
	FromContext(ctx).Info("hello")

	if !strings.Contains(buf.String(), `"action_id":"abc-123"`) {
		t.Errorf("log output %q missing action_id", buf.String())
	}
}

func TestContextWithActionID_Generates(t *testing.T) {
	ctx := ContextWithActionID(context.Background(), "")
	if ActionID(ctx) == "" {
		t.Fatal("ActionID() is empty, want generated id")
	}
	if ActionID(context.Background()) != "" {
		t.Error("ActionID() on bare context should be empty")
	}
}

func TestSetup_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	defer slog.SetDefault(prev)

	logger := Setup("warn", "text", &buf)
	logger.Info("quiet")
	logger.Warn("loud")

	out := buf.String()
	if strings.Contains(out, "quiet") {
		t.Errorf("info entry written at warn level: %q", out)
	}
	if !strings.Contains(out, "loud") {
		t.Errorf("warn entry missing: %q", out)
	}
}

func TestOpen(t *testing.T) {
	w, closeFn, err := Open("-")
	if err != nil {
		t.Fatalf("Open(-) error = %v", err)
	}
	if w != os.Stderr {
		t.Error("Open(-) should return stderr")
	}
	closeFn()

	path := filepath.Join(t.TempDir(), "logs", "app.log")
	w, closeFn, err = Open(path)
	if err != nil {
		t.Fatalf("Open(%q) error = %v", path, err)
	}
	if _, err := w.Write([]byte("line\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "line\n" {
		t.Errorf("log file = %q, want %q", data, "line\n")
	}
}
