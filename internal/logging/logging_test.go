package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestTextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(slog.LevelInfo, "text", &buf)

	logger.Info("session saved", "user", "rak")

	out := buf.String()
	if !strings.Contains(out, "session saved") {
		t.Errorf("expected message in output, got: %s", out)
	}
	if !strings.Contains(out, "user=rak") {
		t.Errorf("expected attribute in output, got: %s", out)
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(slog.LevelInfo, "JSON", &buf)

	logger.Info("session saved", "user", "rak")

	out := buf.String()
	if !strings.Contains(out, `"msg":"session saved"`) {
		t.Errorf("expected JSON msg field, got: %s", out)
	}
	if !strings.Contains(out, `"user":"rak"`) {
		t.Errorf("expected JSON attribute, got: %s", out)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(slog.LevelWarn, "text", &buf)

	logger.Info("filtered")
	logger.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "filtered") {
		t.Errorf("info should be filtered at warn level, got: %s", out)
	}
	if !strings.Contains(out, "kept") {
		t.Errorf("warn should pass at warn level, got: %s", out)
	}
}

func TestDebugAddsSource(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(slog.LevelDebug, "text", &buf)

	logger.Debug("cache warm")

	if !strings.Contains(buf.String(), "logging_test.go") {
		t.Errorf("debug level should record source location, got: %s", buf.String())
	}
}

func TestComponentChild(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(slog.LevelInfo, "text", &buf)
	child := logger.With("component", "store")

	child.Info("sql", "op", "migrate")

	out := buf.String()
	if !strings.Contains(out, "component=store") {
		t.Errorf("expected component attribute, got: %s", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{" info ", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
