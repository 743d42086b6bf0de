package app

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, LogLevelWarn)

	log.Debug("hidden")
	log.Info("hidden")
	log.Warn("shown")
	log.Error("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("expected low-severity messages to be dropped, got %q", out)
	}
	if got := strings.Count(out, "shown"); got != 2 {
		t.Errorf("expected 2 logged messages, got %d in %q", got, out)
	}
}

func TestLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, LogLevelDebug).WithComponent("watcher").WithField("path", "a.toml")

	log.Info("reloaded")

	out := buf.String()
	if !strings.Contains(out, "component=watcher") {
		t.Errorf("expected component field, got %q", out)
	}
	if !strings.Contains(out, "path=a.toml") {
		t.Errorf("expected path field, got %q", out)
	}
	if !strings.Contains(out, "[INFO]") {
		t.Errorf("expected level tag, got %q", out)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LogLevelDebug},
		{"info", LogLevelInfo},
		{"warn", LogLevelWarn},
		{"error", LogLevelError},
		{"nonsense", LogLevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLogLevel(tt.in); got != tt.want {
			t.Errorf("ParseLogLevel(%q): expected %v, got %v", tt.in, tt.want, got)
		}
	}
}

func TestNullLogger(t *testing.T) {
	// must not panic and must stay silent
	NullLogger.Error("dropped")
}
