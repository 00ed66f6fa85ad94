package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"WARNING", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"verbose", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := WithComponent(NewWithWriter(&buf, "WARN"), ComponentCache)

	logger.Info("dropped")
	logger.Warn("cache unavailable", FieldError, "dial tcp: refused")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Errorf("info message should be filtered at WARN level: %s", out)
	}
	if !strings.Contains(out, "component=cache") {
		t.Errorf("expected component attribute, got %s", out)
	}
	if !strings.Contains(out, `error="dial tcp: refused"`) {
		t.Errorf("expected error attribute, got %s", out)
	}
}
