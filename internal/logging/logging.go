// Package logging настраивает структурированное логирование через log/slog.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Имена компонентов для атрибута component
const (
	ComponentApp    = "app"
	ComponentHTTP   = "http"
	ComponentTools  = "tools"
	ComponentCache  = "cache"
	ComponentTrace  = "tracing"
	FieldComponent  = "component"
	FieldError      = "error"
	FieldTool       = "tool"
	FieldDurationMS = "duration_ms"
)

// ParseLevel переводит LOG_LEVEL (DEBUG, INFO, WARN, ERROR) в slog.Level.
// Неизвестные значения дают INFO.
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New создает текстовый логгер в stdout
func New(level string) *slog.Logger {
	return NewWithWriter(os.Stdout, level)
}

// NewWithWriter создает текстовый логгер, пишущий в w
func NewWithWriter(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)}))
}

// WithComponent добавляет к логгеру имя компонента
func WithComponent(logger *slog.Logger, component string) *slog.Logger {
	return logger.With(FieldComponent, component)
}
