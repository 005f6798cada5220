// =============================================================================
// EDI to CSV Converter - Logging Setup
// =============================================================================
//
// Configures the application-wide slog logger from configuration. Structured
// logging is used everywhere except the end-of-run summary, which stays plain
// stdout for operators.
//
// =============================================================================

package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Setup builds a slog logger with the given level and format ("text" or
// "json") writing to stderr, installs it as the default, and returns it.
func Setup(level, format string) *slog.Logger {
	return SetupWithWriter(os.Stderr, level, format)
}

// SetupWithWriter is Setup with an explicit destination, used by tests.
func SetupWithWriter(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// ParseLevel maps a config string to a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
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
