// Package observability configures logsift's own structured logging.
package observability

import (
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// NewLogger returns a logger writing human-readable lines to out at the given level.
// Report output goes to stdout, so callers normally pass stderr here.
func NewLogger(out io.Writer, level string) zerolog.Logger {
	consoleWriter := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: "2006-01-02 15:04:05",
		NoColor:    true,
	}

	return zerolog.New(consoleWriter).
		Level(ParseLevel(level)).
		With().
		Timestamp().
		Logger()
}

// ParseLevel parses a string log level to zerolog.Level.
// Unknown values fall back to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}
