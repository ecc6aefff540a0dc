// Package logger builds the zerolog logger used across freightbill.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config selects output format and level.
type Config struct {
	Env   string    // development -> readable console; anything else -> JSON
	Level string    // trace, debug, info, warn, error
	Out   io.Writer // defaults to stderr
}

// Logger wraps zerolog so callers get one consistent setup.
type Logger struct {
	zl zerolog.Logger
}

// New creates a structured logger and installs it as zerolog's global logger.
func New(cfg Config) *Logger {
	out := cfg.Out
	if out == nil {
		out = os.Stderr
	}
	if cfg.Env == "development" {
		out = zerolog.ConsoleWriter{Out: out, NoColor: cfg.Out != nil}
	}

	zl := zerolog.New(out).Level(ParseLevel(cfg.Level)).With().Timestamp().Logger()
	log.Logger = zl

	return &Logger{zl: zl}
}

// ParseLevel maps a config level name to a zerolog level. Unknown names
// fall back to info.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Info and Fatal are the levels the CLI reports lifecycle events at.
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }

// Zerolog returns the underlying logger for packages that take one directly.
func (l *Logger) Zerolog() zerolog.Logger {
	return l.zl
}
