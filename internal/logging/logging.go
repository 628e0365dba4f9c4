// Package logging provides zerolog construction and context plumbing for
// the carbonlens CLI and core packages.
//
// Core packages never construct loggers themselves; they pull one from the
// context via FromContext so that callers control level, format, and
// destination.
package logging

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Format selects the log output encoding.
const (
	// FormatConsole is the human-readable console format.
	FormatConsole = "console"

	// FormatJSON is newline-delimited JSON, suitable for files and collectors.
	FormatJSON = "json"
)

// Config controls logger construction.
type Config struct {
	// Level is a zerolog level name (trace, debug, info, warn, error).
	// Unparseable values fall back to info.
	Level string

	// Format is FormatConsole or FormatJSON. Defaults to console on a
	// terminal, JSON otherwise.
	Format string

	// Output overrides the destination writer. Defaults to stderr.
	Output io.Writer
}

// New constructs a zerolog.Logger from the config.
func New(cfg Config) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		lvl = zerolog.InfoLevel
	}

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	if cfg.Format != FormatJSON {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	}

	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

// ComponentLogger returns a child logger tagged with a component name.
// Component names identify the emitting subsystem (cli, convert, validation).
func ComponentLogger(logger zerolog.Logger, component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}

// WithContext embeds the logger in the context for retrieval by FromContext.
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}

// FromContext returns the logger embedded in ctx, or a disabled logger when
// none is present. Core packages use this so library consumers that do not
// configure logging stay silent.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}
