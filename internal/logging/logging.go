// Package logging builds the process logger and carries request-scoped
// loggers through context.Context.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Options selects the level and output format of the logger.
type Options struct {
	Level  string // "debug"|"info"|"warn"|"error"
	Format string // "text"|"json"

	// Output defaults to os.Stdout.
	Output io.Writer
}

// ParseLevel maps a level name to a slog.Level. Unknown names map to info.
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

// New builds a logger from opts. JSON is the default format.
func New(opts Options) *slog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	handlerOpts := &slog.HandlerOptions{
		Level:       ParseLevel(opts.Level),
		ReplaceAttr: utcTime,
	}

	var h slog.Handler
	if strings.ToLower(opts.Format) == "text" {
		h = slog.NewTextHandler(out, handlerOpts)
	} else {
		h = slog.NewJSONHandler(out, handlerOpts)
	}
	return slog.New(h)
}

func utcTime(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
		return slog.Time(slog.TimeKey, a.Value.Time().In(time.UTC))
	}
	return a
}
