// Package logging builds the slog logger shared by the command line tool.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/lmittmann/tint"
)

// Formats accepted by Options.Format
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatColor = "color"
)

// Options selects where and how records are written
type Options struct {
	// Writer defaults to os.Stderr so command output on stdout stays clean
	Writer    io.Writer
	Level     slog.Leveler
	Format    string
	AddSource bool
}

// New creates a logger for the given options
func New(opts Options) (*slog.Logger, error) {
	if opts.Writer == nil {
		opts.Writer = os.Stderr
	}
	if opts.Level == nil {
		opts.Level = slog.LevelInfo
	}

	handlerOpts := &slog.HandlerOptions{
		AddSource: opts.AddSource,
		Level:     opts.Level,
	}

	var handler slog.Handler
	switch strings.ToLower(opts.Format) {
	case FormatJSON:
		handler = slog.NewJSONHandler(opts.Writer, handlerOpts)
	case FormatColor:
		handler = tint.NewHandler(opts.Writer, &tint.Options{
			Level:      opts.Level,
			AddSource:  opts.AddSource,
			TimeFormat: "2006-01-02 15:04:05",
		})
	case FormatText, "":
		handler = slog.NewTextHandler(opts.Writer, handlerOpts)
	default:
		return nil, fmt.Errorf("unknown log format %q", opts.Format)
	}
	return slog.New(handler), nil
}

// ParseLevel converts debug, info, warn or error into a slog level
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

// Discard returns a logger that drops every record
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
