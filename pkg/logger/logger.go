// Package logger builds the application's slog.Logger. JSON output is meant
// for production log aggregation, text output for local development.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Format selects the log output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// Config is the environment-driven logger configuration.
type Config struct {
	Level  slog.Level `env:"LOG_LEVEL" envDefault:"info"`
	Format Format     `env:"LOG_FORMAT" envDefault:"json"`
}

type options struct {
	level  slog.Level
	format Format
	output io.Writer
	attrs  []slog.Attr
}

// Option configures logger creation.
type Option func(*options)

func WithLevel(l slog.Level) Option {
	return func(o *options) { o.level = l }
}

// WithFormat sets output format. Invalid formats panic: a misconfigured
// logger should stop startup, not fail silently at runtime.
func WithFormat(f Format) Option {
	return func(o *options) {
		switch f {
		case FormatJSON, FormatText:
			o.format = f
		default:
			panic(fmt.Errorf("invalid log format %q: must be %q or %q", f, FormatJSON, FormatText))
		}
	}
}

// WithOutput sets a custom output destination; nil writers are ignored.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.output = w
		}
	}
}

// WithAttr adds static attributes to every record.
func WithAttr(attrs ...slog.Attr) Option {
	return func(o *options) {
		o.attrs = append(o.attrs, attrs...)
	}
}

// New creates a logger with the given options. Defaults: info level, JSON
// format, stdout.
func New(opts ...Option) *slog.Logger {
	o := &options{
		level:  slog.LevelInfo,
		format: FormatJSON,
		output: os.Stdout,
	}
	for _, opt := range opts {
		opt(o)
	}

	handlerOpts := &slog.HandlerOptions{Level: o.level}

	var handler slog.Handler
	switch o.format {
	case FormatText:
		handler = slog.NewTextHandler(o.output, handlerOpts)
	default:
		handler = slog.NewJSONHandler(o.output, handlerOpts)
	}

	if len(o.attrs) > 0 {
		handler = handler.WithAttrs(o.attrs)
	}

	return slog.New(handler)
}

// NewFromConfig creates a logger from environment configuration.
func NewFromConfig(cfg Config, opts ...Option) *slog.Logger {
	base := []Option{WithLevel(cfg.Level), WithFormat(cfg.Format)}
	return New(append(base, opts...)...)
}
