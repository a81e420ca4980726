package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Format is the encoding of log records.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// Environment names accepted by WithEnvironment.
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

type preset struct {
	level  slog.Level
	format Format
}

var presets = map[string]preset{
	EnvDevelopment: {slog.LevelDebug, FormatText},
	EnvStaging:     {slog.LevelInfo, FormatJSON},
	EnvProduction:  {slog.LevelInfo, FormatJSON},
}

var envAliases = map[string]string{"prod": EnvProduction, "stage": EnvStaging}

type config struct {
	level      slog.Level
	format     Format
	output     io.Writer
	attrs      []slog.Attr
	extractors []ContextExtractor
}

// Option configures New.
type Option func(*config)

func WithLevel(l slog.Level) Option {
	return func(c *config) { c.level = l }
}

// WithFormat panics on anything but FormatJSON and FormatText; a bad format
// is a startup error.
func WithFormat(f Format) Option {
	if f != FormatJSON && f != FormatText {
		panic(fmt.Errorf("invalid log format %q: must be %q or %q", f, FormatJSON, FormatText))
	}
	return func(c *config) { c.format = f }
}

// WithOutput ignores a nil writer.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.output = w
		}
	}
}

// WithAttr adds static attributes to every record.
func WithAttr(attrs ...slog.Attr) Option {
	return func(c *config) { c.attrs = append(c.attrs, attrs...) }
}

// WithContextExtractors adds attributes taken from the context of each
// record, such as the call ID. Nil extractors are dropped.
func WithContextExtractors(extractors ...ContextExtractor) Option {
	return func(c *config) {
		for _, ex := range extractors {
			if ex != nil {
				c.extractors = append(c.extractors, ex)
			}
		}
	}
}

// WithContextValue logs ctx.Value(key) under name when it is set.
func WithContextValue(name string, key any) Option {
	if name == "" || key == nil {
		return func(*config) {}
	}
	return WithContextExtractors(func(ctx context.Context) (slog.Attr, bool) {
		v := ctx.Value(key)
		return slog.Any(name, v), v != nil
	})
}

// WithEnvironment applies the level and format preset of env and tags
// records with service and env. Unknown environments get the development
// preset.
func WithEnvironment(env, service string) Option {
	if alias, ok := envAliases[env]; ok {
		env = alias
	}
	p, ok := presets[env]
	if !ok {
		env, p = EnvDevelopment, presets[EnvDevelopment]
	}
	return func(c *config) {
		c.level, c.format = p.level, p.format
		if service != "" {
			c.attrs = append(c.attrs, slog.String("service", service), slog.String("env", env))
		}
	}
}

// New builds a logger. Without options it writes JSON at info level to stdout.
func New(opts ...Option) *slog.Logger {
	c := &config{level: slog.LevelInfo, format: FormatJSON, output: os.Stdout}
	for _, opt := range opts {
		opt(c)
	}

	handlerOpts := &slog.HandlerOptions{Level: c.level}
	var h slog.Handler = slog.NewJSONHandler(c.output, handlerOpts)
	if c.format == FormatText {
		h = slog.NewTextHandler(c.output, handlerOpts)
	}
	if len(c.attrs) > 0 {
		h = h.WithAttrs(c.attrs)
	}
	if len(c.extractors) > 0 {
		h = &contextHandler{Handler: h, extractors: c.extractors}
	}
	return slog.New(h)
}
