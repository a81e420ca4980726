package logger

import (
	"fmt"
	"log/slog"
	"strings"
)

// Config holds logger settings loaded from the environment.
type Config struct {
	Level  string `env:"KG_LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	Format string `env:"KG_LOG_FORMAT" envDefault:"json" validate:"oneof=json text"`
	Env    string `env:"KG_ENV" envDefault:"production"`
}

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// FromConfig converts cfg into options. The environment preset is applied
// first so explicit level and format settings win.
func FromConfig(cfg Config, service string) ([]Option, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	format := Format(strings.ToLower(cfg.Format))
	if format == "" {
		format = FormatJSON
	}
	if format != FormatJSON && format != FormatText {
		return nil, fmt.Errorf("invalid log format %q", cfg.Format)
	}
	return []Option{
		WithEnvironment(cfg.Env, service),
		WithLevel(level),
		WithFormat(format),
	}, nil
}
