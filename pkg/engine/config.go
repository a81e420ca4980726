package engine

import (
	"time"

	"github.com/dmitrymomot/kinderkit/pkg/config"
)

// Hook execution modes.
const (
	HookModeConcurrent = "concurrent"
	HookModeSequential = "sequential"
)

// Config holds engine defaults that callers may override per call.
type Config struct {
	DefaultLocale  string        `env:"KG_DEFAULT_LOCALE" envDefault:"zh" validate:"required"`
	FallbackLocale string        `env:"KG_FALLBACK_LOCALE" envDefault:"en" validate:"required"`
	HookTimeout    time.Duration `env:"KG_HOOK_TIMEOUT" envDefault:"2s" validate:"gt=0"`
	HookMode       string        `env:"KG_HOOK_MODE" envDefault:"concurrent" validate:"oneof=concurrent sequential"`
	RequireHooks   bool          `env:"KG_REQUIRE_HOOKS" envDefault:"false"`
}

// DefaultConfig mirrors the envDefault tags.
func DefaultConfig() Config {
	return Config{
		DefaultLocale:  "zh",
		FallbackLocale: "en",
		HookTimeout:    2 * time.Second,
		HookMode:       HookModeConcurrent,
	}
}

// LoadConfig reads the KG_* environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
