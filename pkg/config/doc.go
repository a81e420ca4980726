// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv for .env files,
// github.com/caarlos0/env/v11 for parsing env tags and
// github.com/go-playground/validator/v10 for validate tags. Every
// configuration type is parsed and validated once and then served from an
// in-memory cache keyed by the type. A failed load is not cached.
//
//	type EngineConfig struct {
//	    Locale      string        `env:"KG_DEFAULT_LOCALE" envDefault:"zh" validate:"oneof=zh en"`
//	    HookTimeout time.Duration `env:"KG_HOOK_TIMEOUT" envDefault:"2s" validate:"gt=0"`
//	}
//
//	var cfg EngineConfig
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//
// LoadEnv loads additional .env files before parsing. ResetCache and
// ForceReloadConfig exist for tests that change the environment.
//
// Failures wrap ErrParsingConfig for env parsing problems and ErrInvalidConfig
// for values rejected by validate tags.
package config
