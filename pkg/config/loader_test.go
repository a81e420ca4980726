package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/kinderkit/pkg/config"
)

type fileConfig struct {
	Locale  string        `env:"KGT_LOCALE" validate:"oneof=zh en"`
	Timeout time.Duration `env:"KGT_TIMEOUT" validate:"gt=0"`
	Workers int           `env:"KGT_WORKERS" validate:"min=1,max=16"`
}

type defaultsConfig struct {
	Locale  string        `env:"KGT_DEFAULTS_LOCALE" envDefault:"zh" validate:"oneof=zh en"`
	Timeout time.Duration `env:"KGT_DEFAULTS_TIMEOUT" envDefault:"2s" validate:"gt=0"`
}

type requiredConfig struct {
	DSN string `env:"KGT_REQUIRED_DSN,required"`
}

type invalidConfig struct {
	Locale string `env:"KGT_INVALID_LOCALE" validate:"oneof=zh en"`
}

func TestLoad(t *testing.T) {
	t.Run("defaults are validated and cached", func(t *testing.T) {
		config.ResetCache()

		var cfg defaultsConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "zh", cfg.Locale)
		assert.Equal(t, 2*time.Second, cfg.Timeout)

		t.Setenv("KGT_DEFAULTS_LOCALE", "en")
		var again defaultsConfig
		require.NoError(t, config.Load(&again))
		assert.Equal(t, "zh", again.Locale, "second load is served from cache")

		require.NoError(t, config.ForceReloadConfig(&again))
		assert.Equal(t, "en", again.Locale)
	})

	t.Run("required variable missing", func(t *testing.T) {
		config.ResetCache()

		var cfg requiredConfig
		err := config.Load(&cfg)
		require.ErrorIs(t, err, config.ErrParsingConfig)

		t.Setenv("KGT_REQUIRED_DSN", "postgres://localhost/kg")
		require.NoError(t, config.ForceReloadConfig(&cfg))
		assert.Equal(t, "postgres://localhost/kg", cfg.DSN)
	})

	t.Run("failed load is not cached", func(t *testing.T) {
		config.ResetCache()

		var cfg requiredConfig
		require.Error(t, config.Load(&cfg))

		t.Setenv("KGT_REQUIRED_DSN", "postgres://localhost/kg_retry")
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "postgres://localhost/kg_retry", cfg.DSN)
	})

	t.Run("validate tags reject values", func(t *testing.T) {
		config.ResetCache()
		t.Setenv("KGT_INVALID_LOCALE", "fr")

		var cfg invalidConfig
		err := config.Load(&cfg)
		require.ErrorIs(t, err, config.ErrInvalidConfig)
		assert.Contains(t, err.Error(), "invalidConfig.Locale")
	})

	t.Run("nil pointer", func(t *testing.T) {
		var cfg *defaultsConfig
		assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
	})

	t.Run("must load panics on failure", func(t *testing.T) {
		config.ResetCache()
		t.Setenv("KGT_INVALID_LOCALE", "de")
		assert.Panics(t, func() {
			var cfg invalidConfig
			config.MustLoad(&cfg)
		})
	})
}

func TestLoadEnv(t *testing.T) {
	t.Run("later files override earlier ones", func(t *testing.T) {
		config.ResetCache()
		t.Setenv("KGT_LOCALE", "")
		t.Setenv("KGT_TIMEOUT", "")
		t.Setenv("KGT_WORKERS", "")

		require.NoError(t, config.LoadEnv("testdata/.env.base", "testdata/.env.override"))

		var cfg fileConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "zh", cfg.Locale)
		assert.Equal(t, 750*time.Millisecond, cfg.Timeout)
		assert.Equal(t, 4, cfg.Workers)
	})

	t.Run("file values still go through validation", func(t *testing.T) {
		config.ResetCache()
		t.Setenv("KGT_LOCALE", "")
		t.Setenv("KGT_TIMEOUT", "")
		t.Setenv("KGT_WORKERS", "")

		require.NoError(t, config.LoadEnv("testdata/.env.invalid"))

		var cfg fileConfig
		assert.ErrorIs(t, config.Load(&cfg), config.ErrInvalidConfig)
	})

	t.Run("missing file", func(t *testing.T) {
		err := config.LoadEnv("testdata/does-not-exist.env")
		assert.ErrorIs(t, err, config.ErrLoadingEnvFile)
		assert.Panics(t, func() { config.MustLoadEnv("testdata/does-not-exist.env") })
	})
}
