package kinderkit

import (
	"context"
	"log/slog"
	"maps"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/kinderkit/pkg/config"
	"github.com/dmitrymomot/kinderkit/pkg/engine"
	"github.com/dmitrymomot/kinderkit/pkg/i18n"
	"github.com/dmitrymomot/kinderkit/pkg/logger"
	"github.com/dmitrymomot/kinderkit/pkg/metrics"
	"github.com/dmitrymomot/kinderkit/pkg/schemas"
)

// ServiceName is attached to every log record of the engine.
const ServiceName = "kinderkit"

// Config gathers the settings read from the KG_* environment variables.
type Config struct {
	Log     logger.Config
	Engine  engine.Config
	Metrics metrics.Config
}

// LoadConfig reads Config from the environment and a .env file if present.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Option configures New.
type Option func(*options)

type options struct {
	cfg        *Config
	logger     *slog.Logger
	stores     Stores
	hooks      engine.Hooks
	registerer prometheus.Registerer
}

// WithConfig skips reading the environment.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		o.cfg = &cfg
	}
}

// WithLogger replaces the logger built from Config.Log.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithStores serves the external rules of the domain schemas from the
// given backends. See StoreHooks.
func WithStores(s Stores) Option {
	return func(o *options) {
		o.stores = s
	}
}

// WithHooks adds hook implementations. They win over the store hooks with
// the same rule ID.
func WithHooks(h engine.Hooks) Option {
	return func(o *options) {
		maps.Copy(o.hooks, h)
	}
}

// WithRegisterer enables engine metrics on reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = reg
	}
}

// Catalog merges the schema labels and messages over the engine catalog.
func Catalog() i18n.TranslationAdapter {
	return i18n.MultiAdapter{engine.Catalog(), schemas.Catalog()}
}

// New builds an engine over the kindergarten domain schemas.
func New(ctx context.Context, opts ...Option) (*engine.Engine, error) {
	o := &options{hooks: make(engine.Hooks)}
	for _, opt := range opts {
		opt(o)
	}

	cfg := Config{Engine: engine.DefaultConfig(), Metrics: metrics.DefaultConfig()}
	if o.cfg != nil {
		cfg = *o.cfg
	} else {
		loaded, err := LoadConfig()
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	log := o.logger
	if log == nil {
		logOpts, err := logger.FromConfig(cfg.Log, ServiceName)
		if err != nil {
			return nil, err
		}
		log = logger.New(logOpts...)
	}

	defaults := engine.DefaultConfig()
	locale, fallback := cfg.Engine.DefaultLocale, cfg.Engine.FallbackLocale
	if locale == "" {
		locale = defaults.DefaultLocale
	}
	if fallback == "" {
		fallback = defaults.FallbackLocale
	}
	translator, err := i18n.NewTranslator(ctx, Catalog(),
		i18n.WithDefaultLanguage(locale),
		i18n.WithFallbackLanguage(fallback),
		i18n.WithLogger(log.With(logger.Component("i18n"))),
	)
	if err != nil {
		return nil, err
	}

	reg, err := schemas.NewRegistry()
	if err != nil {
		return nil, err
	}

	hooks, err := StoreHooks(o.stores)
	if err != nil {
		return nil, err
	}
	maps.Copy(hooks, o.hooks)

	engineOpts := []engine.Option{
		engine.WithConfig(cfg.Engine),
		engine.WithLogger(log.With(logger.Component("engine"))),
		engine.WithTranslator(translator),
		engine.WithHooks(hooks),
	}
	if o.registerer != nil {
		mcfg := cfg.Metrics
		if mcfg.Namespace == "" && mcfg.Subsystem == "" {
			mcfg = metrics.DefaultConfig()
		}
		engineOpts = append(engineOpts, engine.WithMetrics(metrics.New(mcfg, o.registerer)))
	}

	return engine.New(reg, engineOpts...)
}
