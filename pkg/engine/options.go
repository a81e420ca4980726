package engine

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/kinderkit/pkg/i18n"
	"github.com/dmitrymomot/kinderkit/pkg/metrics"
)

// Option configures an Engine.
type Option func(*Engine)

// WithTranslator replaces the built-in catalog. A nil translator disables
// localization and keeps the English messages of the rule primitives.
func WithTranslator(t *i18n.Translator) Option {
	return func(e *Engine) {
		e.translator = t
		e.translatorSet = true
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithHooks registers hook implementations by external rule ID.
func WithHooks(hooks Hooks) Option {
	return func(e *Engine) {
		for id, h := range hooks {
			e.hooks[id] = h
		}
	}
}

func WithHook(id string, h Hook) Option {
	return func(e *Engine) {
		e.hooks[id] = h
	}
}

// WithRequiredHooks makes New fail when a registered entity declares an
// external rule without a configured hook.
func WithRequiredHooks() Option {
	return func(e *Engine) {
		e.cfg.RequireHooks = true
	}
}

func WithMetrics(m *metrics.EngineMetrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithConfig replaces the engine defaults. Zero values keep the defaults.
func WithConfig(cfg Config) Option {
	return func(e *Engine) {
		if cfg.DefaultLocale != "" {
			e.cfg.DefaultLocale = cfg.DefaultLocale
		}
		if cfg.FallbackLocale != "" {
			e.cfg.FallbackLocale = cfg.FallbackLocale
		}
		if cfg.HookTimeout > 0 {
			e.cfg.HookTimeout = cfg.HookTimeout
		}
		if cfg.HookMode != "" {
			e.cfg.HookMode = cfg.HookMode
		}
		e.cfg.RequireHooks = e.cfg.RequireHooks || cfg.RequireHooks
	}
}

// CallOption configures a single Validate call.
type CallOption func(*callOptions)

type callOptions struct {
	prior       map[string]any
	locale      string
	hookTimeout time.Duration
	sequential  bool
}

// WithPrior supplies the stored state of the entity. Status transitions
// are checked only when it is given.
func WithPrior(prior map[string]any) CallOption {
	return func(o *callOptions) {
		o.prior = prior
	}
}

func WithLocale(locale string) CallOption {
	return func(o *callOptions) {
		o.locale = locale
	}
}

// WithHookTimeout bounds every hook invocation of the call.
func WithHookTimeout(d time.Duration) CallOption {
	return func(o *callOptions) {
		if d > 0 {
			o.hookTimeout = d
		}
	}
}

// WithSequentialHooks runs the hooks of each wave one after another.
func WithSequentialHooks() CallOption {
	return func(o *callOptions) {
		o.sequential = true
	}
}
