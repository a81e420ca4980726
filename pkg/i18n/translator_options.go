package i18n

import "log/slog"

// Option configures a Translator.
type Option func(*Translator)

// WithDefaultLanguage names the locale used when the caller gives none or
// one that no catalog matches. Empty values are ignored.
func WithDefaultLanguage(lang string) Option {
	return func(t *Translator) {
		if lang != "" {
			t.defaultLang = lang
		}
	}
}

// WithFallbackLanguage names the locale consulted when the requested one has
// no message for a key. Empty values are ignored.
func WithFallbackLanguage(lang string) Option {
	return func(t *Translator) {
		if lang != "" {
			t.fallbackLang = lang
		}
	}
}

// WithFallbackToKey makes T return the key itself when no catalog has it.
// On by default; when off, T returns "".
func WithFallbackToKey(on bool) Option {
	return func(t *Translator) { t.fallbackToKey = on }
}

func WithLogger(l *slog.Logger) Option {
	return func(t *Translator) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithMissingTranslationsLogging warns about keys missing from the requested
// locale.
func WithMissingTranslationsLogging(on bool) Option {
	return func(t *Translator) { t.missingLogMode = on }
}

// WithNoLogging silences the translator entirely.
func WithNoLogging() Option {
	return func(t *Translator) {
		t.logger = slog.New(slog.DiscardHandler)
		t.missingLogMode = false
	}
}
