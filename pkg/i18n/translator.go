package i18n

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/language"
)

// Translator resolves message keys against loaded catalogs. It is read-only
// after construction and safe for concurrent use.
type Translator struct {
	translations   map[string]map[string]any
	defaultLang    string
	fallbackLang   string
	fallbackToKey  bool
	missingLogMode bool
	logger         *slog.Logger
	matcher        language.Matcher
	matchOrder     []string
}

// NewTranslator creates a new Translator instance with the given adapter and options.
func NewTranslator(ctx context.Context, adapter TranslationAdapter, options ...Option) (*Translator, error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}

	t := &Translator{
		defaultLang:    DefaultLanguage,
		fallbackLang:   FallbackLanguage,
		fallbackToKey:  true,
		missingLogMode: false,
		logger:         slog.New(slog.DiscardHandler),
	}

	for _, option := range options {
		option(t)
	}

	translations, err := adapter.Load(ctx)
	if err != nil {
		return nil, err
	}

	if err := t.validateTranslations(translations); err != nil {
		return nil, err
	}

	t.translations = translations
	t.matcher, t.matchOrder = newMatcher(t.defaultLang, t.SupportedLanguages())
	t.logger.InfoContext(ctx, "translations loaded", "languages", t.SupportedLanguages())
	return t, nil
}

func (t *Translator) validateTranslations(trans map[string]map[string]any) error {
	if len(trans) == 0 {
		t.logger.Warn("no translations provided")
		return nil
	}

	for lang, translations := range trans {
		if lang == "" {
			return ErrEmptyLanguageCode
		}
		if translations == nil {
			return errors.Join(ErrNilLanguageMap, fmt.Errorf("language %q", lang))
		}
	}
	return nil
}

// SupportedLanguages returns a list of language codes that have translations available.
func (t *Translator) SupportedLanguages() []string {
	langs := make([]string, 0, len(t.translations))
	for lang := range t.translations {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

func (t *Translator) DefaultLanguage() string { return t.defaultLang }

func (t *Translator) FallbackLanguage() string { return t.fallbackLang }

// Match maps a requested language tag such as "zh-CN" or "en_US" to a
// loaded catalog language. Empty or unknown tags yield the default language.
func (t *Translator) Match(lang string) string {
	lang = normalizeTag(lang)
	if lang == "" {
		return t.defaultLang
	}
	if _, ok := t.translations[lang]; ok {
		return lang
	}
	if len(t.translations) == 0 {
		return t.defaultLang
	}

	tag, err := language.Parse(lang)
	if err != nil {
		return t.defaultLang
	}
	_, idx, conf := t.matcher.Match(tag)
	if conf == language.No || idx >= len(t.matchOrder) {
		return t.defaultLang
	}
	return t.matchOrder[idx]
}

// getTranslation traverses a nested map using dot-separated keys.
// For example, key "validation.number.min" will traverse m["validation"] then ["number"] then ["min"].
func (t *Translator) getTranslation(m map[string]any, key string) (any, bool) {
	parts := strings.Split(key, ".")
	current := m

	for i, part := range parts {
		if i == len(parts)-1 {
			val, ok := current[part]
			return val, ok
		}

		next, ok := current[part]
		if !ok {
			return nil, false
		}

		currentMap, ok := next.(map[string]any)
		if !ok {
			// Try to convert from map[any]any to map[string]any
			anyMap, isAnyMap := next.(map[any]any)
			if !isAnyMap {
				return nil, false
			}

			currentMap = make(map[string]any, len(anyMap))
			for k, v := range anyMap {
				if ks, ok := k.(string); ok {
					currentMap[ks] = v
				}
			}
		}

		current = currentMap
	}

	return nil, false
}

func (t *Translator) lookupIn(lang, key string) (string, bool) {
	langMap, ok := t.translations[lang]
	if !ok {
		return "", false
	}
	val, ok := t.getTranslation(langMap, key)
	if !ok {
		return "", false
	}
	switch v := val.(type) {
	case string:
		return v, true
	case fmt.Stringer:
		return v.String(), true
	}
	if t.missingLogMode {
		t.logger.Warn("translation is not a string", "lang", lang, "key", key, "type", fmt.Sprintf("%T", val))
	}
	return "", false
}

// Lookup resolves key in the matched language, then in the fallback
// language, and substitutes %{name} placeholders from params. It reports
// false when neither catalog holds the key.
func (t *Translator) Lookup(lang, key string, params map[string]string) (string, bool) {
	matched := t.Match(lang)
	for _, l := range []string{matched, t.fallbackLang} {
		if tmpl, ok := t.lookupIn(l, key); ok {
			return namedSprintf(tmpl, params), true
		}
	}
	if t.missingLogMode {
		t.logger.Warn("translation not found", "lang", matched, "key", key)
	}
	return "", false
}

// HasTranslation checks if a translation exists for the given language and key.
func (t *Translator) HasTranslation(lang, key string) bool {
	_, ok := t.lookupIn(lang, key)
	return ok
}

// T translates a key for the given language with key-value pair arguments:
// translator.T("en", "welcome", "name", "John") substitutes "%{name}".
// When no catalog holds the key, the key itself is returned unless
// WithFallbackToKey(false) is set.
func (t *Translator) T(lang, key string, args ...string) string {
	if msg, ok := t.Lookup(lang, key, buildParams(args)); ok {
		return msg
	}
	if t.fallbackToKey {
		return namedSprintf(key, buildParams(args))
	}
	return ""
}

// Td translates a key with a default fallback if not found
// Provides an explicit fallback rather than using the key itself
func (t *Translator) Td(lang, key, defaultValue string, args ...string) string {
	params := buildParams(args)
	if msg, ok := t.Lookup(lang, key, params); ok {
		return msg
	}
	return namedSprintf(defaultValue, params)
}

// buildParams converts a slice of strings (expected as key, value, key, value, …)
// into a map. If the number of arguments is odd, the last one is ignored.
func buildParams(args []string) map[string]string {
	params := make(map[string]string, len(args)/2)
	for i := 0; i < len(args)-1; i += 2 {
		params[args[i]] = args[i+1]
	}
	return params
}

// Regex to find named parameters in the form %{name}
var paramRegex = regexp.MustCompile(`%\{([^}]+)\}`)

// namedSprintf performs substitution of named placeholders in the form "%{key}"
// using the provided map. Unknown placeholders are kept.
func namedSprintf(tmpl string, params map[string]string) string {
	if len(params) == 0 {
		return tmpl
	}
	return paramRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		name := match[2 : len(match)-1]
		if val, ok := params[name]; ok {
			return val
		}
		return match
	})
}
