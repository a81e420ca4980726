package engine

import (
	"fmt"
	"maps"
	"strconv"
	"strings"

	"github.com/dmitrymomot/kinderkit/pkg/schema"
	"github.com/dmitrymomot/kinderkit/pkg/validator"
)

const labelParam = "label"

// Translate renders a stored violation in another locale.
func (e *Engine) Translate(locale string, ve validator.ValidationError) validator.ValidationError {
	return e.localize(e.matchLocale(locale), ve)
}

func (e *Engine) matchLocale(locale string) string {
	if e.translator != nil {
		return e.translator.Match(locale)
	}
	if locale == "" {
		return e.cfg.DefaultLocale
	}
	return locale
}

// withLabel records the catalog key of the field a violation belongs to.
func withLabel(ent *schema.Entity, ve validator.ValidationError) validator.ValidationError {
	if _, named, ok := locate(ent.Fields(), ve.Path); ok && named.Name() != "" {
		tv := maps.Clone(ve.TranslationValues)
		if tv == nil {
			tv = make(map[string]any, 1)
		}
		tv[labelParam] = named.Label()
		ve.TranslationValues = tv
	}
	return ve
}

// localize resolves the message of ve through the catalogs. A key missing
// from both the locale and the fallback catalog yields the code itself.
// Without a translator the built-in English message is kept.
func (e *Engine) localize(locale string, ve validator.ValidationError) validator.ValidationError {
	if e.translator == nil {
		return ve
	}
	key := ve.TranslationKey
	if key == "" {
		key = validator.TranslationKey(ve.Code)
	}
	ve.Message = e.render(locale, key, ve.Code, ve.Path, ve.TranslationValues)
	return ve
}

func (e *Engine) render(locale, key, code string, path validator.Path, values map[string]any) string {
	params := make(map[string]string, len(values)+1)
	for k, v := range values {
		params[k] = formatParam(v)
	}

	labelKey, _ := values[labelParam].(string)
	if labelKey == "" {
		labelKey = "fields." + path.Field()
	}
	if label, ok := e.translator.Lookup(locale, labelKey, nil); ok {
		params["field"] = label
	} else if params["field"] == "" {
		params["field"] = path.Field()
	}

	if msg, ok := e.translator.Lookup(locale, key, params); ok {
		return msg
	}
	return code
}

func formatParam(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case []string:
		return strings.Join(x, ", ")
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(v)
}
