package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// Catalog languages used when none is configured.
const (
	DefaultLanguage  = "zh"
	FallbackLanguage = "en"
)

// newMatcher builds a matcher over the supported languages with def preferred
// on ties and on no match.
func newMatcher(def string, supported []string) (language.Matcher, []string) {
	ordered := make([]string, 0, len(supported)+1)
	ordered = append(ordered, def)
	for _, l := range supported {
		if l != def {
			ordered = append(ordered, l)
		}
	}

	tags := make([]language.Tag, len(ordered))
	for i, l := range ordered {
		tag, err := language.Parse(l)
		if err != nil {
			tag = language.Und
		}
		tags[i] = tag
	}
	return language.NewMatcher(tags), ordered
}

// normalizeTag accepts "zh_CN" as well as "zh-CN".
func normalizeTag(lang string) string {
	return strings.ReplaceAll(strings.TrimSpace(lang), "_", "-")
}
