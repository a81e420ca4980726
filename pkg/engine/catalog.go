package engine

import (
	"embed"

	"github.com/dmitrymomot/kinderkit/pkg/i18n"
)

//go:embed locales/*.yaml
var locales embed.FS

// Catalog returns the built-in zh and en messages for every violation code
// the rule primitives produce, keyed validation.<code>.
func Catalog() i18n.TranslationAdapter {
	return i18n.NewFSAdapter(locales, "locales")
}
