package schemas

import (
	"embed"

	"github.com/dmitrymomot/kinderkit/pkg/i18n"
)

//go:embed locales/*.yaml
var locales embed.FS

// Catalog returns zh and en field labels under fields.<name> and the
// messages for the violation codes declared in this package. Merge it over
// the engine catalog with i18n.MultiAdapter.
func Catalog() i18n.TranslationAdapter {
	return i18n.NewFSAdapter(locales, "locales")
}
