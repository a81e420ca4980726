// Package i18n resolves localized messages from nested translation catalogs.
//
// Catalogs are loaded once through a TranslationAdapter (an in-memory map, a
// single file, every JSON/YAML file of a directory in any fs.FS, or several
// of those merged with MultiAdapter) and are read-only afterwards, so a
// Translator can be shared freely between goroutines.
//
// Keys are dot separated and address nested maps: "validation.number.range"
// reads the "range" entry of the "number" map of the "validation" map.
// Templates use named placeholders such as "%{field}".
//
// # Language resolution
//
// Requested tags are matched with golang.org/x/text/language, so "zh-CN",
// "zh_Hans" and "zh" all select a "zh" catalog. A key missing from the
// matched language is looked up in the fallback language ("en" unless
// configured); Lookup reports false when neither holds it.
//
//	tr, err := i18n.NewTranslator(ctx, i18n.NewFSAdapter(locales, "locales"),
//	    i18n.WithDefaultLanguage("zh"),
//	    i18n.WithFallbackLanguage("en"),
//	)
//	msg := tr.T("zh-CN", "validation.required", "field", "姓名")
package i18n
