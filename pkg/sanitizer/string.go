package sanitizer

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// Trim removes leading and trailing whitespace from a string.
func Trim(s string) string {
	return strings.TrimSpace(s)
}

// ToLower converts a string to lowercase.
func ToLower(s string) string {
	return strings.ToLower(s)
}

// NormalizeUnicode converts a string to Unicode normalization form C so that
// visually identical input compares equal.
func NormalizeUnicode(s string) string {
	return norm.NFC.String(s)
}

// FoldWidth maps full-width characters (common with CJK input methods) to
// their ASCII counterparts: "１２３＠ｅｘ．ｃｏｍ" becomes "123@ex.com".
func FoldWidth(s string) string {
	return width.Fold.String(s)
}

// RemoveExtraWhitespace collapses runs of whitespace into single spaces.
func RemoveExtraWhitespace(s string) string {
	return whitespaceRegex.ReplaceAllString(strings.TrimSpace(s), " ")
}

// Pipelines end with NormalizeUnicode: folding half-width kana yields a base
// letter plus a combining mark that only NFC puts back together.

// Text is the default pipeline for free-form strings.
var Text = Compose(Trim, NormalizeUnicode)

// Token is the pipeline for machine-like strings such as dates and identifiers.
var Token = Compose(FoldWidth, Trim, NormalizeUnicode)
