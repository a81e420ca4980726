package sanitizer

import (
	"regexp"
	"strings"
)

var (
	dotRegex      = regexp.MustCompile(`\.+`)
	nonDigitRegex = regexp.MustCompile(`\D`)
)

// NormalizeEmail folds width, lowercases and collapses repeated dots in the
// local part. Input without exactly one "@" is only folded and lowercased so
// the validator still sees it as malformed.
func NormalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(FoldWidth(email)))

	local, domain, ok := strings.Cut(email, "@")
	if !ok || strings.Contains(domain, "@") {
		return email
	}
	local = strings.Trim(dotRegex.ReplaceAllString(local, "."), ".")
	return local + "@" + domain
}

// NormalizePhone keeps only the digits: "１３８-0013 8000" becomes "13800138000".
func NormalizePhone(phone string) string {
	return nonDigitRegex.ReplaceAllString(FoldWidth(phone), "")
}

// Email is the pipeline for email fields.
var Email = Compose(NormalizeEmail, NormalizeUnicode)
