package validator

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

// String lengths are counted in runes so that CJK input is measured by characters.

func MinLen(path Path, value string, min int) Rule {
	return Rule{
		Check: func() bool {
			return utf8.RuneCountInString(value) >= min
		},
		Error: NewError(path, CodeMinLength,
			fmt.Sprintf("must be at least %d characters long", min),
			map[string]any{"min": min},
		),
	}
}

func MaxLen(path Path, value string, max int) Rule {
	return Rule{
		Check: func() bool {
			return utf8.RuneCountInString(value) <= max
		},
		Error: NewError(path, CodeMaxLength,
			fmt.Sprintf("must be at most %d characters long", max),
			map[string]any{"max": max},
		),
	}
}

func Len(path Path, value string, exact int) Rule {
	return Rule{
		Check: func() bool {
			return utf8.RuneCountInString(value) == exact
		},
		Error: NewError(path, CodeLength,
			fmt.Sprintf("must be exactly %d characters long", exact),
			map[string]any{"length": exact},
		),
	}
}

// MatchesPattern validates value against a compiled expression.
func MatchesPattern(path Path, value string, re *regexp.Regexp) Rule {
	return Rule{
		Check: func() bool {
			return re.MatchString(value)
		},
		Error: NewError(path, CodePattern,
			"has an invalid format",
			map[string]any{"pattern": re.String()},
		),
	}
}
