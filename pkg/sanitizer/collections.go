package sanitizer

import (
	"fmt"
	"strings"
)

// FilterEmpty removes whitespace-only entries to prevent empty form fields from polluting data.
func FilterEmpty(slice []string) []string {
	result := make([]string, 0)
	for _, item := range slice {
		if strings.TrimSpace(item) != "" {
			result = append(result, item)
		}
	}
	return result
}

// Deduplicate preserves first occurrence order to maintain user intent in form submissions.
func Deduplicate[T comparable](slice []T) []T {
	seen := make(map[T]bool)
	result := make([]T, 0)

	for _, item := range slice {
		if !seen[item] {
			seen[item] = true
			result = append(result, item)
		}
	}

	return result
}

// IsFalsy reports whether a decoded JSON scalar carries no information:
// nil, "", false or 0.
func IsFalsy(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case bool:
		return !x
	}
	if f, ok := ToFloat64(v); ok {
		return f == 0
	}
	return false
}

// CompactScalars drops falsy entries and repeated scalars from a decoded
// JSON array, keeping the first occurrence. Objects and arrays are kept
// as they are.
func CompactScalars(slice []any) []any {
	seen := make(map[string]bool)
	result := make([]any, 0, len(slice))

	for _, item := range slice {
		switch item.(type) {
		case map[string]any, []any:
			result = append(result, item)
			continue
		}
		if IsFalsy(item) {
			continue
		}
		key := fmt.Sprintf("%T:%v", item, item)
		if seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, item)
	}

	return result
}

// FilterNil drops nil entries from a decoded JSON array.
func FilterNil(slice []any) []any {
	result := make([]any, 0, len(slice))
	for _, item := range slice {
		if item != nil {
			result = append(result, item)
		}
	}
	return result
}
