package validator

import (
	"fmt"
	"slices"
	"strings"
)

// InList validates that value is one of the allowed values.
func InList[T comparable](path Path, value T, allowed []T) Rule {
	return Rule{
		Check: func() bool {
			return slices.Contains(allowed, value)
		},
		Error: NewError(path, CodeEnum,
			fmt.Sprintf("must be one of: %s", joinValues(allowed)),
			map[string]any{"allowed_values": joinValues(allowed)},
		),
	}
}

func joinValues[T any](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ", ")
}
