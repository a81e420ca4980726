package validator

import (
	"fmt"
	"slices"
)

func MinItems(path Path, count, min int) Rule {
	return Rule{
		Check: func() bool {
			return count >= min
		},
		Error: NewError(path, CodeMinItems,
			fmt.Sprintf("must have at least %d items", min),
			map[string]any{"min": min},
		),
	}
}

func MaxItems(path Path, count, max int) Rule {
	return Rule{
		Check: func() bool {
			return count <= max
		},
		Error: NewError(path, CodeMaxItems,
			fmt.Sprintf("must have at most %d items", max),
			map[string]any{"max": max},
		),
	}
}

// KeysIn validates that every key belongs to the allowed set. The error lists
// the first offending key in the given order.
func KeysIn(path Path, keys []string, allowed []string) Rule {
	var bad string
	ok := true
	for _, k := range keys {
		if !slices.Contains(allowed, k) {
			bad, ok = k, false
			break
		}
	}
	return Rule{
		Check: func() bool {
			return ok
		},
		Error: NewError(path, CodeMapKeys,
			fmt.Sprintf("contains unsupported key %q", bad),
			map[string]any{"key": bad, "allowed_values": joinValues(allowed)},
		),
	}
}
