package validator

import "fmt"

// Present validates that a value was supplied.
func Present(path Path, present bool) Rule {
	return Rule{
		Check: func() bool {
			return present
		},
		Error: NewError(path, CodeRequired, "field is required", nil),
	}
}

// OfType validates that a value has the expected kind, e.g. "number" or "object".
func OfType(path Path, expected string, ok bool) Rule {
	return Rule{
		Check: func() bool {
			return ok
		},
		Error: NewError(path, CodeType,
			fmt.Sprintf("must be of type %s", expected),
			map[string]any{"type": expected},
		),
	}
}
