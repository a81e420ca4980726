package validator

// NotEqual validates that value differs from other.
func NotEqual[T comparable](path Path, value, other T) Rule {
	return Rule{
		Check: func() bool {
			return value != other
		},
		Error: NewError(path, CodeSameValue, "must differ from the source value", nil),
	}
}
