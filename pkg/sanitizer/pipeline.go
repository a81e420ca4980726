package sanitizer

// Apply runs value through transforms from left to right.
func Apply[T any](value T, transforms ...func(T) T) T {
	for _, t := range transforms {
		value = t(value)
	}
	return value
}

// Compose binds transforms into one reusable function, such as the Text
// and Token pipelines the engine applies to every string field.
func Compose[T any](transforms ...func(T) T) func(T) T {
	return func(value T) T {
		return Apply(value, transforms...)
	}
}
