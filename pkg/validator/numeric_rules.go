package validator

import (
	"fmt"
	"math"
)

// MinNum validates that value is greater than or equal to min.
func MinNum[T Numeric](path Path, value T, min T) Rule {
	return Rule{
		Check: func() bool {
			return value >= min
		},
		Error: NewError(path, CodeMin,
			fmt.Sprintf("must be at least %v", min),
			map[string]any{"min": min},
		),
	}
}

// MaxNum validates that value is less than or equal to max.
func MaxNum[T Numeric](path Path, value T, max T) Rule {
	return Rule{
		Check: func() bool {
			return value <= max
		},
		Error: NewError(path, CodeMax,
			fmt.Sprintf("must be at most %v", max),
			map[string]any{"max": max},
		),
	}
}

// RangeNum validates min <= value <= max as a single rule.
func RangeNum[T Numeric](path Path, value T, min, max T) Rule {
	return Rule{
		Check: func() bool {
			return value >= min && value <= max
		},
		Error: NewError(path, CodeRange,
			fmt.Sprintf("must be between %v and %v", min, max),
			map[string]any{"min": min, "max": max},
		),
	}
}

// Integer validates that a float carries no fractional part.
func Integer(path Path, value float64) Rule {
	return Rule{
		Check: func() bool {
			return !math.IsInf(value, 0) && value == math.Trunc(value)
		},
		Error: NewError(path, CodeInteger, "must be a whole number", nil),
	}
}
