package validator

import (
	"fmt"
	"time"
)

// DateNotBefore validates that value is on or after start.
func DateNotBefore(path Path, value, start time.Time) Rule {
	return Rule{
		Check: func() bool {
			return !value.Before(start)
		},
		Error: NewError(path, CodeDateOrder,
			fmt.Sprintf("must not be before %s", start.Format(DateLayout)),
			map[string]any{"start": start.Format(DateLayout)},
		),
	}
}
