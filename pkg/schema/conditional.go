package schema

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/dmitrymomot/kinderkit/pkg/validator"
)

// Predicate tests the value of a conditional's trigger field.
type Predicate struct {
	name string
	test func(value any, present bool) bool
}

func (p Predicate) String() string { return p.name }

// Holds evaluates the predicate. Absent values are passed with present=false.
func (p Predicate) Holds(value any, present bool) bool {
	return p.test(value, present)
}

// Equals holds when the trigger value equals want.
func Equals(want any) Predicate {
	return Predicate{
		name: fmt.Sprintf("equals(%v)", want),
		test: func(v any, present bool) bool {
			return present && sameValue(v, want)
		},
	}
}

// OneOf holds when the trigger value equals any of values.
func OneOf(values ...any) Predicate {
	values = slices.Clone(values)
	return Predicate{
		name: fmt.Sprintf("one_of(%v)", values),
		test: func(v any, present bool) bool {
			if !present {
				return false
			}
			for _, want := range values {
				if sameValue(v, want) {
					return true
				}
			}
			return false
		},
	}
}

// IsTrue holds when the trigger value is boolean true.
func IsTrue() Predicate {
	return Predicate{
		name: "is_true",
		test: func(v any, present bool) bool {
			b, ok := v.(bool)
			return present && ok && b
		},
	}
}

// Present holds when the trigger value is supplied.
func Present() Predicate {
	return Predicate{
		name: "present",
		test: func(_ any, present bool) bool {
			return present
		},
	}
}

// Conditional applies rules to one field only when a predicate holds on
// another. Both paths are dotted field paths without wildcards.
type Conditional struct {
	when  string
	pred  Predicate
	then  string
	rules []Rule
}

// When declares: if pred holds for the value at when, apply rules to then.
func When(when string, pred Predicate, then string, rules ...Rule) Conditional {
	return Conditional{
		when:  when,
		pred:  pred,
		then:  then,
		rules: slices.Clone(rules),
	}
}

func (c Conditional) WhenPath() validator.Path { return validator.ParsePath(c.when) }

func (c Conditional) ThenPath() validator.Path { return validator.ParsePath(c.then) }

func (c Conditional) Predicate() Predicate { return c.pred }

func (c Conditional) Rules() []Rule { return slices.Clone(c.rules) }

func (c Conditional) String() string {
	return fmt.Sprintf("when %s %s then %s", c.when, c.pred, c.then)
}

// sameValue compares sanitized input with a declared value, treating every
// numeric representation as float64.
func sameValue(a, b any) bool {
	fa, aNum := toFloat(a)
	fb, bNum := toFloat(b)
	if aNum || bNum {
		return aNum && bNum && fa == fb
	}
	return a == b
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
