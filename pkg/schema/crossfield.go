package schema

import (
	"fmt"
	"slices"
	"time"

	"github.com/dmitrymomot/kinderkit/pkg/validator"
)

// Evaluator inspects resolved operands and returns the violations found.
// Operands arrive in the order of the rule's expressions and are all present.
type Evaluator func(ops []Operand) []validator.ValidationError

// CrossField is an invariant over two or more fields. A scoped rule is
// evaluated once per element of the scope array with expressions relative to
// the element.
type CrossField struct {
	code  string
	exprs []string
	eval  Evaluator
	scope string
}

func (c CrossField) Code() string { return c.code }

func (c CrossField) Exprs() []string { return slices.Clone(c.exprs) }

// Scope returns the array expression of an Each rule, or "".
func (c CrossField) Scope() string { return c.scope }

func (c CrossField) Evaluate(ops []Operand) []validator.ValidationError {
	return c.eval(ops)
}

func (c CrossField) String() string {
	if c.scope != "" {
		return fmt.Sprintf("%s%v in %s", c.code, c.exprs, c.scope)
	}
	return fmt.Sprintf("%s%v", c.code, c.exprs)
}

// Cross declares a custom invariant over single-valued expressions. When pred
// returns false the violation is reported at target, which must be one of
// exprs.
func Cross(code, message, target string, pred func(values ...any) bool, exprs ...string) CrossField {
	idx := slices.Index(exprs, target)
	return CrossField{
		code:  code,
		exprs: slices.Clone(exprs),
		eval: func(ops []Operand) []validator.ValidationError {
			values := make([]any, len(ops))
			for i, op := range ops {
				v, ok := op.Single()
				if !ok {
					return nil
				}
				values[i] = v.Value
			}
			if pred(values...) || idx < 0 {
				return nil
			}
			v, _ := ops[idx].Single()
			return []validator.ValidationError{validator.NewError(v.Path, code, message, nil)}
		},
	}
}

// DateOrder requires end to fall on or after start. The violation is
// reported at end.
func DateOrder(start, end string) CrossField {
	return CrossField{
		code:  validator.CodeDateOrder,
		exprs: []string{start, end},
		eval: func(ops []Operand) []validator.ValidationError {
			s, e, ok := singles(ops)
			if !ok {
				return nil
			}
			sd, err1 := parseDate(s.Value)
			ed, err2 := parseDate(e.Value)
			if err1 != nil || err2 != nil {
				return nil
			}
			return validator.Collect(validator.DateNotBefore(e.Path, ed, sd))
		},
	}
}

// MinMax requires min <= max and reports range.order at max.
func MinMax(min, max string) CrossField {
	return CrossField{
		code:  validator.CodeRangeOrder,
		exprs: []string{min, max},
		eval: func(ops []Operand) []validator.ValidationError {
			lo, hi, ok := numbers(ops)
			if !ok || hi.n >= lo.n {
				return nil
			}
			return []validator.ValidationError{validator.NewError(hi.path, validator.CodeRangeOrder,
				fmt.Sprintf("must not be less than %v", lo.n),
				map[string]any{"min": lo.n},
			)}
		},
	}
}

// SumAtMost requires the sum of the values addressed by parts (a wildcard
// expression) to be at most the value at total. The violation is reported at
// the collection holding the parts.
func SumAtMost(parts, total, code string) CrossField {
	return CrossField{
		code:  code,
		exprs: []string{parts, total},
		eval: func(ops []Operand) []validator.ValidationError {
			limit, ok := ops[1].Single()
			if !ok {
				return nil
			}
			max, ok := toFloat(limit.Value)
			if !ok {
				return nil
			}
			var sum float64
			for _, v := range ops[0].Values {
				if n, ok := toFloat(v.Value); ok {
					sum += n
				}
			}
			if sum <= max {
				return nil
			}
			return []validator.ValidationError{validator.NewError(ops[0].Base, code,
				fmt.Sprintf("total of %v exceeds the limit of %v", sum, max),
				map[string]any{"sum": sum, "limit": max},
			)}
		},
	}
}

// AtMost requires value <= limit and reports at value.
func AtMost(value, limit, code string) CrossField {
	return CrossField{
		code:  code,
		exprs: []string{value, limit},
		eval: func(ops []Operand) []validator.ValidationError {
			v, l, ok := numbers(ops)
			if !ok || v.n <= l.n {
				return nil
			}
			return []validator.ValidationError{validator.NewError(v.path, code,
				fmt.Sprintf("must not exceed %v", l.n),
				map[string]any{"limit": l.n},
			)}
		},
	}
}

// CountAtMost requires the collection at collection to hold at most limit items.
func CountAtMost(collection, limit, code string) CrossField {
	return CrossField{
		code:  code,
		exprs: []string{collection, limit},
		eval: func(ops []Operand) []validator.ValidationError {
			c, okc := ops[0].Single()
			l, okl := ops[1].Single()
			if !okc || !okl {
				return nil
			}
			count, ok := collectionLen(c.Value)
			max, okn := toFloat(l.Value)
			if !ok || !okn || float64(count) <= max {
				return nil
			}
			return []validator.ValidationError{validator.NewError(c.Path, code,
				fmt.Sprintf("must contain at most %v items", max),
				map[string]any{"count": count, "limit": max},
			)}
		},
	}
}

// Unique requires the values addressed by a wildcard expression to be
// distinct. Every repeated occurrence after the first is reported.
func Unique(expr string) CrossField {
	return CrossField{
		code:  validator.CodeDuplicate,
		exprs: []string{expr},
		eval: func(ops []Operand) []validator.ValidationError {
			var errs []validator.ValidationError
			seen := make(map[string]bool, len(ops[0].Values))
			for _, v := range ops[0].Values {
				key := fmt.Sprintf("%T:%v", v.Value, v.Value)
				if seen[key] {
					errs = append(errs, validator.NewError(v.Path, validator.CodeDuplicate,
						"must be unique",
						map[string]any{"value": v.Value},
					))
					continue
				}
				seen[key] = true
			}
			return errs
		},
	}
}

// NotEqual requires a and b to differ and reports same.value at b.
func NotEqual(a, b string) CrossField {
	return CrossField{
		code:  validator.CodeSameValue,
		exprs: []string{a, b},
		eval: func(ops []Operand) []validator.ValidationError {
			x, y, ok := singles(ops)
			if !ok || !sameValue(x.Value, y.Value) {
				return nil
			}
			return validator.Collect(validator.NotEqual(y.Path, fmt.Sprint(y.Value), fmt.Sprint(x.Value)))
		},
	}
}

// Each evaluates rule once per element of the array at scope, resolving the
// rule's expressions relative to each element.
func Each(scope string, rule CrossField) CrossField {
	rule.scope = scope
	return rule
}

func singles(ops []Operand) (Value, Value, bool) {
	if len(ops) != 2 {
		return Value{}, Value{}, false
	}
	a, ok1 := ops[0].Single()
	b, ok2 := ops[1].Single()
	return a, b, ok1 && ok2
}

type number struct {
	path validator.Path
	n    float64
}

func numbers(ops []Operand) (number, number, bool) {
	a, b, ok := singles(ops)
	if !ok {
		return number{}, number{}, false
	}
	x, ok1 := toFloat(a.Value)
	y, ok2 := toFloat(b.Value)
	return number{a.Path, x}, number{b.Path, y}, ok1 && ok2
}

func parseDate(v any) (time.Time, error) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, fmt.Errorf("not a date: %v", v)
	}
	return time.Parse(validator.DateLayout, s)
}
