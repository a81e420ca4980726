package schema

import (
	"fmt"
	"regexp"
	"slices"
	"sort"

	"github.com/dmitrymomot/kinderkit/pkg/validator"
)

// Kind identifies a rule primitive.
type Kind string

const (
	KindRequired  Kind = "required"
	KindMin       Kind = "min"
	KindMax       Kind = "max"
	KindRange     Kind = "range"
	KindInteger   Kind = "integer"
	KindMinLength Kind = "min_length"
	KindMaxLength Kind = "max_length"
	KindLength    Kind = "length"
	KindPattern   Kind = "pattern"
	KindEnum      Kind = "enum"
	KindEmail     Kind = "email"
	KindPhone     Kind = "phone"
	KindDate      Kind = "date"
	KindUUID      Kind = "uuid"
	KindMinItems  Kind = "min_items"
	KindMaxItems  Kind = "max_items"
	KindKeys      Kind = "keys"
	KindCustom    Kind = "custom"
)

// Rule is an immutable declaration of a single check. Rules are values and
// are bound to concrete input by the engine.
type Rule struct {
	kind    Kind
	min     float64
	max     float64
	n       int
	re      *regexp.Regexp
	values  []string
	code    string
	message string
	check   func(any) bool
}

func Required() Rule { return Rule{kind: KindRequired} }

func Min(min float64) Rule { return Rule{kind: KindMin, min: min} }

func Max(max float64) Rule { return Rule{kind: KindMax, max: max} }

// Range checks min <= v <= max and reports a single number.range violation.
func Range(min, max float64) Rule { return Rule{kind: KindRange, min: min, max: max} }

func MinLength(n int) Rule { return Rule{kind: KindMinLength, n: n} }

func MaxLength(n int) Rule { return Rule{kind: KindMaxLength, n: n} }

func Length(n int) Rule { return Rule{kind: KindLength, n: n} }

// Pattern panics on a malformed expression; schemas are declared at startup.
func Pattern(expr string) Rule {
	return Rule{kind: KindPattern, re: regexp.MustCompile(expr)}
}

func Enum(values ...string) Rule {
	return Rule{kind: KindEnum, values: slices.Clone(values)}
}

func Email() Rule { return Rule{kind: KindEmail} }

func Phone() Rule { return Rule{kind: KindPhone} }

func UUID() Rule { return Rule{kind: KindUUID} }

func MinItems(n int) Rule { return Rule{kind: KindMinItems, n: n} }

func MaxItems(n int) Rule { return Rule{kind: KindMaxItems, n: n} }

// Keys restricts the keys of a map field.
func Keys(allowed ...string) Rule {
	return Rule{kind: KindKeys, values: slices.Clone(allowed)}
}

// Custom wraps an arbitrary predicate under its own violation code.
func Custom(code, message string, check func(any) bool) Rule {
	return Rule{kind: KindCustom, code: code, message: message, check: check}
}

func integer() Rule { return Rule{kind: KindInteger} }

func dateFormat() Rule { return Rule{kind: KindDate} }

func (r Rule) Kind() Kind { return r.kind }

// Values returns the enumerated values of an Enum or Keys rule.
func (r Rule) Values() []string { return slices.Clone(r.values) }

// Code returns the violation code the rule reports.
func (r Rule) Code() string {
	switch r.kind {
	case KindRequired:
		return validator.CodeRequired
	case KindMin:
		return validator.CodeMin
	case KindMax:
		return validator.CodeMax
	case KindRange:
		return validator.CodeRange
	case KindInteger:
		return validator.CodeInteger
	case KindMinLength:
		return validator.CodeMinLength
	case KindMaxLength:
		return validator.CodeMaxLength
	case KindLength:
		return validator.CodeLength
	case KindPattern:
		return validator.CodePattern
	case KindEnum:
		return validator.CodeEnum
	case KindEmail:
		return validator.CodeEmail
	case KindPhone:
		return validator.CodePhone
	case KindDate:
		return validator.CodeDateFormat
	case KindUUID:
		return validator.CodeUUID
	case KindMinItems:
		return validator.CodeMinItems
	case KindMaxItems:
		return validator.CodeMaxItems
	case KindKeys:
		return validator.CodeMapKeys
	default:
		return r.code
	}
}

func (r Rule) appliesTo(t Type) bool {
	switch r.kind {
	case KindRequired, KindCustom:
		return true
	case KindMin, KindMax, KindRange, KindInteger:
		return t == TypeNumber || t == TypeInteger
	case KindMinLength, KindMaxLength, KindLength, KindPattern, KindEnum, KindEmail, KindPhone, KindUUID:
		return t == TypeString
	case KindDate:
		return t == TypeDate
	case KindMinItems, KindMaxItems:
		return t == TypeArray || t == TypeMap
	case KindKeys:
		return t == TypeMap
	}
	return false
}

// Bind turns the declaration into an executable rule for a value at path.
// It reports false when the value has the wrong shape for the rule or the
// rule is a presence check, which the engine handles itself.
func (r Rule) Bind(path validator.Path, value any) (validator.Rule, bool) {
	switch r.kind {
	case KindMin, KindMax, KindRange, KindInteger:
		n, ok := value.(float64)
		if !ok {
			return validator.Rule{}, false
		}
		switch r.kind {
		case KindMin:
			return validator.MinNum(path, n, r.min), true
		case KindMax:
			return validator.MaxNum(path, n, r.max), true
		case KindRange:
			return validator.RangeNum(path, n, r.min, r.max), true
		default:
			return validator.Integer(path, n), true
		}

	case KindMinLength, KindMaxLength, KindLength, KindPattern, KindEnum,
		KindEmail, KindPhone, KindUUID, KindDate:
		s, ok := value.(string)
		if !ok {
			return validator.Rule{}, false
		}
		switch r.kind {
		case KindMinLength:
			return validator.MinLen(path, s, r.n), true
		case KindMaxLength:
			return validator.MaxLen(path, s, r.n), true
		case KindLength:
			return validator.Len(path, s, r.n), true
		case KindPattern:
			return validator.MatchesPattern(path, s, r.re), true
		case KindEnum:
			return validator.InList(path, s, r.values), true
		case KindEmail:
			return validator.ValidEmail(path, s), true
		case KindPhone:
			return validator.ValidPhone(path, s), true
		case KindUUID:
			return validator.ValidUUID(path, s), true
		default:
			return validator.ValidDate(path, s), true
		}

	case KindMinItems, KindMaxItems:
		count, ok := collectionLen(value)
		if !ok {
			return validator.Rule{}, false
		}
		if r.kind == KindMinItems {
			return validator.MinItems(path, count, r.n), true
		}
		return validator.MaxItems(path, count, r.n), true

	case KindKeys:
		m, ok := value.(map[string]any)
		if !ok {
			return validator.Rule{}, false
		}
		return validator.KeysIn(path, sortedKeys(m), r.values), true

	case KindCustom:
		check := r.check
		return validator.Rule{
			Check: func() bool { return check(value) },
			Error: validator.NewError(path, r.code, r.message, nil),
		}, true
	}

	return validator.Rule{}, false
}

func (r Rule) String() string {
	switch r.kind {
	case KindMin:
		return fmt.Sprintf("min(%v)", r.min)
	case KindMax:
		return fmt.Sprintf("max(%v)", r.max)
	case KindRange:
		return fmt.Sprintf("range(%v,%v)", r.min, r.max)
	case KindMinLength, KindMaxLength, KindLength, KindMinItems, KindMaxItems:
		return fmt.Sprintf("%s(%d)", r.kind, r.n)
	case KindCustom:
		return fmt.Sprintf("custom(%s)", r.code)
	}
	return string(r.kind)
}

func collectionLen(v any) (int, bool) {
	switch c := v.(type) {
	case []any:
		return len(c), true
	case map[string]any:
		return len(c), true
	}
	return 0, false
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
