package schema

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrymomot/kinderkit/pkg/validator"
)

// Wildcard addresses every element of an array or every value of a map.
const Wildcard = "*"

// Value is one concrete value addressed by an expression.
type Value struct {
	Path  validator.Path
	Value any
}

// Operand is the resolution of a path expression against an input.
// Base is the concrete path up to the first wildcard (the whole path when
// there is none).
type Operand struct {
	Expr    string
	Base    validator.Path
	Values  []Value
	present bool
	wild    bool
}

// Present reports whether the addressed value exists. For wildcard
// expressions it is the collection that must exist.
func (o Operand) Present() bool { return o.present }

// Wildcard reports whether the expression fans out over a collection. Base
// is then the collection and Values hold one entry per resolved element.
func (o Operand) Wildcard() bool { return o.wild }

// Single returns the only value of a non-wildcard operand.
func (o Operand) Single() (Value, bool) {
	if len(o.Values) != 1 {
		return Value{}, false
	}
	return o.Values[0], true
}

func hasWildcard(expr string) bool {
	return slices.Contains(strings.Split(expr, "."), Wildcard)
}

// Resolve evaluates expr against root. Values located at base prefix every
// returned path. Map values are visited in key order.
func Resolve(root any, base validator.Path, expr string) Operand {
	segs := strings.Split(expr, ".")
	op := Operand{Expr: expr, Base: base.Clone()}

	current := []Value{{Path: base.Clone(), Value: root}}
	wild := false
	for _, seg := range segs {
		var next []Value
		if seg == Wildcard {
			if !wild {
				op.present = len(current) == 1 && current[0].Value != nil
			}
			wild = true
			for _, v := range current {
				switch c := v.Value.(type) {
				case []any:
					for i, e := range c {
						if e != nil {
							next = append(next, Value{Path: v.Path.Index(i), Value: e})
						}
					}
				case map[string]any:
					for _, k := range sortedKeys(c) {
						if c[k] != nil {
							next = append(next, Value{Path: v.Path.Child(k), Value: c[k]})
						}
					}
				}
			}
		} else {
			if !wild {
				op.Base = op.Base.Child(seg)
			}
			for _, v := range current {
				m, ok := v.Value.(map[string]any)
				if !ok {
					continue
				}
				if e, ok := m[seg]; ok && e != nil && e != "" {
					next = append(next, Value{Path: v.Path.Child(seg), Value: e})
				}
			}
		}
		current = next
	}

	op.Values = current
	op.wild = wild
	if !wild {
		op.present = len(current) == 1
	}
	return op
}

// lookup resolves expr against a field list and returns the addressed field.
func lookup(fields []Field, expr string, allowWildcard bool) (Field, error) {
	if expr == "" {
		return Field{}, errors.Join(ErrUnresolvedPath, fmt.Errorf("empty path"))
	}
	cur := Field{typ: TypeObject, fields: fields}
	for _, seg := range strings.Split(expr, ".") {
		switch {
		case seg == Wildcard:
			if !allowWildcard {
				return Field{}, errors.Join(ErrWildcardPath, fmt.Errorf("%q", expr))
			}
			if cur.elem == nil {
				return Field{}, errors.Join(ErrUnresolvedPath, fmt.Errorf("%q: wildcard on non-collection", expr))
			}
			cur = *cur.elem
		case cur.typ == TypeObject:
			next, ok := cur.child(seg)
			if !ok {
				return Field{}, errors.Join(ErrUnresolvedPath, fmt.Errorf("%q", expr))
			}
			cur = next
		default:
			return Field{}, errors.Join(ErrUnresolvedPath, fmt.Errorf("%q: %q is not an object", expr, seg))
		}
	}
	return cur, nil
}
