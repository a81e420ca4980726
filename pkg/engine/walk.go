package engine

import (
	"math"
	"sort"

	"github.com/dmitrymomot/kinderkit/pkg/schema"
	"github.com/dmitrymomot/kinderkit/pkg/validator"
)

// walkFields applies field rules depth-first in declaration order.
func walkFields(fields []schema.Field, obj map[string]any, base validator.Path) validator.ValidationErrors {
	var errs validator.ValidationErrors
	for _, f := range fields {
		v, ok := obj[f.Name()]
		errs = append(errs, walkValue(f, v, ok && v != nil, base.Child(f.Name()))...)
	}
	return errs
}

// walkValue checks one value. An absent required value yields a single
// required error and its subtree is not visited. A value of the wrong type
// yields a single type error.
func walkValue(f schema.Field, v any, present bool, path validator.Path) validator.ValidationErrors {
	if !present {
		if f.IsRequired() {
			return validator.Collect(validator.Present(path, false))
		}
		return nil
	}
	if !hasType(f.Type(), v) {
		return validator.Collect(validator.OfType(path, string(f.Type()), false))
	}

	errs := validator.Collect(bindRules(f.Rules(), path, v)...)

	switch f.Type() {
	case schema.TypeObject:
		errs = append(errs, walkFields(f.Fields(), v.(map[string]any), path)...)
	case schema.TypeArray:
		elem, _ := f.Elem()
		for i, el := range v.([]any) {
			errs = append(errs, walkValue(elem, el, el != nil, path.Index(i))...)
		}
	case schema.TypeMap:
		elem, _ := f.Elem()
		m := v.(map[string]any)
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			errs = append(errs, walkValue(elem, m[k], m[k] != nil, path.Child(k))...)
		}
	}
	return errs
}

// bindRules binds every non-presence rule that fits the value's shape.
func bindRules(rules []schema.Rule, path validator.Path, v any) []validator.Rule {
	bound := make([]validator.Rule, 0, len(rules))
	for _, r := range rules {
		if br, ok := r.Bind(path, v); ok {
			bound = append(bound, br)
		}
	}
	return bound
}

func hasType(t schema.Type, v any) bool {
	switch t {
	case schema.TypeString, schema.TypeDate:
		_, ok := v.(string)
		return ok
	case schema.TypeNumber, schema.TypeInteger:
		n, ok := v.(float64)
		return ok && !math.IsNaN(n) && !math.IsInf(n, 0)
	case schema.TypeBool:
		_, ok := v.(bool)
		return ok
	case schema.TypeObject, schema.TypeMap:
		_, ok := v.(map[string]any)
		return ok
	case schema.TypeArray:
		_, ok := v.([]any)
		return ok
	}
	return false
}

// fieldAt returns the declaration addressed by a concrete path. Array
// indices and map keys step into the element declaration.
func fieldAt(fields []schema.Field, path validator.Path) (schema.Field, bool) {
	f, _, ok := locate(fields, path)
	return f, ok
}

// locate also returns the nearest named field on the path, which carries
// the label for element paths such as ageGroups[1].
func locate(fields []schema.Field, path validator.Path) (schema.Field, schema.Field, bool) {
	if len(path) == 0 {
		return schema.Field{}, schema.Field{}, false
	}
	cur := schema.Object("", fields)
	named := cur
	for _, seg := range path {
		switch cur.Type() {
		case schema.TypeObject:
			next, ok := child(cur, seg)
			if !ok {
				return schema.Field{}, schema.Field{}, false
			}
			cur, named = next, next
		case schema.TypeArray, schema.TypeMap:
			elem, ok := cur.Elem()
			if !ok {
				return schema.Field{}, schema.Field{}, false
			}
			cur = elem
		default:
			return schema.Field{}, schema.Field{}, false
		}
	}
	return cur, named, true
}

func child(f schema.Field, name string) (schema.Field, bool) {
	for _, c := range f.Fields() {
		if c.Name() == name {
			return c, true
		}
	}
	return schema.Field{}, false
}
