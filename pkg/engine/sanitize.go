package engine

import (
	"github.com/dmitrymomot/kinderkit/pkg/sanitizer"
	"github.com/dmitrymomot/kinderkit/pkg/schema"
)

// sanitizeObject normalizes obj against its declared fields. Undeclared
// keys, nil values and strings that trim to "" are dropped. The input is
// never modified.
func sanitizeObject(fields []schema.Field, obj map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for _, f := range fields {
		v, ok := obj[f.Name()]
		if !ok {
			continue
		}
		if v = sanitizeValue(f, v); v != nil {
			out[f.Name()] = v
		}
	}
	return out
}

// sanitizeValue returns nil when the value should be treated as absent.
// Values of the wrong shape are passed through for the walker to report.
func sanitizeValue(f schema.Field, v any) any {
	v = normalizeShape(v)
	if v == nil {
		return nil
	}

	switch f.Type() {
	case schema.TypeString, schema.TypeDate:
		s, ok := v.(string)
		if !ok {
			return v
		}
		if s = sanitizeString(f, s); s == "" {
			return nil
		}
		return s

	case schema.TypeNumber, schema.TypeInteger:
		if n, ok := sanitizer.ToFloat64(v); ok {
			return n
		}
		if s, ok := v.(string); ok {
			if s = sanitizer.Token(s); s == "" {
				return nil
			}
			return s
		}
		return v

	case schema.TypeObject:
		m, ok := v.(map[string]any)
		if !ok {
			return v
		}
		return sanitizeObject(f.Fields(), m)

	case schema.TypeArray:
		arr, ok := v.([]any)
		if !ok {
			return v
		}
		elem, _ := f.Elem()
		out := make([]any, 0, len(arr))
		for _, el := range sanitizer.FilterNil(arr) {
			if el = sanitizeValue(elem, el); el != nil {
				out = append(out, el)
			}
		}
		return sanitizer.CompactScalars(out)

	case schema.TypeMap:
		m, ok := v.(map[string]any)
		if !ok {
			return v
		}
		elem, _ := f.Elem()
		out := make(map[string]any, len(m))
		for k, el := range m {
			if el = sanitizeValue(elem, el); el != nil {
				out[k] = el
			}
		}
		return out
	}
	return v
}

func sanitizeString(f schema.Field, s string) string {
	switch {
	case f.Is(schema.KindEmail):
		return sanitizer.Email(s)
	case f.Is(schema.KindPhone):
		return sanitizer.NormalizePhone(s)
	case f.Type() == schema.TypeDate, f.Is(schema.KindUUID):
		return sanitizer.Token(s)
	}
	return sanitizer.Text(s)
}

// normalizeShape converts the typed collections Go callers tend to pass into
// the decoded-JSON shapes the schema walker understands.
func normalizeShape(v any) any {
	switch x := v.(type) {
	case []string:
		out := make([]any, len(x))
		for i, s := range x {
			out[i] = s
		}
		return out
	case []map[string]any:
		out := make([]any, len(x))
		for i, m := range x {
			out[i] = m
		}
		return out
	case map[string]string:
		out := make(map[string]any, len(x))
		for k, s := range x {
			out[k] = s
		}
		return out
	}
	return v
}
