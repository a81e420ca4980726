package schema

import "slices"

// Type is the declared value type of a field.
type Type string

const (
	TypeString  Type = "string"
	TypeNumber  Type = "number"
	TypeInteger Type = "integer"
	TypeBool    Type = "boolean"
	TypeDate    Type = "date"
	TypeObject  Type = "object"
	TypeArray   Type = "array"
	TypeMap     Type = "map"
)

// Field declares one value of an entity. Fields are built by the typed
// constructors and are immutable; WithLabel returns a modified copy.
type Field struct {
	name   string
	typ    Type
	rules  []Rule
	fields []Field
	elem   *Field
	label  string
}

func newField(name string, typ Type, rules []Rule, implicit ...Rule) Field {
	all := make([]Rule, 0, len(rules)+len(implicit))
	all = append(all, rules...)
	all = append(all, implicit...)
	return Field{name: name, typ: typ, rules: all}
}

func String(name string, rules ...Rule) Field {
	return newField(name, TypeString, rules)
}

func Number(name string, rules ...Rule) Field {
	return newField(name, TypeNumber, rules)
}

// Integer is a number field that additionally rejects fractional values.
func Integer(name string, rules ...Rule) Field {
	return newField(name, TypeInteger, rules, integer())
}

func Bool(name string, rules ...Rule) Field {
	return newField(name, TypeBool, rules)
}

// Date is a string field holding a YYYY-MM-DD calendar date.
func Date(name string, rules ...Rule) Field {
	return newField(name, TypeDate, rules, dateFormat())
}

func Object(name string, fields []Field, rules ...Rule) Field {
	f := newField(name, TypeObject, rules)
	f.fields = slices.Clone(fields)
	return f
}

// Array declares a list whose elements all match elem. The element name is
// ignored; element paths use the index.
func Array(name string, elem Field, rules ...Rule) Field {
	f := newField(name, TypeArray, rules)
	f.elem = &elem
	return f
}

// Map declares an object with arbitrary keys whose values all match elem.
func Map(name string, elem Field, rules ...Rule) Field {
	f := newField(name, TypeMap, rules)
	f.elem = &elem
	return f
}

// Optional returns a copy of f without its required rule. Nested fields are
// left as declared.
func Optional(f Field) Field {
	f.rules = slices.DeleteFunc(slices.Clone(f.rules), func(r Rule) bool {
		return r.kind == KindRequired
	})
	return f
}

// WithLabel overrides the catalog key used for the field label.
func (f Field) WithLabel(key string) Field {
	f.label = key
	return f
}

func (f Field) Name() string { return f.name }

func (f Field) Type() Type { return f.typ }

func (f Field) Rules() []Rule { return slices.Clone(f.rules) }

func (f Field) Fields() []Field { return slices.Clone(f.fields) }

// Elem returns the element declaration of an array or map field.
func (f Field) Elem() (Field, bool) {
	if f.elem == nil {
		return Field{}, false
	}
	return *f.elem, true
}

// Label returns the catalog key of the field label, "fields.<name>" by default.
func (f Field) Label() string {
	if f.label != "" {
		return f.label
	}
	return "fields." + f.name
}

func (f Field) IsRequired() bool {
	return f.has(KindRequired)
}

// Is reports whether the field carries a rule of the given kind.
func (f Field) Is(kind Kind) bool {
	return f.has(kind)
}

// Enum returns the enumerated values of the field, if any.
func (f Field) Enum() ([]string, bool) {
	for _, r := range f.rules {
		if r.kind == KindEnum {
			return r.Values(), true
		}
	}
	return nil, false
}

func (f Field) has(kind Kind) bool {
	for _, r := range f.rules {
		if r.kind == kind {
			return true
		}
	}
	return false
}

func (f Field) child(name string) (Field, bool) {
	for _, c := range f.fields {
		if c.name == name {
			return c, true
		}
	}
	return Field{}, false
}
