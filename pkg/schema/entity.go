package schema

import (
	"slices"

	"github.com/dmitrymomot/kinderkit/pkg/statemachine"
)

// DefaultStatusField is the field holding the lifecycle status.
const DefaultStatusField = "status"

// Entity is the declarative rule set of one entity/operation pair.
type Entity struct {
	fields       []Field
	conditionals []Conditional
	crossFields  []CrossField
	matrix       *statemachine.Matrix
	statusField  string
	externals    []External
	waves        [][]External
	waveErr      error
}

// EntityOption configures an Entity at construction.
type EntityOption func(*Entity)

func WithConditionals(c ...Conditional) EntityOption {
	return func(e *Entity) {
		e.conditionals = append(e.conditionals, c...)
	}
}

func WithCrossFields(c ...CrossField) EntityOption {
	return func(e *Entity) {
		e.crossFields = append(e.crossFields, c...)
	}
}

// WithTransitions attaches a status lifecycle. The status is read from
// DefaultStatusField unless WithStatusField overrides it.
func WithTransitions(m *statemachine.Matrix) EntityOption {
	return func(e *Entity) {
		e.matrix = m
	}
}

func WithStatusField(name string) EntityOption {
	return func(e *Entity) {
		e.statusField = name
	}
}

func WithExternal(x ...External) EntityOption {
	return func(e *Entity) {
		e.externals = append(e.externals, x...)
	}
}

// NewEntity declares an entity schema. Structural checks run when the
// entity is registered.
func NewEntity(fields []Field, opts ...EntityOption) *Entity {
	e := &Entity{
		fields:      slices.Clone(fields),
		statusField: DefaultStatusField,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.waves, e.waveErr = orderExternals(e.externals)
	return e
}

func (e *Entity) Fields() []Field { return slices.Clone(e.fields) }

func (e *Entity) Conditionals() []Conditional { return slices.Clone(e.conditionals) }

func (e *Entity) CrossFields() []CrossField { return slices.Clone(e.crossFields) }

// Transitions returns the status matrix and the status field path.
func (e *Entity) Transitions() (*statemachine.Matrix, string, bool) {
	return e.matrix, e.statusField, e.matrix != nil
}

func (e *Entity) Externals() []External { return slices.Clone(e.externals) }

// Waves returns the external rules grouped by execution order.
func (e *Entity) Waves() [][]External {
	out := make([][]External, len(e.waves))
	for i, w := range e.waves {
		out[i] = slices.Clone(w)
	}
	return out
}

// Statuses lists the lifecycle states, if the entity has a matrix.
func (e *Entity) Statuses() []statemachine.State {
	if e.matrix == nil {
		return nil
	}
	return e.matrix.States()
}

// Field resolves a dotted path (wildcards allowed) to its declaration.
func (e *Entity) Field(expr string) (Field, bool) {
	f, err := lookup(e.fields, expr, true)
	return f, err == nil
}
