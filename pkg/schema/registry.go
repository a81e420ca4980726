package schema

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
)

// Key identifies a registered schema.
type Key struct {
	Entity    string
	Operation string
}

func (k Key) String() string {
	return k.Entity + "/" + k.Operation
}

// Registry maps entity/operation pairs to their schemas. Schemas are
// registered at startup; after Seal the registry is read without locking.
type Registry struct {
	mu      sync.RWMutex
	sealed  atomic.Bool
	entries map[Key]*Entity
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[Key]*Entity)}
}

// Register checks e for structural defects and stores it under entity/operation.
func (r *Registry) Register(entity, operation string, e *Entity) error {
	if r.sealed.Load() {
		return NewStructuralError(entity, operation, ErrRegistrySealed)
	}
	if e == nil {
		return NewStructuralError(entity, operation, ErrNilEntity)
	}
	if err := check(e); err != nil {
		return NewStructuralError(entity, operation, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed.Load() {
		return NewStructuralError(entity, operation, ErrRegistrySealed)
	}
	key := Key{Entity: entity, Operation: operation}
	if _, ok := r.entries[key]; ok {
		return NewStructuralError(entity, operation, ErrDuplicateSchema)
	}
	r.entries[key] = e
	return nil
}

// MustRegister is like Register but panics on a structural defect.
func (r *Registry) MustRegister(entity, operation string, e *Entity) {
	if err := r.Register(entity, operation, e); err != nil {
		panic(err)
	}
}

// Seal freezes the registry. It is safe to call more than once.
func (r *Registry) Seal() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sealed.Store(true)
}

func (r *Registry) Sealed() bool {
	return r.sealed.Load()
}

// Lookup returns the schema for entity/operation or a *StructuralError
// wrapping ErrUnknownSchema.
func (r *Registry) Lookup(entity, operation string) (*Entity, error) {
	if !r.sealed.Load() {
		r.mu.RLock()
		defer r.mu.RUnlock()
	}
	e, ok := r.entries[Key{Entity: entity, Operation: operation}]
	if !ok {
		return nil, NewStructuralError(entity, operation, ErrUnknownSchema)
	}
	return e, nil
}

// Keys lists registered pairs sorted by entity, then operation.
func (r *Registry) Keys() []Key {
	if !r.sealed.Load() {
		r.mu.RLock()
		defer r.mu.RUnlock()
	}
	keys := make([]Key, 0, len(r.entries))
	for k := range r.entries {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b Key) int {
		if c := strings.Compare(a.Entity, b.Entity); c != 0 {
			return c
		}
		return strings.Compare(a.Operation, b.Operation)
	})
	return keys
}

func check(e *Entity) error {
	if err := checkFields(e.fields, ""); err != nil {
		return err
	}

	for _, c := range e.conditionals {
		if _, err := lookup(e.fields, c.when, false); err != nil {
			return errors.Join(err, fmt.Errorf("conditional %s", c))
		}
		then, err := lookup(e.fields, c.then, false)
		if err != nil {
			return errors.Join(err, fmt.Errorf("conditional %s", c))
		}
		for _, rule := range c.rules {
			if !rule.appliesTo(then.typ) {
				return errors.Join(ErrRuleType, fmt.Errorf("conditional %s: %s on %s", c, rule, then.typ))
			}
		}
	}

	for _, cf := range e.crossFields {
		fields := e.fields
		if cf.scope != "" {
			scope, err := lookup(e.fields, cf.scope, false)
			if err != nil {
				return errors.Join(err, fmt.Errorf("cross-field %s", cf))
			}
			if scope.typ != TypeArray || scope.elem.typ != TypeObject {
				return errors.Join(ErrUnresolvedPath, fmt.Errorf("cross-field %s: scope must be an array of objects", cf))
			}
			fields = scope.elem.fields
		}
		for _, expr := range cf.exprs {
			if _, err := lookup(fields, expr, true); err != nil {
				return errors.Join(err, fmt.Errorf("cross-field %s", cf))
			}
		}
	}

	if e.matrix != nil {
		status, err := lookup(e.fields, e.statusField, false)
		if err != nil || status.typ != TypeString {
			return errors.Join(ErrStatusField, fmt.Errorf("%q", e.statusField))
		}
		if values, ok := status.Enum(); ok {
			for _, s := range e.matrix.States() {
				if !slices.Contains(values, string(s)) {
					return errors.Join(ErrStatusEnum, fmt.Errorf("state %q", s))
				}
			}
		}
	}

	if e.waveErr != nil {
		return e.waveErr
	}
	for _, x := range e.externals {
		if _, err := lookup(e.fields, x.Path, false); err != nil {
			return errors.Join(err, fmt.Errorf("external %q", x.ID))
		}
		for _, dep := range x.DependsOn {
			if _, err := lookup(e.fields, dep, false); err != nil {
				return errors.Join(err, fmt.Errorf("external %q", x.ID))
			}
		}
	}

	return nil
}

func checkFields(fields []Field, prefix string) error {
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		name := prefix + f.name
		if f.name == "" || strings.Contains(f.name, ".") || f.name == Wildcard {
			return errors.Join(ErrUnresolvedPath, fmt.Errorf("invalid field name %q", name))
		}
		if seen[f.name] {
			return errors.Join(ErrDuplicateField, fmt.Errorf("%q", name))
		}
		seen[f.name] = true
		if err := checkField(f, name); err != nil {
			return err
		}
	}
	return nil
}

func checkField(f Field, name string) error {
	for _, rule := range f.rules {
		if !rule.appliesTo(f.typ) {
			return errors.Join(ErrRuleType, fmt.Errorf("%q: %s on %s", name, rule, f.typ))
		}
	}
	switch f.typ {
	case TypeObject:
		return checkFields(f.fields, name+".")
	case TypeArray, TypeMap:
		if f.elem == nil {
			return errors.Join(ErrMissingElement, fmt.Errorf("%q", name))
		}
		return checkField(*f.elem, name+".*")
	}
	return nil
}
