package schema

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownSchema   = errors.New("unknown entity or operation")
	ErrDuplicateSchema = errors.New("schema already registered")
	ErrRegistrySealed  = errors.New("registry is sealed")
	ErrNilEntity       = errors.New("entity cannot be nil")
	ErrUnresolvedPath  = errors.New("path does not resolve to a declared field")
	ErrWildcardPath    = errors.New("wildcard not allowed in this path")
	ErrDuplicateField  = errors.New("field declared more than once")
	ErrMissingElement  = errors.New("collection field has no element declaration")
	ErrRuleType        = errors.New("rule does not apply to field type")
	ErrStatusField     = errors.New("status field must be a declared string field")
	ErrStatusEnum      = errors.New("status enum does not cover every transition state")
	ErrDuplicateHook   = errors.New("external rule id declared more than once")
	ErrUnknownHook     = errors.New("external rule depends on an undeclared rule")
	ErrHookCycle       = errors.New("external rule ordering contains a cycle")
)

// StructuralError reports a defect in a schema or a lookup of an unregistered
// entity/operation pair. It is never part of a validation verdict.
type StructuralError struct {
	Entity    string
	Operation string
	Err       error
}

func (e *StructuralError) Error() string {
	if e.Entity == "" && e.Operation == "" {
		return fmt.Sprintf("schema: %v", e.Err)
	}
	return fmt.Sprintf("schema %s/%s: %v", e.Entity, e.Operation, e.Err)
}

func (e *StructuralError) Unwrap() error {
	return e.Err
}

func NewStructuralError(entity, operation string, err error) *StructuralError {
	return &StructuralError{
		Entity:    entity,
		Operation: operation,
		Err:       err,
	}
}

func IsStructuralError(err error) bool {
	var e *StructuralError
	return errors.As(err, &e)
}
