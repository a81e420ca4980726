package engine

import (
	"github.com/dmitrymomot/kinderkit/pkg/schema"
	"github.com/dmitrymomot/kinderkit/pkg/statemachine"
	"github.com/dmitrymomot/kinderkit/pkg/validator"
)

// evalTransition checks the status change between the stored state and
// the input. It runs only when the entity has a matrix, both statuses are
// present and the proposed status has no violation of its own.
func evalTransition(ent *schema.Entity, value, priorState map[string]any, prior validator.ValidationErrors) validator.ValidationErrors {
	matrix, field, ok := ent.Transitions()
	if !ok || priorState == nil {
		return nil
	}
	path := validator.NewPath(field)
	if prior.Touches(path) {
		return nil
	}

	from, ok1 := priorState[field].(string)
	to, ok2 := value[field].(string)
	if !ok1 || !ok2 || from == "" || to == "" {
		return nil
	}

	err := matrix.Check(statemachine.State(from), statemachine.State(to))
	if err == nil {
		return nil
	}
	return validator.ValidationErrors{validator.NewError(path, validator.CodeTransition, err.Error(),
		map[string]any{"from": from, "to": to},
	)}
}
