package engine

import (
	"github.com/dmitrymomot/kinderkit/pkg/schema"
	"github.com/dmitrymomot/kinderkit/pkg/validator"
)

// evalCrossFields evaluates every invariant once against the violations of
// the earlier stages. Rules with an absent operand, or an operand whose
// referenced values already carry a violation, are skipped.
func evalCrossFields(ent *schema.Entity, value map[string]any, prior validator.ValidationErrors) validator.ValidationErrors {
	var errs validator.ValidationErrors
	for _, cf := range ent.CrossFields() {
		scope := cf.Scope()
		if scope == "" {
			errs = append(errs, evalCrossField(cf, value, validator.Path{}, prior)...)
			continue
		}

		elems := schema.Resolve(value, validator.Path{}, scope+"."+schema.Wildcard)
		for _, el := range elems.Values {
			obj, ok := el.Value.(map[string]any)
			if !ok {
				continue
			}
			errs = append(errs, evalCrossField(cf, obj, el.Path, prior)...)
		}
	}
	return errs
}

func evalCrossField(cf schema.CrossField, root map[string]any, base validator.Path, prior validator.ValidationErrors) validator.ValidationErrors {
	exprs := cf.Exprs()
	ops := make([]schema.Operand, len(exprs))
	for i, expr := range exprs {
		op := schema.Resolve(root, base, expr)
		if !op.Present() || operandFlagged(op, prior) {
			return nil
		}
		ops[i] = op
	}
	return cf.Evaluate(ops)
}

// operandFlagged reports whether an earlier violation makes op unreliable.
// For a wildcard operand only the collection itself, its ancestors and the
// resolved element values count; a violation on a sibling field of an
// element does not.
func operandFlagged(op schema.Operand, prior validator.ValidationErrors) bool {
	if !op.Wildcard() {
		return prior.Touches(op.Base)
	}
	if prior.Covers(op.Base) {
		return true
	}
	for _, v := range op.Values {
		if prior.Touches(v.Path) {
			return true
		}
	}
	return false
}
