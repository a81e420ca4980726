package engine

import (
	"github.com/dmitrymomot/kinderkit/pkg/schema"
	"github.com/dmitrymomot/kinderkit/pkg/validator"
)

// evalConditionals applies each conditional whose predicate holds. A rule
// is skipped when its trigger value already has a violation. Violations
// that duplicate an existing path and code are dropped.
func evalConditionals(ent *schema.Entity, value map[string]any, prior validator.ValidationErrors) validator.ValidationErrors {
	var errs validator.ValidationErrors
	for _, c := range ent.Conditionals() {
		when := c.WhenPath()
		if prior.Touches(when) {
			continue
		}
		trigger := schema.Resolve(value, validator.Path{}, dotted(when))
		tv, _ := trigger.Single()
		if !c.Predicate().Holds(tv.Value, trigger.Present()) {
			continue
		}

		then := c.ThenPath()
		target, ok := schema.Resolve(value, validator.Path{}, dotted(then)).Single()

		var fired validator.ValidationErrors
		for _, r := range c.Rules() {
			if r.Kind() == schema.KindRequired {
				if !ok {
					fired = append(fired, validator.Collect(validator.Present(then, false))...)
				}
				continue
			}
			if !ok {
				continue
			}
			if br, bound := r.Bind(target.Path, target.Value); bound {
				fired = append(fired, validator.Collect(br)...)
			}
		}

		for _, ve := range fired {
			if !contains(prior, ve) && !contains(errs, ve) {
				errs = append(errs, ve)
			}
		}
	}
	return errs
}

func contains(errs validator.ValidationErrors, ve validator.ValidationError) bool {
	for _, e := range errs {
		if e.Code == ve.Code && e.Path.Equal(ve.Path) {
			return true
		}
	}
	return false
}
