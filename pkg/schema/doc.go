// Package schema declares entity rule sets and keeps them in a registry.
//
// An Entity combines typed Field declarations with Conditional rules,
// CrossField invariants, an optional status transition matrix and External
// hook declarations. All parts are immutable values built by constructors:
//
//	plan := schema.NewEntity(
//	    []schema.Field{
//	        schema.String("name", schema.Required(), schema.MaxLength(100)),
//	        schema.Date("startDate", schema.Required()),
//	        schema.Date("endDate", schema.Required()),
//	    },
//	    schema.WithCrossFields(schema.DateOrder("startDate", "endDate")),
//	)
//
//	reg := schema.NewRegistry()
//	reg.MustRegister("enrollment-plan", "create", plan)
//	reg.Seal()
//
// Paths are dotted field names; "*" addresses every element of an array or
// every value of a map ("ageGroups.*.quota", "budget.allocated.*").
// Registration resolves every path against the declared fields and rejects
// malformed rule sets with a *StructuralError, so defects surface at startup
// instead of during validation.
package schema
