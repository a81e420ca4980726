// Package engine runs the validation pipeline for registered entity schemas.
//
// A call to Validate goes through these stages in order:
//
//  1. sanitize the raw input against the declared fields
//  2. walk the field tree and apply field rules
//  3. evaluate conditional rules
//  4. evaluate cross-field invariants
//  5. check the status transition against the prior state
//  6. run external hooks, wave by wave
//
// Violations from every stage are reported together in Result.Errors in
// that order. Hooks that fail to decide are reported in Result.Failures and
// never affect Result.Valid. Unknown entities and malformed schemas surface
// as *schema.StructuralError.
//
//	eng, err := engine.New(registry,
//	    engine.WithLogger(log),
//	    engine.WithHooks(engine.Hooks{"class.name.unique": pgUnique}),
//	)
//	res, err := eng.Validate(ctx, "enrollment-plan", "update", input,
//	    engine.WithPrior(stored),
//	    engine.WithLocale("en"),
//	)
//
// Messages are resolved through an i18n.Translator. The built-in Catalog
// covers every code produced by the rule primitives in zh and en; field
// labels are looked up under fields.<name>.
package engine
