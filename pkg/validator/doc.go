// Package validator provides the rule primitives of the validation engine:
// small Rule values that pair a boolean Check with a path-addressed,
// translation-friendly ValidationError.
//
// Every exported constructor returns a Rule; nothing is evaluated until Apply
// or Collect runs the rules. Both accumulate all failures instead of stopping
// at the first one, so a single call reports every problem of a value.
//
// # Paths and codes
//
// A Path locates a value inside nested input (["ageGroups","1","quota"] renders
// as ageGroups[1].quota). Each error carries a stable machine code such as
// "number.range" or "date.order"; the translation key is "validation." followed
// by the code and the translation values always include the field name.
//
// # Usage
//
//	errs := validator.Collect(
//	    validator.ValidEmail(validator.NewPath("email"), email),
//	    validator.RangeNum(validator.NewPath("login_attempts"), n, 1, 10),
//	)
//	for _, e := range errs {
//	    fmt.Println(e.Path, e.Code, e.Message)
//	}
//
// ValidationErrors implements error, and the helpers Has, Get, GetErrors,
// ByCode and Fields inspect a collection without re-walking the input.
package validator
