package engine

import (
	"github.com/dmitrymomot/kinderkit/pkg/validator"
)

// ExternalFailure reports a hook that could not decide: it errored, timed
// out or panicked. Failures say nothing about the validity of the input.
type ExternalFailure struct {
	RuleID  string         `json:"rule"`
	Path    validator.Path `json:"path"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Err     error          `json:"-"`
}

func (f ExternalFailure) Error() string {
	if f.Err != nil {
		return f.RuleID + ": " + f.Err.Error()
	}
	return f.RuleID + ": " + f.Message
}

func (f ExternalFailure) Unwrap() error { return f.Err }

// Result is the verdict of one Validate call. Valid is true exactly when
// Errors is empty. Value is the sanitized input.
type Result struct {
	Valid    bool                       `json:"valid"`
	Value    map[string]any             `json:"value"`
	Errors   validator.ValidationErrors `json:"errors"`
	Failures []ExternalFailure          `json:"failures"`
}

// Conclusive reports whether every configured hook reached a decision.
func (r *Result) Conclusive() bool {
	return len(r.Failures) == 0
}

func newResult(value map[string]any, errs validator.ValidationErrors, failures []ExternalFailure) *Result {
	if errs == nil {
		errs = validator.ValidationErrors{}
	}
	if failures == nil {
		failures = []ExternalFailure{}
	}
	return &Result{
		Valid:    len(errs) == 0,
		Value:    value,
		Errors:   errs,
		Failures: failures,
	}
}
