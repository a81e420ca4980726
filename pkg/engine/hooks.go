package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/dmitrymomot/kinderkit/pkg/async"
	"github.com/dmitrymomot/kinderkit/pkg/logger"
	"github.com/dmitrymomot/kinderkit/pkg/schema"
	"github.com/dmitrymomot/kinderkit/pkg/validator"
)

// Hook performs a check that needs data outside the input, such as a
// uniqueness lookup. It returns a violation when the value is not
// admissible, nil when it is, and an error when it cannot tell.
// Hooks must honor ctx cancellation.
type Hook interface {
	Check(ctx context.Context, value any, vc *Context) (*validator.ValidationError, error)
}

// HookFunc adapts a function to the Hook interface.
type HookFunc func(ctx context.Context, value any, vc *Context) (*validator.ValidationError, error)

func (f HookFunc) Check(ctx context.Context, value any, vc *Context) (*validator.ValidationError, error) {
	return f(ctx, value, vc)
}

// Hooks maps external rule IDs to their implementations.
type Hooks map[string]Hook

type hookCall struct {
	ext   schema.External
	hook  Hook
	path  validator.Path
	value any
}

type hookOutcome struct {
	violation *validator.ValidationError
	err       error
}

// runExternals executes the entity's hooks wave by wave. A hook runs only
// when its value is present, no violation touches its path or DependsOn
// paths, and every hook it runs after has passed.
func (e *Engine) runExternals(ctx context.Context, ent *schema.Entity, vc *Context, errs validator.ValidationErrors, co callOptions, log *slog.Logger) (validator.ValidationErrors, []ExternalFailure) {
	var (
		violations validator.ValidationErrors
		failures   []ExternalFailure
		passed     = make(map[string]bool)
	)

	for _, wave := range ent.Waves() {
		var calls []hookCall
		for _, x := range wave {
			call, ok := e.prepare(x, vc, slices.Concat(errs, violations), passed, log)
			if ok {
				calls = append(calls, call)
			}
		}
		if len(calls) == 0 {
			continue
		}

		var outcomes []hookOutcome
		if co.sequential {
			outcomes = make([]hookOutcome, len(calls))
			for i, c := range calls {
				outcomes[i] = e.invoke(ctx, c, vc, co.hookTimeout)
			}
		} else {
			outcomes = e.invokeAll(ctx, calls, vc, co.hookTimeout)
		}

		for i, c := range calls {
			o := outcomes[i]
			switch {
			case o.err != nil:
				log.WarnContext(ctx, "external check failed",
					logger.Rule(c.ext.ID),
					logger.Path(c.path.String()),
					logger.Error(o.err),
				)
				e.metrics.RecordHookFailure(c.ext.ID)
				failures = append(failures, ExternalFailure{
					RuleID:  c.ext.ID,
					Path:    c.path.Clone(),
					Code:    validator.CodeUnavailable,
					Message: "could not be verified right now",
					Err:     o.err,
				})
			case o.violation != nil:
				violations = append(violations, e.normalizeViolation(ent, c, *o.violation))
			default:
				passed[c.ext.ID] = true
			}
		}
	}

	return violations, failures
}

func (e *Engine) prepare(x schema.External, vc *Context, errs validator.ValidationErrors, passed map[string]bool, log *slog.Logger) (hookCall, bool) {
	hook, ok := e.hooks[x.ID]
	if !ok || hook == nil {
		log.Debug("external rule skipped: no hook configured", logger.Rule(x.ID))
		return hookCall{}, false
	}
	for _, dep := range x.After {
		if !passed[dep] {
			return hookCall{}, false
		}
	}

	v, ok := schema.Resolve(vc.Value, validator.Path{}, x.Path).Single()
	if !ok {
		return hookCall{}, false
	}
	if errs.Touches(v.Path) {
		return hookCall{}, false
	}
	for _, dep := range x.DependsOn {
		if errs.Touches(validator.ParsePath(dep)) {
			return hookCall{}, false
		}
	}

	return hookCall{ext: x, hook: hook, path: v.Path, value: v.Value}, true
}

// invoke runs one hook under its own deadline. Timeouts and panics are
// reported as errors.
func (e *Engine) invoke(ctx context.Context, c hookCall, vc *Context, timeout time.Duration) hookOutcome {
	hctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	fut := async.Async(hctx, c.value, func(ctx context.Context, v any) (*validator.ValidationError, error) {
		return c.hook.Check(ctx, v, vc)
	})
	violation, err := fut.AwaitWithTimeout(timeout)
	if errors.Is(err, async.ErrTimeout) {
		err = errors.Join(err, fmt.Errorf("hook %q exceeded %s", c.ext.ID, timeout))
	}
	return hookOutcome{violation: violation, err: err}
}

func (e *Engine) invokeAll(ctx context.Context, calls []hookCall, vc *Context, timeout time.Duration) []hookOutcome {
	futures := make([]*async.Future[hookOutcome], len(calls))
	for i, c := range calls {
		futures[i] = async.Async(ctx, c, func(ctx context.Context, c hookCall) (hookOutcome, error) {
			return e.invoke(ctx, c, vc, timeout), nil
		})
	}

	settled := async.AllSettled(futures...)
	outcomes := make([]hookOutcome, len(settled))
	for i, s := range settled {
		outcomes[i] = s.Value
		if s.Err != nil {
			outcomes[i] = hookOutcome{err: s.Err}
		}
	}
	return outcomes
}

// normalizeViolation anchors a hook violation to a declared field and fills
// in what the hook left out.
func (e *Engine) normalizeViolation(ent *schema.Entity, c hookCall, v validator.ValidationError) validator.ValidationError {
	path := v.Path
	if len(path) == 0 {
		path = c.path
	} else if _, ok := fieldAt(ent.Fields(), path); !ok {
		path = c.path
	}
	code := v.Code
	if code == "" {
		code = c.ext.ID
	}
	message := v.Message
	if message == "" {
		message = code
	}
	out := validator.NewError(path, code, message, v.TranslationValues)
	if v.TranslationKey != "" {
		out.TranslationKey = v.TranslationKey
	}
	return out
}
