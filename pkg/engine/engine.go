package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/kinderkit/pkg/i18n"
	"github.com/dmitrymomot/kinderkit/pkg/logger"
	"github.com/dmitrymomot/kinderkit/pkg/metrics"
	"github.com/dmitrymomot/kinderkit/pkg/schema"
	"github.com/dmitrymomot/kinderkit/pkg/validator"
)

// Engine validates entity input against a sealed schema registry. It is
// safe for concurrent use; every call works on its own Context.
type Engine struct {
	registry      *schema.Registry
	translator    *i18n.Translator
	translatorSet bool
	logger        *slog.Logger
	hooks         Hooks
	metrics       *metrics.EngineMetrics
	cfg           Config
}

// New builds an engine over reg and seals it.
func New(reg *schema.Registry, opts ...Option) (*Engine, error) {
	if reg == nil {
		return nil, ErrNilRegistry
	}

	e := &Engine{
		registry: reg,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		hooks:    make(Hooks),
		cfg:      DefaultConfig(),
	}
	for _, opt := range opts {
		opt(e)
	}
	for id, h := range e.hooks {
		if h == nil {
			return nil, errors.Join(ErrNilHook, fmt.Errorf("%q", id))
		}
	}

	if !e.translatorSet {
		t, err := i18n.NewTranslator(context.Background(), Catalog(),
			i18n.WithDefaultLanguage(e.cfg.DefaultLocale),
			i18n.WithFallbackLanguage(e.cfg.FallbackLocale),
			i18n.WithLogger(e.logger),
		)
		if err != nil {
			return nil, err
		}
		e.translator = t
	}

	reg.Seal()

	if e.cfg.RequireHooks {
		if err := e.checkHooks(); err != nil {
			e.logger.Error("engine misconfigured", logger.Error(err))
			return nil, err
		}
	}
	return e, nil
}

func (e *Engine) checkHooks() error {
	for _, key := range e.registry.Keys() {
		ent, err := e.registry.Lookup(key.Entity, key.Operation)
		if err != nil {
			return err
		}
		for _, x := range ent.Externals() {
			if _, ok := e.hooks[x.ID]; !ok {
				return schema.NewStructuralError(key.Entity, key.Operation,
					errors.Join(ErrMissingHook, fmt.Errorf("%q", x.ID)))
			}
		}
	}
	return nil
}

// Registry returns the sealed registry the engine validates against.
func (e *Engine) Registry() *schema.Registry { return e.registry }

// Validate sanitizes raw and checks it against the schema registered for
// entity and operation. Violations are reported in the Result; the error is
// non-nil only for a *schema.StructuralError.
func (e *Engine) Validate(ctx context.Context, entity, operation string, raw map[string]any, opts ...CallOption) (*Result, error) {
	start := time.Now()
	co := e.callOptions(opts)

	callID := uuid.NewString()
	ctx = logger.WithCallID(ctx, callID)
	log := e.logger.With(
		slog.String("call_id", callID),
		logger.Entity(entity),
		logger.Operation(operation),
	)

	ent, err := e.registry.Lookup(entity, operation)
	if err != nil {
		log.ErrorContext(ctx, "validation aborted", logger.Error(err))
		e.metrics.RecordValidation(entity, operation, metrics.OutcomeStructural, time.Since(start))
		return nil, err
	}

	fields := ent.Fields()
	vc := &Context{
		CallID:    callID,
		Entity:    entity,
		Operation: operation,
		Locale:    e.matchLocale(co.locale),
		Value:     sanitizeObject(fields, raw),
	}
	if co.prior != nil {
		vc.Prior = sanitizeObject(fields, co.prior)
	}

	errs := walkFields(fields, vc.Value, validator.Path{})
	errs = append(errs, evalConditionals(ent, vc.Value, errs)...)
	errs = append(errs, evalCrossFields(ent, vc.Value, errs)...)
	errs = append(errs, evalTransition(ent, vc.Value, vc.Prior, errs)...)

	violations, failures := e.runExternals(ctx, ent, vc, errs, co, log)
	errs = append(errs, violations...)

	for i := range errs {
		errs[i] = e.localize(vc.Locale, withLabel(ent, errs[i]))
	}
	for i := range failures {
		if e.translator != nil {
			failures[i].Message = e.render(vc.Locale, validator.TranslationKey(failures[i].Code),
				failures[i].Code, failures[i].Path, labelValues(ent, failures[i].Path))
		}
	}

	res := newResult(vc.Value, errs, failures)
	e.record(entity, operation, res, time.Since(start))
	log.DebugContext(ctx, "validated",
		logger.Locale(vc.Locale),
		logger.Group("result",
			slog.Bool("valid", res.Valid),
			logger.Violations(len(res.Errors)),
			slog.Int("failures", len(res.Failures)),
		),
		logger.Duration(time.Since(start)),
	)
	return res, nil
}

// Sanitize returns the normalized form of raw without validating it.
func (e *Engine) Sanitize(entity, operation string, raw map[string]any) (map[string]any, error) {
	ent, err := e.registry.Lookup(entity, operation)
	if err != nil {
		return nil, err
	}
	return sanitizeObject(ent.Fields(), raw), nil
}

func (e *Engine) callOptions(opts []CallOption) callOptions {
	co := callOptions{
		hookTimeout: e.cfg.HookTimeout,
		sequential:  e.cfg.HookMode == HookModeSequential,
	}
	for _, opt := range opts {
		opt(&co)
	}
	return co
}

func (e *Engine) record(entity, operation string, res *Result, d time.Duration) {
	if e.metrics == nil {
		return
	}
	outcome := metrics.OutcomeValid
	switch {
	case !res.Conclusive():
		outcome = metrics.OutcomeInconclusive
	case !res.Valid:
		outcome = metrics.OutcomeInvalid
	}
	e.metrics.RecordValidation(entity, operation, outcome, d)
	for _, ve := range res.Errors {
		e.metrics.RecordViolation(entity, ve.Code)
	}
}

func labelValues(ent *schema.Entity, path validator.Path) map[string]any {
	ve := withLabel(ent, validator.ValidationError{Path: path})
	return ve.TranslationValues
}
