// Package logger provides a context-aware wrapper around log/slog with
// functional options, attribute helpers and transparent injection of values
// stored in context.Context.
//
// New is the single factory. It picks slog.NewTextHandler or
// slog.NewJSONHandler based on the configured Format. When extractors are
// registered the handler is wrapped so every ContextExtractor runs before the
// record is written.
//
// Helpers in attr.go keep attribute names consistent across the engine:
// Entity, Operation, Path, Rule, Locale, Violations, Duration, Group and
// Error, which produces an empty attribute for a nil error.
//
// # Usage
//
//	cfg := logger.Config{Level: "debug", Format: "text", Env: "development"}
//	opts, err := logger.FromConfig(cfg, "kgvalidate")
//	if err != nil {
//	    return err
//	}
//	log := logger.New(append(opts,
//	    logger.WithContextExtractors(logger.CallIDExtractor),
//	)...)
//
//	ctx := logger.WithCallID(context.Background(), "c-1")
//	log.InfoContext(ctx, "validated",
//	    logger.Entity("class"),
//	    logger.Operation("create"),
//	    logger.Violations(0),
//	)
package logger
