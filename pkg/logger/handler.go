package logger

import (
	"context"
	"log/slog"
)

// ContextExtractor derives an attribute from the context of a record.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

// contextHandler runs the extractors only for records that pass the level
// check of the wrapped handler.
type contextHandler struct {
	slog.Handler
	extractors []ContextExtractor
}

func (h *contextHandler) Handle(ctx context.Context, rec slog.Record) error {
	for _, ex := range h.extractors {
		if attr, ok := ex(ctx); ok {
			rec.AddAttrs(attr)
		}
	}
	return h.Handler.Handle(ctx, rec)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithAttrs(attrs), extractors: h.extractors}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithGroup(name), extractors: h.extractors}
}
