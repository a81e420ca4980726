package logger

import (
	"context"
	"log/slog"
)

type callIDKey struct{}

// WithCallID stores the identifier of a validation call in ctx.
func WithCallID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, callIDKey{}, id)
}

// CallID returns the call identifier stored in ctx, if any.
func CallID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(callIDKey{}).(string)
	return id, ok && id != ""
}

// CallIDExtractor adds "call_id" to every record logged with a context
// carrying a call identifier.
func CallIDExtractor(ctx context.Context) (slog.Attr, bool) {
	id, ok := CallID(ctx)
	if !ok {
		return slog.Attr{}, false
	}
	return slog.String("call_id", id), true
}
