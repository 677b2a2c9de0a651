package logging

import (
	"context"
	"log/slog"

	"github.com/lendfolio/lendfolio/internal/errors"
)

type contextKey string

const attrsKey contextKey = "slogAttrs"

// ContextHandler decorates a [slog.Handler] so that attributes stored in the
// [context.Context] with [WithAttrs] end up on every log record. Request
// handlers use this to tag all log output with e.g. the session user.
type ContextHandler struct {
	slog.Handler
}

func NewContextHandler(h slog.Handler) ContextHandler {
	return ContextHandler{Handler: h}
}

// Handle enriches the log record with the attributes stored in ctx.
func (h ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if attrs, ok := ctx.Value(attrsKey).([]slog.Attr); ok {
		r.AddAttrs(attrs...)
	}

	if err := h.Handler.Handle(ctx, r); err != nil {
		return errors.Wrap(err, "handle log record")
	}
	return nil
}

// WithAttrs returns a context carrying the given attributes for [ContextHandler].
func WithAttrs(ctx context.Context, attrs ...slog.Attr) context.Context {
	if existing, ok := ctx.Value(attrsKey).([]slog.Attr); ok {
		attrs = append(existing, attrs...)
	}
	return context.WithValue(ctx, attrsKey, attrs)
}
