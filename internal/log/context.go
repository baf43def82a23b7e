package log

import (
	"context"
)

type ctxMarker struct{}

var ctxMarkerKey = &ctxMarker{}

// Extract takes the call-scoped Logger. Without one, it returns a Logger that
// discards everything.
func Extract(ctx context.Context) *Logger {
	l, ok := ctx.Value(ctxMarkerKey).(*Logger)
	if !ok || l == nil {
		return New(nil)
	}
	return l
}

// ToContext adds the Logger to the context for extraction later.
func ToContext(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, ctxMarkerKey, logger)
}
