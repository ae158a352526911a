package wrap

import (
	"context"
	"errors"
)

// Error wraps an error with the current LogCtx from the context so that the
// logger can recover request attributes at the place the error is reported,
// not only where it occurred.
func Error(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}

	// If already wrapped, just update logCtx
	var e *errorWithLogCtx
	if errors.As(err, &e) {
		if x, ok := ctx.Value(LogCtxKey).(LogCtx); ok {
			e.logCtx = x
		}
		return e
	}

	c := LogCtx{}
	if x, ok := ctx.Value(LogCtxKey).(LogCtx); ok {
		c = x
	}
	return &errorWithLogCtx{
		err:    err,
		logCtx: c,
	}
}
