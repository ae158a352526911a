package wrap

import (
	"context"
)

type (
	// LogCtx holds contextual information for logging
	LogCtx struct {
		Action    string
		RequestID string
		BookingID string
		Service   string
	}

	// logCtxKeyStruct is an unexported type for context keys defined in this package.
	logCtxKeyStruct struct{}
)

// LogCtxKey is the key for log context values
var LogCtxKey = &logCtxKeyStruct{}

// WithLogCtx returns a new context with the provided LogCtx, merging any
// values already present so callers never lose upstream attributes.
func WithLogCtx(ctx context.Context, newLc LogCtx) context.Context {
	if lc, ok := ctx.Value(LogCtxKey).(LogCtx); ok {
		if newLc.Action == "" {
			newLc.Action = lc.Action
		}
		if newLc.RequestID == "" {
			newLc.RequestID = lc.RequestID
		}
		if newLc.BookingID == "" {
			newLc.BookingID = lc.BookingID
		}
		if newLc.Service == "" {
			newLc.Service = lc.Service
		}
	}
	return context.WithValue(ctx, LogCtxKey, newLc)
}

// WithAction adds or updates the Action in the LogCtx within the context
func WithAction(ctx context.Context, action string) context.Context {
	return WithLogCtx(ctx, LogCtx{Action: action})
}

// WithRequestID adds or updates the RequestID in the LogCtx within the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return WithLogCtx(ctx, LogCtx{RequestID: requestID})
}

// WithBookingID adds or updates the BookingID in the LogCtx within the context
func WithBookingID(ctx context.Context, bookingID string) context.Context {
	return WithLogCtx(ctx, LogCtx{BookingID: bookingID})
}

// WithService adds or updates the service code in the LogCtx within the context
func WithService(ctx context.Context, service string) context.Context {
	return WithLogCtx(ctx, LogCtx{Service: service})
}
