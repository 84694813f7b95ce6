package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	// TraceIDKey is the context key for trace ids.
	TraceIDKey contextKey = "trace_id"

	systemNameKey contextKey = "system_name"
	eventNameKey  contextKey = "event_name"
)

// GetValue retrieves a value from the context.
func GetValue(ctx context.Context, key contextKey) any {
	if ctx == nil {
		return nil
	}
	return ctx.Value(key)
}

// SetValue sets a value to the context.
func SetValue(ctx context.Context, key contextKey, val any) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, key, val)
}

// GetTraceID gets trace id from context.Context.
func GetTraceID(ctx context.Context) string {
	if traceID, ok := GetValue(ctx, TraceIDKey).(string); ok {
		return traceID
	}
	return ""
}

// SetTraceID sets trace id to context.Context.
func SetTraceID(ctx context.Context, traceID string) context.Context {
	return SetValue(ctx, TraceIDKey, traceID)
}

// EnsureTraceID ensures that a trace ID exists in the context.
func EnsureTraceID(ctx context.Context) (context.Context, string) {
	if traceID := GetTraceID(ctx); traceID != "" {
		return ctx, traceID
	}
	traceID := uuid.NewString()
	return SetTraceID(ctx, traceID), traceID
}

// SetSystemName sets the owning event system name to context.Context.
func SetSystemName(ctx context.Context, name string) context.Context {
	return SetValue(ctx, systemNameKey, name)
}

// GetSystemName gets the owning event system name from context.Context.
func GetSystemName(ctx context.Context) string {
	if name, ok := GetValue(ctx, systemNameKey).(string); ok {
		return name
	}
	return ""
}

// SetEventName sets the current event name to context.Context.
func SetEventName(ctx context.Context, name string) context.Context {
	return SetValue(ctx, eventNameKey, name)
}

// GetEventName gets the current event name from context.Context.
func GetEventName(ctx context.Context) string {
	if name, ok := GetValue(ctx, eventNameKey).(string); ok {
		return name
	}
	return ""
}
