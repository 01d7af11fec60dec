package logging

import (
	"context"
)

// Context keys for logging values.
// Using private types to avoid key collisions.
type contextKey int

const (
	sessionKey contextKey = iota
	componentKey
	operationKey
	runIDKey
)

// WithSession adds a session name to the context.
func WithSession(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, sessionKey, name)
}

// WithComponent adds a component name to the context.
// Component names identify the subsystem generating logs (e.g., "router", "registry", "playback").
func WithComponent(ctx context.Context, component string) context.Context {
	return context.WithValue(ctx, componentKey, component)
}

// WithOperation adds the routed keyword (e.g., "savecommand") to the context.
func WithOperation(ctx context.Context, op string) context.Context {
	return context.WithValue(ctx, operationKey, op)
}

// WithRun adds a playback run ID to the context.
func WithRun(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// SessionFromContext extracts the session name from the context.
// Returns empty string if not set.
func SessionFromContext(ctx context.Context) string {
	return stringValue(ctx, sessionKey)
}

// ComponentFromContext extracts the component name from the context.
func ComponentFromContext(ctx context.Context) string {
	return stringValue(ctx, componentKey)
}

// OperationFromContext extracts the routed keyword from the context.
func OperationFromContext(ctx context.Context) string {
	return stringValue(ctx, operationKey)
}

// RunFromContext extracts the playback run ID from the context.
func RunFromContext(ctx context.Context) string {
	return stringValue(ctx, runIDKey)
}

func stringValue(ctx context.Context, key contextKey) string {
	if v := ctx.Value(key); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
