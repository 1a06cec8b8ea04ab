package middleware

import "context"

type contextKey string

const (
	ContextKeyRequestID contextKey = "request_id"
	// ContextKeyDriverID is set by RequireAuth on the gin context.
	ContextKeyDriverID contextKey = "driver_id"
)

// RequestIDFrom returns the request id stored by RequestID.
func RequestIDFrom(ctx context.Context) string {
	if v, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return v
	}
	return ""
}
