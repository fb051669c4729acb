package logger

import "context"

type contextKey string

const (
	// ContextKeyRequestID carries the per-request id the request logging
	// middleware assigned.
	ContextKeyRequestID contextKey = "request_id"
	// ContextKeyUserID carries the authenticated user's id once the auth
	// middleware has verified a token.
	ContextKeyUserID contextKey = "user_id"
	// ContextKeyLogger carries the request-scoped logger.
	ContextKeyLogger contextKey = "logger"
)

// WithRequestIDContext stashes the request id so downstream services can
// tag their logs with it.
func WithRequestIDContext(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// WithUserIDContext stashes the authenticated user's id.
func WithUserIDContext(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, ContextKeyUserID, userID)
}

// WithLoggerContext stashes a request-scoped logger.
func WithLoggerContext(ctx context.Context, log Logger) context.Context {
	return context.WithValue(ctx, ContextKeyLogger, log)
}

// GetRequestID returns the stashed request id, or "" outside a request.
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return requestID
	}
	return ""
}

// GetUserID returns the stashed user id; zero means a guest or a context
// that never passed through the auth middleware.
func GetUserID(ctx context.Context) int64 {
	if userID, ok := ctx.Value(ContextKeyUserID).(int64); ok {
		return userID
	}
	return 0
}

// FromContext returns the request-scoped logger, falling back to the
// global one so callers never need a nil check.
func FromContext(ctx context.Context) Logger {
	if log, ok := ctx.Value(ContextKeyLogger).(Logger); ok {
		return log
	}
	return Get()
}
