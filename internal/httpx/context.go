package httpx

import (
	"context"
	"net/http"
)

type contextKey string

const (
	usernameKey   contextKey = "username"
	requestIDKey  contextKey = "requestID"
	accessInfoKey contextKey = "accessInfo"
)

// UsernameFrom retrieves the authenticated username from the request context.
func UsernameFrom(r *http.Request) string {
	if v, ok := r.Context().Value(usernameKey).(string); ok {
		return v
	}
	return ""
}

// ContextWithUsername returns a new context carrying the authenticated username.
func ContextWithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, usernameKey, username)
}

// RequestIDFrom retrieves the request ID from the request context.
func RequestIDFrom(r *http.Request) string {
	if v, ok := r.Context().Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

// ContextWithRequestID returns a new context with the request ID.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// accessInfo is filled by inner middleware so the access log, which wraps them,
// can report who made the request.
type accessInfo struct {
	username string
}

func contextWithAccessInfo(ctx context.Context, info *accessInfo) context.Context {
	return context.WithValue(ctx, accessInfoKey, info)
}

func recordUsername(r *http.Request, username string) {
	if info, ok := r.Context().Value(accessInfoKey).(*accessInfo); ok {
		info.username = username
	}
}
