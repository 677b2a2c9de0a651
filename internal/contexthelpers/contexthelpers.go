// Package contexthelpers stores and retrieves per-request values shared
// between middleware and handlers.
package contexthelpers

import (
	"context"
	"net/http"
)

type contextKey string

const (
	isAuthenticatedContextKey     = contextKey("isAuthenticated")
	authenticatedUserIDContextKey = contextKey("authenticatedUserID")
	currentPathContextKey         = contextKey("currentPath")
	csrfTokenContextKey           = contextKey("csrfToken")
)

// AuthenticateContext marks the request as authenticated for the given user.
func AuthenticateContext(r *http.Request, userID []byte) *http.Request {
	ctx := r.Context()
	ctx = context.WithValue(ctx, isAuthenticatedContextKey, true)
	ctx = context.WithValue(ctx, authenticatedUserIDContextKey, userID)
	return r.WithContext(ctx)
}

func SetCurrentPath(r *http.Request, currentPath string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentPathContextKey, currentPath))
}

func SetCSRFToken(r *http.Request, token string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), csrfTokenContextKey, token))
}

func IsAuthenticated(ctx context.Context) bool {
	isAuthenticated, ok := ctx.Value(isAuthenticatedContextKey).(bool)
	return ok && isAuthenticated
}

// AuthenticatedUserID returns nil when the request has no authenticated user.
func AuthenticatedUserID(ctx context.Context) []byte {
	userID, ok := ctx.Value(authenticatedUserIDContextKey).([]byte)
	if !ok {
		return nil
	}
	return userID
}

func CurrentPath(ctx context.Context) string {
	currentPath, ok := ctx.Value(currentPathContextKey).(string)
	if !ok {
		return ""
	}
	return currentPath
}

func CSRFToken(ctx context.Context) string {
	token, ok := ctx.Value(csrfTokenContextKey).(string)
	if !ok {
		return ""
	}
	return token
}
