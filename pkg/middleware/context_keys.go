// Package middleware holds shared context keys used by the middleware
// subpackages and handlers.
package middleware

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

const (
	// RequestIDKey is the context key for the request id.
	RequestIDKey ContextKey = "request_id"

	// IdentityKey is the context key for the verified token identity.
	IdentityKey ContextKey = "identity"

	// UserKey is the context key for the resolved local user profile.
	UserKey ContextKey = "user"
)
