// Package requestid assigns each request an id for log correlation.
package requestid

import (
	"context"

	"github.com/google/uuid"

	"github.com/campusbridge/campusbridge/pkg/middleware"
	"github.com/campusbridge/campusbridge/pkg/server/router"
)

// Header is the HTTP header carrying the request id.
const Header = "X-Request-ID"

// RequestID preserves an incoming X-Request-ID or generates a UUID, and
// propagates it through the context and the response header.
func RequestID() router.MiddlewareFunc {
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(c router.Context) error {
			id := c.Request().Header.Get(Header)
			if id == "" {
				id = uuid.New().String()
			}

			c.Set(string(middleware.RequestIDKey), id)
			c.Response().Header().Set(Header, id)

			ctx := context.WithValue(c.Request().Context(), middleware.RequestIDKey, id)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// FromContext returns the request id stored in ctx, or "".
func FromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(middleware.RequestIDKey).(string); ok {
		return id
	}
	return ""
}
