// Package recovery converts handler panics into 500 responses.
package recovery

import (
	"net/http"
	"runtime/debug"

	"github.com/campusbridge/campusbridge/pkg/middleware/requestid"
	"github.com/campusbridge/campusbridge/pkg/observability/logger"
	"github.com/campusbridge/campusbridge/pkg/server/router"
)

// Recovery catches panics, logs them with the stack trace, and answers
// with the standard failure envelope when nothing was written yet.
func Recovery(log logger.Logger) router.MiddlewareFunc {
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(c router.Context) error {
			defer func() {
				if r := recover(); r != nil {
					reqID := requestid.FromContext(c.Request().Context())
					log.Error("panic recovered",
						"request_id", reqID,
						"panic", r,
						"stack", string(debug.Stack()),
					)

					if !c.Response().Written() {
						body := map[string]any{
							"success": false,
							"message": "an unexpected error occurred",
						}
						if err := c.JSON(http.StatusInternalServerError, body); err != nil {
							log.Error("failed to send error response",
								"request_id", reqID,
								"error", err,
							)
						}
					}
				}
			}()

			return next(c)
		}
	}
}
