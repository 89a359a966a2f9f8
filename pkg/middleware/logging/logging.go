// Package logging emits one structured log entry per request.
package logging

import (
	"strings"
	"time"

	"github.com/campusbridge/campusbridge/pkg/middleware/requestid"
	"github.com/campusbridge/campusbridge/pkg/observability/logger"
	"github.com/campusbridge/campusbridge/pkg/server/router"
)

// Config controls request logging.
type Config struct {
	Enabled bool
	// ExcludedPathPrefixes suppresses logging for matching paths,
	// typically /healthz and /metrics.
	ExcludedPathPrefixes []string
}

// DefaultConfig enables logging for every path.
func DefaultConfig() Config {
	return Config{Enabled: true}
}

// Logging creates request logging middleware with default configuration.
func Logging(log logger.Logger) router.MiddlewareFunc {
	return WithConfig(log, DefaultConfig())
}

// WithConfig logs method, path, status, duration and request id after
// each request completes. Handler errors are logged at error level and
// propagated unchanged.
func WithConfig(log logger.Logger, cfg Config) router.MiddlewareFunc {
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(c router.Context) error {
			path := c.Request().URL.Path
			if !cfg.Enabled || excluded(cfg.ExcludedPathPrefixes, path) {
				return next(c)
			}

			start := time.Now()
			err := next(c)

			fields := []any{
				"request_id", requestid.FromContext(c.Request().Context()),
				"method", c.Request().Method,
				"path", path,
				"status", c.Response().Status(),
				"duration_ms", time.Since(start).Milliseconds(),
				"remote_addr", c.ClientIP(),
			}

			if err != nil {
				log.Error("request failed", append(fields, "error", err)...)
				return err
			}
			log.Info("request completed", fields...)
			return nil
		}
	}
}

func excluded(prefixes []string, path string) bool {
	for _, p := range prefixes {
		if p != "" && strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
