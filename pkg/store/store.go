// Package store defines the lifecycle contract shared by all storage
// adapters and the sentinel errors they surface.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by id lookups when no document exists.
var ErrNotFound = errors.New("document not found")

// Adapter is the minimal lifecycle and health contract for storage
// adapters.
type Adapter interface {
	HealthCheck(ctx context.Context) error
	Close() error
}
