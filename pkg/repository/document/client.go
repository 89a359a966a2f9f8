// Package document implements the persistence core: a restricted
// document-store client contract, a query builder that emulates regex
// filtering, sorting and reference population on top of it, a TTL
// reference cache, and a generic entity repository.
//
// The store contract is deliberately narrow. Backends support equality
// filters, id batch lookup and aggregate counts; everything else is
// evaluated in memory by the query builder.
package document

import (
	"context"
	"errors"
)

var (
	// ErrInvalidFilter is returned when a query clause cannot be
	// evaluated: a malformed search pattern, or a search clause passed
	// to a count.
	ErrInvalidFilter = errors.New("invalid filter")

	// ErrMissingID is returned by delete operations without an id.
	ErrMissingID = errors.New("missing identifier")
)

// Filter holds native equality clauses keyed by document field.
// The logical id field is always named "id"; backends translate it to
// their own key schema.
type Filter map[string]any

// Client is the restricted document-store contract. Documents are flat
// JSON-shaped maps whose id is normalized under the "id" key.
type Client interface {
	// Find returns all documents matching the equality filter.
	Find(ctx context.Context, collection string, filter Filter) ([]map[string]any, error)

	// FindByID returns one document or store.ErrNotFound.
	FindByID(ctx context.Context, collection, id string) (map[string]any, error)

	// FindByIDs returns the documents whose id is in ids. Missing ids
	// are simply absent from the result.
	FindByIDs(ctx context.Context, collection string, ids []string) ([]map[string]any, error)

	// Count returns the number of documents matching the equality
	// filter.
	Count(ctx context.Context, collection string, filter Filter) (int64, error)

	// Insert stores a new document, assigning an id when the document
	// has none, and returns the id.
	Insert(ctx context.Context, collection string, doc map[string]any) (string, error)

	// Replace upserts the full document under the given id.
	Replace(ctx context.Context, collection, id string, doc map[string]any) error

	// Delete removes a document, returning store.ErrNotFound when no
	// document has that id.
	Delete(ctx context.Context, collection, id string) error
}
