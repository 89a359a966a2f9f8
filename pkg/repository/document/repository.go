package document

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/campusbridge/campusbridge/pkg/store"
)

// Repository gives an entity type a uniform persistence surface over a
// document Client. Queries built through Find run the in-memory
// filter/populate/sort pipeline; everything else maps to one native
// call.
type Repository[T any, PT EntityPtr[T]] struct {
	client Client
	cache  RefCache
	now    func() time.Time
}

// Option customizes a Repository.
type Option[T any, PT EntityPtr[T]] func(*Repository[T, PT])

// WithClock injects the time source, used by tests to control cache
// TTL and timestamps.
func WithClock[T any, PT EntityPtr[T]](now func() time.Time) Option[T, PT] {
	return func(r *Repository[T, PT]) { r.now = now }
}

// NewRepository creates a repository backed by the given client and
// reference cache.
func NewRepository[T any, PT EntityPtr[T]](client Client, cache RefCache, opts ...Option[T, PT]) *Repository[T, PT] {
	r := &Repository[T, PT]{client: client, cache: cache, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Repository[T, PT]) collection() string {
	var zero T
	return PT(&zero).Collection()
}

// Find returns a query handle seeded with the given equality filter.
// The handle is not executed until Execute is called on it.
func (r *Repository[T, PT]) Find(filter Filter) *Query[T, PT] {
	q := &Query[T, PT]{
		client:     r.client,
		cache:      r.cache,
		collection: r.collection(),
		now:        r.now,
	}
	for field, value := range filter {
		q.Where(field, value)
	}
	return q
}

// FindByID fetches one entity, optionally populating references. An
// absent id yields (nil, nil), not an error.
func (r *Repository[T, PT]) FindByID(ctx context.Context, id string, populates ...Populate) (PT, error) {
	doc, err := r.client.FindByID(ctx, r.collection(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if len(populates) > 0 {
		q := &Query[T, PT]{client: r.client, cache: r.cache, collection: r.collection(), now: r.now}
		for _, p := range populates {
			q.populateDocs(ctx, []map[string]any{doc}, p)
		}
	}

	entity, err := decodeDoc[T](doc)
	if err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	return entity, nil
}

// Count delegates to the native aggregate count over an equality
// filter.
func (r *Repository[T, PT]) Count(ctx context.Context, filter Filter) (int64, error) {
	return r.client.Count(ctx, r.collection(), filter)
}

// Save persists the entity. A first save without an id lets the store
// assign one, captured back onto the entity. createdAt is set only on
// first save, updatedAt always. A populated creator reference is
// collapsed to its raw id first; population never reaches storage.
// Schema validation happens at the handler boundary, not here.
func (r *Repository[T, PT]) Save(ctx context.Context, entity PT) error {
	if ref := entity.CreatorRef(); ref != nil {
		ref.Collapse()
	}
	entity.Touch(r.now())

	doc, err := encodeDoc(entity)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	if entity.GetID() == "" {
		id, err := r.client.Insert(ctx, r.collection(), doc)
		if err != nil {
			return err
		}
		entity.SetID(id)
		return nil
	}
	return r.client.Replace(ctx, r.collection(), entity.GetID(), doc)
}

// Delete removes the entity with the given id. An empty id is an
// ErrMissingID; a miss surfaces as store.ErrNotFound.
func (r *Repository[T, PT]) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrMissingID
	}
	return r.client.Delete(ctx, r.collection(), id)
}
