package document

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"time"
)

// populateBatchSize respects the native "id is one of N values"
// query-size ceiling.
const populateBatchSize = 30

// Sort specifies one field and direction, applied in memory.
type Sort struct {
	Field string
	Order SortOrder
}

// SortOrder defines the direction of sorting.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Populate names a foreign-key field and the collection its ids
// resolve against.
type Populate struct {
	Field      string
	Collection string
}

type searchClause struct {
	field   string
	pattern string
}

// Query is a four-phase query over one collection: native equality
// fetch, in-memory search filter, reference population, in-memory
// sort. Construction (Where, Search, Populate, SortBy) and execution
// (Execute) are separate; each Execute runs a fresh query and caches
// nothing across invocations.
type Query[T any, PT EntityPtr[T]] struct {
	client     Client
	cache      RefCache
	collection string
	filter     Filter
	search     *searchClause
	populates  []Populate
	sortSpec   *Sort
	now        func() time.Time
}

// Where adds a native equality clause and returns the query.
func (q *Query[T, PT]) Where(field string, value any) *Query[T, PT] {
	if q.filter == nil {
		q.filter = Filter{}
	}
	q.filter[field] = value
	return q
}

// Search adds a case-insensitive regex filter on a text field,
// evaluated in memory after the native fetch. A malformed pattern
// surfaces as ErrInvalidFilter at execution time.
func (q *Query[T, PT]) Search(field, pattern string) *Query[T, PT] {
	q.search = &searchClause{field: field, pattern: pattern}
	return q
}

// WithPopulate marks a foreign-key field for resolution. Multiple
// calls accumulate.
func (q *Query[T, PT]) WithPopulate(field, collection string) *Query[T, PT] {
	q.populates = append(q.populates, Populate{Field: field, Collection: collection})
	return q
}

// SortBy records the single sort field and direction.
func (q *Query[T, PT]) SortBy(field string, order SortOrder) *Query[T, PT] {
	q.sortSpec = &Sort{Field: field, Order: order}
	return q
}

// Execute runs the query. A native fetch failure propagates unchanged;
// an unresolvable reference yields null for that item, never an error.
func (q *Query[T, PT]) Execute(ctx context.Context) ([]T, error) {
	var matcher *regexp.Regexp
	if q.search != nil {
		var err error
		matcher, err = regexp.Compile("(?i)" + q.search.pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFilter, err)
		}
	}

	docs, err := q.client.Find(ctx, q.collection, q.filter)
	if err != nil {
		return nil, err
	}

	if matcher != nil {
		filtered := docs[:0]
		for _, doc := range docs {
			if s, ok := doc[q.search.field].(string); ok && matcher.MatchString(s) {
				filtered = append(filtered, doc)
			}
		}
		docs = filtered
	}

	for _, p := range q.populates {
		q.populateDocs(ctx, docs, p)
	}

	if q.sortSpec != nil {
		sortDocs(docs, *q.sortSpec)
	}

	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		entity, err := decodeDoc[T](doc)
		if err != nil {
			return nil, fmt.Errorf("failed to decode document: %w", err)
		}
		out = append(out, *entity)
	}
	return out, nil
}

// Count delegates to the native aggregate count. Only equality clauses
// are supported; a pending search clause is an ErrInvalidFilter rather
// than a silent undercount.
func (q *Query[T, PT]) Count(ctx context.Context) (int64, error) {
	if q.search != nil {
		return 0, fmt.Errorf("%w: count does not support search clauses", ErrInvalidFilter)
	}
	return q.client.Count(ctx, q.collection, q.filter)
}

// populateDocs replaces each document's reference field with the
// resolved snapshot, or null when the id cannot be resolved. Distinct
// ids are served from the cache first and fetched in bounded batches
// otherwise. Two concurrent executions may fetch the same id twice;
// the overwrite is harmless.
func (q *Query[T, PT]) populateDocs(ctx context.Context, docs []map[string]any, p Populate) {
	now := q.now()

	resolved := make(map[string]map[string]any)
	var missing []string
	seen := make(map[string]struct{})
	for _, doc := range docs {
		id := refID(doc[p.Field])
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		if snapshot, ok := q.cache.Get(ctx, id, now); ok {
			resolved[id] = snapshot
			continue
		}
		missing = append(missing, id)
	}

	for start := 0; start < len(missing); start += populateBatchSize {
		end := start + populateBatchSize
		if end > len(missing) {
			end = len(missing)
		}
		fetched, err := q.client.FindByIDs(ctx, p.Collection, missing[start:end])
		if err != nil {
			// Items in a failed batch stay unresolved and render null.
			continue
		}
		for _, doc := range fetched {
			id, _ := doc["id"].(string)
			if id == "" {
				continue
			}
			q.cache.Put(ctx, id, doc, now)
			resolved[id] = doc
		}
	}

	for _, doc := range docs {
		id := refID(doc[p.Field])
		if id == "" {
			continue
		}
		if snapshot, ok := resolved[id]; ok {
			doc[p.Field] = snapshot
		} else {
			doc[p.Field] = nil
		}
	}
}

// refID extracts the raw id from a reference value, which is a string
// before population and an object after.
func refID(v any) string {
	switch ref := v.(type) {
	case string:
		return ref
	case map[string]any:
		id, _ := ref["id"].(string)
		return id
	default:
		return ""
	}
}

// sortDocs orders docs by one field. Values that parse as RFC3339 are
// compared as instants, with unset values pinned to the Unix epoch
// zero. Everything else falls back to numeric or plain string
// ordering. Ties keep fetch order.
func sortDocs(docs []map[string]any, spec Sort) {
	desc := spec.Order == SortDesc
	sort.SliceStable(docs, func(i, j int) bool {
		c := compareValues(docs[i][spec.Field], docs[j][spec.Field])
		if desc {
			return c > 0
		}
		return c < 0
	})
}

func compareValues(a, b any) int {
	ta, aok := parseTimeValue(a)
	tb, bok := parseTimeValue(b)
	if aok || bok {
		// The missing side is the epoch zero value already.
		switch {
		case ta.Before(tb):
			return -1
		case ta.After(tb):
			return 1
		default:
			return 0
		}
	}

	if na, ok := a.(float64); ok {
		if nb, ok := b.(float64); ok {
			switch {
			case na < nb:
				return -1
			case na > nb:
				return 1
			default:
				return 0
			}
		}
	}

	sa, _ := a.(string)
	sb, _ := b.(string)
	switch {
	case sa < sb:
		return -1
	case sa > sb:
		return 1
	default:
		return 0
	}
}

func parseTimeValue(v any) (time.Time, bool) {
	s, ok := v.(string)
	if !ok {
		return time.Unix(0, 0).UTC(), false
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Unix(0, 0).UTC(), false
	}
	return t, true
}
