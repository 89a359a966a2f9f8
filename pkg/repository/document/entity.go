package document

import (
	"bytes"
	"encoding/json"
	"time"
)

// Entity is the uniform persistence surface every stored type exposes.
type Entity interface {
	// Collection names the backing collection.
	Collection() string

	GetID() string
	SetID(id string)

	// Touch refreshes updatedAt and sets createdAt on first save.
	Touch(now time.Time)

	// CreatorRef returns the creator reference, or nil for types
	// without one (users, inquiries).
	CreatorRef() *Ref

	// Validate reports the first schema violation, if any.
	Validate() error
}

// EntityPtr constrains a pointer type to implement Entity, so generic
// code can allocate values and still call pointer methods.
type EntityPtr[T any] interface {
	*T
	Entity
}

// Base carries the fields shared by every stored document. Timestamps
// are ISO-8601 strings refreshed through Touch.
type Base struct {
	ID        string `json:"id,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

func (b *Base) GetID() string   { return b.ID }
func (b *Base) SetID(id string) { b.ID = id }

// CreatedTime and SetCreatedTime let callers preserve the original
// creation timestamp across merge-style updates.
func (b *Base) CreatedTime() string      { return b.CreatedAt }
func (b *Base) SetCreatedTime(ts string) { b.CreatedAt = ts }

// Touch sets createdAt only when absent and always refreshes
// updatedAt.
func (b *Base) Touch(now time.Time) {
	ts := now.UTC().Format(time.RFC3339)
	if b.CreatedAt == "" {
		b.CreatedAt = ts
	}
	b.UpdatedAt = ts
}

// Ref is a foreign reference to another document, normally the creator
// user. It persists as the raw id string; after population it carries
// the resolved snapshot, which serializes as the full object. The raw
// id is authoritative for ownership checks either way.
type Ref struct {
	ID       string
	Resolved map[string]any
}

// IsZero reports whether the reference is unset.
func (r Ref) IsZero() bool { return r.ID == "" && r.Resolved == nil }

// Collapse drops the resolved snapshot so only the raw id persists.
func (r *Ref) Collapse() { r.Resolved = nil }

// MarshalJSON writes the resolved object when present, the raw id
// otherwise, and null when unset.
func (r Ref) MarshalJSON() ([]byte, error) {
	if r.Resolved != nil {
		return json.Marshal(r.Resolved)
	}
	if r.ID == "" {
		return []byte("null"), nil
	}
	return json.Marshal(r.ID)
}

// UnmarshalJSON accepts a raw id string, a resolved object, or null.
func (r *Ref) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = Ref{}
		return nil
	}
	if data[0] == '"' {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*r = Ref{ID: id}
		return nil
	}

	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	id, _ := obj["id"].(string)
	*r = Ref{ID: id, Resolved: obj}
	return nil
}

// encodeDoc converts an entity to its document form through JSON, so
// struct tags and Ref collapsing drive the stored shape.
func encodeDoc(entity any) (map[string]any, error) {
	raw, err := json.Marshal(entity)
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// decodeDoc converts a document back into a typed entity.
func decodeDoc[T any](doc map[string]any) (*T, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
