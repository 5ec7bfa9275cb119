// Package store persists the to-do list under a single key in a key-value
// backend. The list is encoded as a JSON array and checked against a JSON
// Schema when read back.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Makepad-fr/tada/internal/model"
)

// DefaultKey is the fixed key the list is stored under.
const DefaultKey = "todo-20211207"

// Backend is a minimal key-value store. Get reports ok=false for a missing key.
type Backend interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// Repository reads and writes the item list through a Backend.
type Repository struct {
	backend Backend
	key     string
}

// NewRepository binds a backend to a key. An empty key means DefaultKey.
func NewRepository(b Backend, key string) *Repository {
	if key == "" {
		key = DefaultKey
	}
	return &Repository{backend: b, key: key}
}

// Load returns the stored list, or nil if nothing was stored yet.
// Payloads that are not a list of items are rejected.
func (r *Repository) Load(ctx context.Context) ([]model.Item, error) {
	raw, ok, err := r.backend.Get(ctx, r.key)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", r.key, err)
	}
	if !ok {
		return nil, nil
	}
	if err := validate(raw); err != nil {
		return nil, fmt.Errorf("checking %q: %w", r.key, err)
	}
	var items []model.Item
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	return items, nil
}

// Save overwrites the stored list.
func (r *Repository) Save(ctx context.Context, items []model.Item) error {
	if items == nil {
		items = []model.Item{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := r.backend.Set(ctx, r.key, b); err != nil {
		return fmt.Errorf("writing %q: %w", r.key, err)
	}
	return nil
}
