package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/lovemypet/backend/internal/models"
)

// MemoryRepository is a mutex-guarded map keeping insertion order for List.
// It is safe for concurrent use.
type MemoryRepository[T Entity] struct {
	mu    sync.RWMutex
	items map[string]T
	order []string
}

func NewMemoryRepository[T Entity]() *MemoryRepository[T] {
	return &MemoryRepository[T]{items: make(map[string]T)}
}

var _ Repository[models.Pet] = (*MemoryRepository[models.Pet])(nil)

func (r *MemoryRepository[T]) Get(_ context.Context, id string) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.items[id]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return clone(v), nil
}

func (r *MemoryRepository[T]) List(_ context.Context) ([]T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]T, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, clone(r.items[id]))
	}
	return out, nil
}

func (r *MemoryRepository[T]) Create(_ context.Context, v T) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := v.EntityID()
	if id == "" {
		var zero T
		return zero, fmt.Errorf("create: empty id")
	}
	if _, exists := r.items[id]; exists {
		var zero T
		return zero, fmt.Errorf("%s: %w", id, ErrConflict)
	}
	r.items[id] = clone(v)
	r.order = append(r.order, id)
	return clone(v), nil
}

func (r *MemoryRepository[T]) Update(_ context.Context, v T) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := v.EntityID()
	if _, ok := r.items[id]; !ok {
		var zero T
		return zero, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	r.items[id] = clone(v)
	return clone(v), nil
}

// Modify holds the write lock while fn runs, so fn must not call back into
// the same repository.
func (r *MemoryRepository[T]) Modify(_ context.Context, id string, fn func(*T) error) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.items[id]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	v := clone(current)
	if err := fn(&v); err != nil {
		var zero T
		return zero, err
	}
	if v.EntityID() != id {
		var zero T
		return zero, fmt.Errorf("modify %s: id changed to %q", id, v.EntityID())
	}
	r.items[id] = clone(v)
	return clone(v), nil
}

func (r *MemoryRepository[T]) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	delete(r.items, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func clone[T any](v T) T {
	if c, ok := any(v).(Cloner[T]); ok {
		return c.Clone()
	}
	return v
}

// NewMemoryStores returns in-memory repositories with settings persisted to
// a JSON file at settingsPath.
func NewMemoryStores(settingsPath string) (*Stores, error) {
	settings, err := NewFileSettingsStore(settingsPath)
	if err != nil {
		return nil, err
	}
	return &Stores{
		Users:         NewMemoryRepository[models.User](),
		Pets:          NewMemoryRepository[models.Pet](),
		Stories:       NewMemoryRepository[models.FoundPetStory](),
		Comments:      NewMemoryRepository[models.Comment](),
		Posts:         NewMemoryRepository[models.Post](),
		Pins:          NewMemoryRepository[models.PinnedItem](),
		Advertisers:   NewMemoryRepository[models.Advertiser](),
		Adverts:       NewMemoryRepository[models.Advert](),
		Policies:      NewMemoryRepository[models.Policy](),
		HealthRecords: NewMemoryRepository[models.HealthRecord](),
		ChatThreads:   NewMemoryRepository[models.ChatThread](),
		ChatMessages:  NewMemoryRepository[models.ChatMessage](),
		Settings:      settings,
	}, nil
}
