// Package storage holds the entity repositories. Every entity type is reached
// through the same Repository interface so the in-memory backend used for
// development and tests can be swapped for PostgreSQL without touching callers.
package storage

import (
	"context"
	"errors"

	"github.com/lovemypet/backend/internal/models"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record already exists")
)

// Entity is implemented by every stored model.
type Entity interface {
	EntityID() string
}

// Cloner is implemented by models holding slices so stores can hand out
// copies that callers may mutate freely.
type Cloner[T any] interface {
	Clone() T
}

type Repository[T Entity] interface {
	Get(ctx context.Context, id string) (T, error)
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, v T) (T, error)
	Update(ctx context.Context, v T) (T, error)
	Delete(ctx context.Context, id string) error
	// Modify loads the record, hands it to fn and saves the result as one
	// atomic step. Concurrent Modify calls on the same record run one after
	// the other; an error from fn aborts without saving.
	Modify(ctx context.Context, id string, fn func(*T) error) (T, error)
}

// SettingsStore persists the single settings blob.
// Load returns (nil, nil) when nothing was saved yet.
type SettingsStore interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, blob []byte) error
}

// Stores bundles one repository per entity type.
type Stores struct {
	Users         Repository[models.User]
	Pets          Repository[models.Pet]
	Stories       Repository[models.FoundPetStory]
	Comments      Repository[models.Comment]
	Posts         Repository[models.Post]
	Pins          Repository[models.PinnedItem]
	Advertisers   Repository[models.Advertiser]
	Adverts       Repository[models.Advert]
	Policies      Repository[models.Policy]
	HealthRecords Repository[models.HealthRecord]
	ChatThreads   Repository[models.ChatThread]
	ChatMessages  Repository[models.ChatMessage]
	Settings      SettingsStore
}

// Upsert creates v or replaces the record with the same id.
func Upsert[T Entity](ctx context.Context, repo Repository[T], v T) (T, error) {
	if _, err := repo.Get(ctx, v.EntityID()); err != nil {
		if errors.Is(err, ErrNotFound) {
			return repo.Create(ctx, v)
		}
		var zero T
		return zero, err
	}
	return repo.Update(ctx, v)
}

// Filter lists the repository and keeps the records matching keep.
func Filter[T Entity](ctx context.Context, repo Repository[T], keep func(T) bool) ([]T, error) {
	all, err := repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(all))
	for _, v := range all {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out, nil
}

// FindOne returns the first record matching match, or ErrNotFound.
func FindOne[T Entity](ctx context.Context, repo Repository[T], match func(T) bool) (T, error) {
	all, err := repo.List(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	for _, v := range all {
		if match(v) {
			return v, nil
		}
	}
	var zero T
	return zero, ErrNotFound
}
