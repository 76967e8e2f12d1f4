package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/lovemypet/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRepository stores T in its own table. Lookups go by the "id" column.
type GormRepository[T Entity] struct {
	db *gorm.DB
}

func NewGormRepository[T Entity](db *gorm.DB) *GormRepository[T] {
	return &GormRepository[T]{db: db}
}

var _ Repository[models.Pet] = (*GormRepository[models.Pet])(nil)

func (r *GormRepository[T]) Get(ctx context.Context, id string) (T, error) {
	var v T
	if err := r.db.WithContext(ctx).First(&v, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return v, fmt.Errorf("%s: %w", id, ErrNotFound)
		}
		return v, fmt.Errorf("failed to load %s: %w", id, err)
	}
	return v, nil
}

func (r *GormRepository[T]) List(ctx context.Context) ([]T, error) {
	var out []T
	if err := r.db.WithContext(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	return out, nil
}

func (r *GormRepository[T]) Create(ctx context.Context, v T) (T, error) {
	if err := r.db.WithContext(ctx).Create(&v).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return v, fmt.Errorf("%s: %w", v.EntityID(), ErrConflict)
		}
		return v, fmt.Errorf("failed to create %s: %w", v.EntityID(), err)
	}
	return v, nil
}

func (r *GormRepository[T]) Update(ctx context.Context, v T) (T, error) {
	result := r.db.WithContext(ctx).Model(&v).Where("id = ?", v.EntityID()).Select("*").Updates(&v)
	if result.Error != nil {
		return v, fmt.Errorf("failed to update %s: %w", v.EntityID(), result.Error)
	}
	if result.RowsAffected == 0 {
		return v, fmt.Errorf("%s: %w", v.EntityID(), ErrNotFound)
	}
	return v, nil
}

// Modify locks the row with SELECT ... FOR UPDATE inside a transaction so a
// concurrent Modify on the same id waits until this one commits.
func (r *GormRepository[T]) Modify(ctx context.Context, id string, fn func(*T) error) (T, error) {
	var out T
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var v T
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&v, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%s: %w", id, ErrNotFound)
			}
			return fmt.Errorf("failed to lock %s: %w", id, err)
		}
		if err := fn(&v); err != nil {
			return err
		}
		if v.EntityID() != id {
			return fmt.Errorf("modify %s: id changed to %q", id, v.EntityID())
		}
		if err := tx.Model(&v).Where("id = ?", id).Select("*").Updates(&v).Error; err != nil {
			return fmt.Errorf("failed to update %s: %w", id, err)
		}
		out = v
		return nil
	})
	return out, err
}

func (r *GormRepository[T]) Delete(ctx context.Context, id string) error {
	var v T
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&v)
	if result.Error != nil {
		return fmt.Errorf("failed to delete %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return nil
}

// NewGormStores returns PostgreSQL-backed repositories. Tables must already
// be migrated (see database.Migrate).
func NewGormStores(db *gorm.DB) *Stores {
	return &Stores{
		Users:         NewGormRepository[models.User](db),
		Pets:          NewGormRepository[models.Pet](db),
		Stories:       NewGormRepository[models.FoundPetStory](db),
		Comments:      NewGormRepository[models.Comment](db),
		Posts:         NewGormRepository[models.Post](db),
		Pins:          NewGormRepository[models.PinnedItem](db),
		Advertisers:   NewGormRepository[models.Advertiser](db),
		Adverts:       NewGormRepository[models.Advert](db),
		Policies:      NewGormRepository[models.Policy](db),
		HealthRecords: NewGormRepository[models.HealthRecord](db),
		ChatThreads:   NewGormRepository[models.ChatThread](db),
		ChatMessages:  NewGormRepository[models.ChatMessage](db),
		Settings:      NewGormSettingsStore(db),
	}
}
