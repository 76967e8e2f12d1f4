package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/lovemypet/backend/internal/models"
	"github.com/lovemypet/backend/internal/storage"
)

// PinService manages featured feed items. ItemID is the feed key of the
// target, e.g. "alert-pet-2".
type PinService struct {
	pins storage.Repository[models.PinnedItem]
}

func NewPinService(stores *storage.Stores) *PinService {
	return &PinService{pins: stores.Pins}
}

// Pin features an item for [start, end]. Pinning an item that already has a
// pin replaces its window.
func (s *PinService) Pin(ctx context.Context, itemType models.PinType, itemID string, start, end time.Time) (models.PinnedItem, error) {
	itemID = strings.TrimSpace(itemID)
	if !models.ValidPinType(itemType) {
		return models.PinnedItem{}, validationError("invalid item type %q", itemType)
	}
	if itemID == "" {
		return models.PinnedItem{}, validationError("item id is required")
	}
	if start.IsZero() || end.IsZero() {
		return models.PinnedItem{}, validationError("start and end dates are required")
	}
	if end.Before(start) {
		return models.PinnedItem{}, ErrInvalidDateRange
	}
	return storage.Upsert(ctx, s.pins, models.PinnedItem{
		ID:        models.PinKey(itemType, itemID),
		ItemID:    itemID,
		ItemType:  itemType,
		StartDate: start.UTC(),
		EndDate:   end.UTC(),
	})
}

func (s *PinService) Unpin(ctx context.Context, itemType models.PinType, itemID string) error {
	return mapNotFound(s.pins.Delete(ctx, models.PinKey(itemType, itemID)), ErrPinNotFound)
}

// List returns all pins, soonest ending first.
func (s *PinService) List(ctx context.Context) ([]models.PinnedItem, error) {
	pins, err := s.pins.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(pins, func(i, j int) bool { return pins[i].EndDate.Before(pins[j].EndDate) })
	return pins, nil
}
