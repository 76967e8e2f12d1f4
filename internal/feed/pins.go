package feed

import (
	"time"

	"github.com/lovemypet/backend/internal/models"
)

// PinActive reports whether now falls inside [StartDate, EndOfDay(EndDate)].
func PinActive(pin models.PinnedItem, now time.Time) bool {
	return !now.Before(pin.StartDate) && !now.After(EndOfDay(pin.EndDate))
}

// Partition splits composed items into pinned and regular. Pins only select
// among items that already passed base inclusion, so a pin whose target has
// dropped out of the feed has no effect.
func Partition(items []Item, pins []models.PinnedItem, now time.Time) (pinned, regular []Item) {
	active := make(map[string]struct{}, len(pins))
	for _, p := range pins {
		if PinActive(p, now) {
			active[models.PinKey(p.ItemType, p.ItemID)] = struct{}{}
		}
	}

	pinned = make([]Item, 0, len(active))
	regular = make([]Item, 0, len(items))
	for _, it := range items {
		if _, ok := active[models.PinKey(it.Type, it.Key)]; ok {
			pinned = append(pinned, it)
		} else {
			regular = append(regular, it)
		}
	}
	return pinned, regular
}
