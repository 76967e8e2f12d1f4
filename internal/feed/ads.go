package feed

import "github.com/lovemypet/backend/internal/models"

// Slot is one display position: either a feed item or an ad placeholder.
// Advert is filled when a campaign is available for the page.
type Slot struct {
	Item   *Item          `json:"item,omitempty"`
	Ad     bool           `json:"ad,omitempty"`
	Advert *models.Advert `json:"advert,omitempty"`
}

// Interleave places an ad placeholder after every nth item. Adverts, when
// given, are assigned to the placeholders round-robin.
func Interleave(items []Item, n int, adverts []models.Advert) []Slot {
	slots := make([]Slot, 0, len(items)+len(items)/max(n, 1))
	adIdx := 0
	for i := range items {
		slots = append(slots, Slot{Item: &items[i]})
		if n > 0 && (i+1)%n == 0 {
			slot := Slot{Ad: true}
			if len(adverts) > 0 {
				ad := adverts[adIdx%len(adverts)]
				slot.Advert = &ad
				adIdx++
			}
			slots = append(slots, slot)
		}
	}
	return slots
}
