package feed

import (
	"testing"

	"github.com/lovemypet/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPinActive_InclusiveWindow(t *testing.T) {
	pin := models.PinnedItem{
		ItemID:    "post-1",
		ItemType:  models.PinPost,
		StartDate: date(2024, 3, 1, 0, 0, 0),
		EndDate:   date(2024, 3, 10, 0, 0, 0),
	}

	assert.False(t, PinActive(pin, date(2024, 2, 29, 23, 59, 59)))
	assert.True(t, PinActive(pin, date(2024, 3, 1, 0, 0, 0)))
	assert.True(t, PinActive(pin, date(2024, 3, 10, 23, 59, 59)))
	assert.False(t, PinActive(pin, date(2024, 3, 11, 0, 0, 0)))
}

func TestPartition(t *testing.T) {
	now := date(2024, 3, 5, 12, 0, 0)
	items := []Item{
		{Key: "post-1", Type: models.PinPost},
		{Key: "alert-p1", Type: models.PinAlert},
		{Key: "story-s1", Type: models.PinStory},
		{Key: "post-2", Type: models.PinPost},
	}
	pins := []models.PinnedItem{
		{ItemID: "alert-p1", ItemType: models.PinAlert, StartDate: date(2024, 3, 1, 0, 0, 0), EndDate: date(2024, 3, 5, 0, 0, 0)},
		// expired
		{ItemID: "post-2", ItemType: models.PinPost, StartDate: date(2024, 2, 1, 0, 0, 0), EndDate: date(2024, 2, 2, 0, 0, 0)},
		// type mismatch
		{ItemID: "story-s1", ItemType: models.PinPost, StartDate: date(2024, 3, 1, 0, 0, 0), EndDate: date(2024, 3, 9, 0, 0, 0)},
		// target no longer in the feed
		{ItemID: "alert-gone", ItemType: models.PinAlert, StartDate: date(2024, 3, 1, 0, 0, 0), EndDate: date(2024, 3, 9, 0, 0, 0)},
	}

	pinned, regular := Partition(items, pins, now)

	require.Len(t, pinned, 1)
	assert.Equal(t, "alert-p1", pinned[0].Key)
	require.Len(t, regular, 3)
	assert.Equal(t, "post-1", regular[0].Key)
	assert.Equal(t, "story-s1", regular[1].Key)
	assert.Equal(t, "post-2", regular[2].Key)
}
