package feed

import (
	"testing"
	"time"

	"github.com/lovemypet/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d, h, min, s int) time.Time {
	return time.Date(y, m, d, h, min, s, 0, time.UTC)
}

func ptr(t time.Time) *time.Time { return &t }

func TestCompose_AlertForEveryLostPet(t *testing.T) {
	seen := date(2024, 5, 1, 10, 0, 0)
	pets := []models.Pet{
		{ID: "p1", Name: "Whiskers", Status: models.PetLost, LastSeenTime: ptr(seen)},
		{ID: "p2", Name: "Buddy", Status: models.PetSafe},
		{ID: "p3", Name: "Ghost", Status: models.PetLost},
	}

	items := Compose(Input{Pets: pets}, date(2024, 5, 2, 0, 0, 0))

	require.Len(t, items, 2)
	assert.Equal(t, "alert-p1", items[0].Key)
	assert.Equal(t, seen, items[0].Timestamp)
	assert.Equal(t, "p1", items[0].Pet.ID)
	assert.Equal(t, "Please help find Whiskers.", items[0].AlertMessage)

	assert.Equal(t, "alert-p3", items[1].Key)
	assert.Equal(t, time.Unix(0, 0).UTC(), items[1].Timestamp)
}

func TestCompose_AlertUsesReportMessage(t *testing.T) {
	pets := []models.Pet{{ID: "p1", Name: "Rex", Status: models.PetLost, MissingReportMessage: "Rex ran off near the park"}}
	items := Compose(Input{Pets: pets}, time.Now())
	require.Len(t, items, 1)
	assert.Equal(t, "Rex ran off near the park", items[0].AlertMessage)
}

func TestCompose_StoryOnlyWhenPetReunited(t *testing.T) {
	pets := []models.Pet{
		{ID: "p1", Status: models.PetReunited},
		{ID: "p2", Status: models.PetReview},
		{ID: "p3", Status: models.PetArchived},
	}
	stories := []models.FoundPetStory{
		{ID: "s1", PetID: "p1", ReunionDate: date(2024, 1, 2, 0, 0, 0)},
		{ID: "s2", PetID: "p2", ReunionDate: date(2024, 1, 3, 0, 0, 0)},
		{ID: "s3", PetID: "p3", ReunionDate: date(2024, 1, 4, 0, 0, 0)},
		{ID: "s4", PetID: "missing", ReunionDate: date(2024, 1, 5, 0, 0, 0)},
	}

	items := Compose(Input{Pets: pets, Stories: stories}, date(2024, 2, 1, 0, 0, 0))

	require.Len(t, items, 1)
	assert.Equal(t, "story-s1", items[0].Key)
	assert.Equal(t, models.PinStory, items[0].Type)
	assert.Equal(t, date(2024, 1, 2, 0, 0, 0), items[0].Timestamp)
}

func TestCompose_AdminPostWindowIncludesEndDay(t *testing.T) {
	post := models.Post{
		ID:          "a1",
		IsAdminPost: true,
		Status:      models.PostActive,
		Timestamp:   date(2024, 1, 1, 0, 0, 0),
		StartDate:   ptr(date(2024, 1, 1, 0, 0, 0)),
		EndDate:     ptr(date(2024, 1, 31, 0, 0, 0)),
	}
	in := Input{Posts: []models.Post{post}}

	assert.Len(t, Compose(in, date(2024, 1, 31, 23, 59, 0)), 1)
	assert.Empty(t, Compose(in, date(2024, 2, 1, 0, 0, 1)))
	assert.Empty(t, Compose(in, date(2023, 12, 31, 23, 59, 59)))
}

func TestPostVisible(t *testing.T) {
	now := date(2024, 6, 15, 12, 0, 0)
	tests := []struct {
		name string
		post models.Post
		want bool
	}{
		{"user post always", models.Post{Status: models.PostArchived}, true},
		{"admin archived", models.Post{IsAdminPost: true, Status: models.PostArchived}, false},
		{"admin open window", models.Post{IsAdminPost: true, Status: models.PostActive}, true},
		{"admin no end", models.Post{IsAdminPost: true, Status: models.PostActive, StartDate: ptr(date(2024, 1, 1, 0, 0, 0))}, true},
		{"admin not started", models.Post{IsAdminPost: true, Status: models.PostActive, StartDate: ptr(date(2024, 7, 1, 0, 0, 0))}, false},
		{"admin ended", models.Post{IsAdminPost: true, Status: models.PostActive, EndDate: ptr(date(2024, 6, 14, 0, 0, 0))}, false},
		{"admin ends today", models.Post{IsAdminPost: true, Status: models.PostActive, EndDate: ptr(date(2024, 6, 15, 0, 0, 0))}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PostVisible(tt.post, now))
		})
	}
}

func TestCompose_SortedNewestFirstWithKeyTieBreak(t *testing.T) {
	ts := date(2024, 3, 3, 3, 3, 3)
	pets := []models.Pet{
		{ID: "b", Status: models.PetLost, LastSeenTime: ptr(ts)},
		{ID: "a", Status: models.PetLost, LastSeenTime: ptr(ts)},
	}
	posts := []models.Post{
		{ID: "old", Timestamp: date(2024, 1, 1, 0, 0, 0)},
		{ID: "new", Timestamp: date(2024, 4, 1, 0, 0, 0)},
		{ID: "same", Timestamp: ts},
	}

	items := Compose(Input{Pets: pets, Posts: posts}, ts)

	keys := make([]string, len(items))
	for i, it := range items {
		keys[i] = it.Key
	}
	assert.Equal(t, []string{"post-new", "alert-a", "alert-b", "post-same", "post-old"}, keys)
}

func TestEndOfDay(t *testing.T) {
	got := EndOfDay(date(2024, 2, 29, 8, 30, 0))
	assert.Equal(t, time.Date(2024, 2, 29, 23, 59, 59, 999999999, time.UTC), got)
}

func TestFilter(t *testing.T) {
	items := []Item{{Key: "alert-1", Type: models.PinAlert}, {Key: "post-1", Type: models.PinPost}, {Key: "alert-2", Type: models.PinAlert}}
	got := Filter(items, models.PinAlert)
	require.Len(t, got, 2)
	assert.Equal(t, "alert-2", got[1].Key)
}
