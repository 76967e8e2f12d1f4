// Package feed derives the community feed from pets, reunion stories and
// posts. Everything here is a pure function of its inputs and the clock value
// passed in, so callers decide where the data comes from.
package feed

import (
	"sort"
	"time"

	"github.com/lovemypet/backend/internal/models"
)

// Ad cadence per page.
const (
	HomeAdEvery = 4
	ListAdEvery = 3
)

type Item struct {
	Key          string                `json:"key"`
	Type         models.PinType        `json:"type"`
	Timestamp    time.Time             `json:"timestamp"`
	Pet          *models.Pet           `json:"pet,omitempty"`
	Story        *models.FoundPetStory `json:"story,omitempty"`
	Post         *models.Post          `json:"post,omitempty"`
	AlertMessage string                `json:"alert_message,omitempty"`
	CommentCount int                   `json:"comment_count,omitempty"`
}

type Input struct {
	Pets    []models.Pet
	Stories []models.FoundPetStory
	Posts   []models.Post
}

func AlertKey(petID string) string  { return "alert-" + petID }
func StoryKey(storyID string) string { return "story-" + storyID }
func PostKey(postID string) string   { return "post-" + postID }

// Compose merges the three streams into one sequence ordered newest first.
// Equal timestamps are ordered by key so the output is deterministic.
func Compose(in Input, now time.Time) []Item {
	items := make([]Item, 0, len(in.Pets)+len(in.Stories)+len(in.Posts))
	items = append(items, Alerts(in.Pets)...)
	items = append(items, Stories(in.Stories, in.Pets)...)

	for i := range in.Posts {
		post := in.Posts[i]
		if !PostVisible(post, now) {
			continue
		}
		items = append(items, Item{
			Key:       PostKey(post.ID),
			Type:      models.PinPost,
			Timestamp: post.Timestamp,
			Post:      &post,
		})
	}

	SortNewestFirst(items)
	return items
}

// Alerts maps every Lost pet to an alert item timestamped by its last sighting
// (the zero Unix time when unknown).
func Alerts(pets []models.Pet) []Item {
	var items []Item
	for i := range pets {
		pet := pets[i]
		if pet.Status != models.PetLost {
			continue
		}
		ts := time.Unix(0, 0).UTC()
		if pet.LastSeenTime != nil {
			ts = *pet.LastSeenTime
		}
		items = append(items, Item{
			Key:          AlertKey(pet.ID),
			Type:         models.PinAlert,
			Timestamp:    ts,
			Pet:          &pet,
			AlertMessage: AlertMessage(pet),
		})
	}
	return items
}

// Stories keeps only stories whose pet is currently Reunited. A story still
// under review, or whose pet was archived or deleted, is never public.
func Stories(stories []models.FoundPetStory, pets []models.Pet) []Item {
	byID := make(map[string]models.Pet, len(pets))
	for _, p := range pets {
		byID[p.ID] = p
	}

	var items []Item
	for i := range stories {
		story := stories[i]
		pet, ok := byID[story.PetID]
		if !ok || pet.Status != models.PetReunited {
			continue
		}
		items = append(items, Item{
			Key:       StoryKey(story.ID),
			Type:      models.PinStory,
			Timestamp: story.ReunionDate,
			Pet:       &pet,
			Story:     &story,
		})
	}
	return items
}

func AlertMessage(pet models.Pet) string {
	if pet.MissingReportMessage != "" {
		return pet.MissingReportMessage
	}
	return "Please help find " + pet.Name + "."
}

// PostVisible reports whether a post may appear at now. User posts always do;
// admin posts must be Active and inside [StartDate, EndOfDay(EndDate)].
func PostVisible(post models.Post, now time.Time) bool {
	if !post.IsAdminPost {
		return true
	}
	if post.Status != models.PostActive {
		return false
	}
	return InWindow(post.StartDate, post.EndDate, now)
}

// InWindow checks now against an inclusive window where either bound may be
// missing. The end bound covers the whole end day.
func InWindow(start, end *time.Time, now time.Time) bool {
	if start != nil && now.Before(*start) {
		return false
	}
	if end != nil && now.After(EndOfDay(*end)) {
		return false
	}
	return true
}

// EndOfDay returns the last representable instant of t's calendar day in t's location.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

func SortNewestFirst(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].Timestamp.Equal(items[j].Timestamp) {
			return items[i].Timestamp.After(items[j].Timestamp)
		}
		return items[i].Key < items[j].Key
	})
}

// Filter keeps the items of one type, preserving order.
func Filter(items []Item, t models.PinType) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if it.Type == t {
			out = append(out, it)
		}
	}
	return out
}
