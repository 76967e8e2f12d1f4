package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lovemypet/backend/internal/lifecycle"
	"github.com/lovemypet/backend/internal/models"
	"github.com/lovemypet/backend/internal/notify"
	"github.com/lovemypet/backend/internal/storage"
)

// QueueEntry is a pet awaiting review with its pending story and owner.
type QueueEntry struct {
	Pet   models.Pet           `json:"pet"`
	Story models.FoundPetStory `json:"story"`
	Owner *models.User         `json:"owner,omitempty"`
}

type ModerationService struct {
	*transitions
	stories storage.Repository[models.FoundPetStory]
	users   storage.Repository[models.User]
}

func NewModerationService(stores *storage.Stores, settings *SettingsService, broker notify.Broker) *ModerationService {
	return &ModerationService{
		transitions: &transitions{pets: stores.Pets, settings: settings, broker: broker, now: time.Now},
		stories:     stores.Stories,
		users:       stores.Users,
	}
}

// Queue lists pets in Review joined with their latest story. A Review pet
// without a story is skipped.
func (s *ModerationService) Queue(ctx context.Context) ([]QueueEntry, error) {
	pets, err := storage.Filter(ctx, s.pets, func(p models.Pet) bool { return p.Status == models.PetReview })
	if err != nil {
		return nil, err
	}
	latest, err := s.latestStories(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]QueueEntry, 0, len(pets))
	for _, p := range pets {
		st, ok := latest[p.ID]
		if !ok {
			continue
		}
		entry := QueueEntry{Pet: p, Story: st}
		if owner, err := s.users.Get(ctx, p.OwnerID); err == nil {
			entry.Owner = &owner
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// latestStories maps each pet to its most recent submission. Stories from an
// earlier reunion stay in the store after the pet is lost again.
func (s *ModerationService) latestStories(ctx context.Context) (map[string]models.FoundPetStory, error) {
	stories, err := s.stories.List(ctx)
	if err != nil {
		return nil, err
	}
	byPet := make(map[string]models.FoundPetStory, len(stories))
	for _, st := range stories {
		if cur, ok := byPet[st.PetID]; !ok || st.NewerThan(cur) {
			byPet[st.PetID] = st
		}
	}
	return byPet, nil
}

// FinderQueue lists stories whose finder testimonial awaits approval.
func (s *ModerationService) FinderQueue(ctx context.Context) ([]models.FoundPetStory, error) {
	return storage.Filter(ctx, s.stories, func(st models.FoundPetStory) bool {
		return st.FinderTestimonialStatus == models.FinderAwaitingModeration
	})
}

// pending loads a story and checks it is the submission its pet is being
// reviewed for.
func (s *ModerationService) pending(ctx context.Context, storyID string) (models.FoundPetStory, error) {
	story, err := s.stories.Get(ctx, storyID)
	if err != nil {
		return models.FoundPetStory{}, mapNotFound(err, ErrStoryNotFound)
	}
	latest, err := s.latestStories(ctx)
	if err != nil {
		return models.FoundPetStory{}, err
	}
	if latest[story.PetID].ID != story.ID {
		return models.FoundPetStory{}, validationError("story %s is not the pending submission for its pet", story.ID)
	}
	return story, nil
}

// Approve publishes a story under review. A finder testimonial waiting for
// moderation is approved along with it.
func (s *ModerationService) Approve(ctx context.Context, storyID string) (models.FoundPetStory, error) {
	story, err := s.pending(ctx, storyID)
	if err != nil {
		return models.FoundPetStory{}, err
	}
	pet, err := s.apply(ctx, story.PetID, lifecycle.ApproveStory, nil, nil)
	if err != nil {
		return models.FoundPetStory{}, err
	}

	story, err = s.stories.Modify(ctx, story.ID, func(st *models.FoundPetStory) error {
		if st.FinderTestimonialStatus == models.FinderAwaitingModeration {
			st.FinderTestimonialStatus = models.FinderApproved
		}
		return nil
	})
	if err != nil {
		return models.FoundPetStory{}, fmt.Errorf("failed to approve finder testimonial: %w", mapNotFound(err, ErrStoryNotFound))
	}

	publish(ctx, s.broker, notify.Notification{
		Title:       "Story Approved",
		Message:     fmt.Sprintf("The reunion story for %s is now live on the Found Pets page.", pet.Name),
		Link:        "/found",
		ImageURL:    pet.PrimaryPhoto(),
		RecipientID: pet.OwnerID,
	})
	return story, nil
}

// Reject deletes a story under review and returns its pet to Safe. The story
// is removed while the pet is held, together with the move back to Safe.
func (s *ModerationService) Reject(ctx context.Context, actor Actor, storyID string) (models.Pet, error) {
	story, err := s.pending(ctx, storyID)
	if err != nil {
		return models.Pet{}, err
	}
	pet, err := s.apply(ctx, story.PetID, lifecycle.RejectStory, nil, func(*models.Pet) error {
		if err := s.stories.Delete(ctx, story.ID); err != nil && !errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("failed to delete story: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.Pet{}, err
	}

	publish(ctx, s.broker, notify.Notification{
		Title:       "Story Rejected",
		Message:     fmt.Sprintf("The reunion story for %s has been rejected and removed.", pet.Name),
		Link:        "/admin/moderation",
		ImageURL:    pet.PrimaryPhoto(),
		RecipientID: actor.ID,
	})
	return pet, nil
}

// ApproveFinder approves a finder testimonial on an already published story.
func (s *ModerationService) ApproveFinder(ctx context.Context, storyID string) (models.FoundPetStory, error) {
	story, err := s.stories.Modify(ctx, storyID, func(st *models.FoundPetStory) error {
		if st.FinderTestimonialStatus != models.FinderAwaitingModeration {
			return validationError("no finder testimonial is awaiting moderation")
		}
		st.FinderTestimonialStatus = models.FinderApproved
		return nil
	})
	if err != nil {
		return models.FoundPetStory{}, mapNotFound(err, ErrStoryNotFound)
	}
	return story, nil
}
