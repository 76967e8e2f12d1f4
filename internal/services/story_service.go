package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lovemypet/backend/internal/lifecycle"
	"github.com/lovemypet/backend/internal/models"
	"github.com/lovemypet/backend/internal/notify"
	"github.com/lovemypet/backend/internal/storage"
)

type ReunionInput struct {
	OwnerTestimonial string
	OwnerRating      int
	ReunionDate      time.Time
}

// Reunion is the result of submitting a reunion story. FinderLink is the
// one-time capability URL the owner can share with whoever found the pet.
type Reunion struct {
	Pet        models.Pet
	Story      models.FoundPetStory
	FinderLink string
}

// StoryView is a public story joined with its pet.
type StoryView struct {
	Story        models.FoundPetStory `json:"story"`
	Pet          models.Pet           `json:"pet"`
	CommentCount int                  `json:"comment_count"`
}

type StoryService struct {
	*transitions
	stories  storage.Repository[models.FoundPetStory]
	comments storage.Repository[models.Comment]
	appURL   string
}

func NewStoryService(stores *storage.Stores, settings *SettingsService, broker notify.Broker, appURL string) *StoryService {
	return &StoryService{
		transitions: &transitions{pets: stores.Pets, settings: settings, broker: broker, now: time.Now},
		stories:     stores.Stories,
		comments:    stores.Comments,
		appURL:      strings.TrimRight(appURL, "/"),
	}
}

func generateFinderToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

func (s *StoryService) FinderLink(token string) string {
	return s.appURL + "/#/finder-testimonial/" + token
}

// SubmitReunion records the owner's side of a reunion for a Lost pet and
// moves it to Review, or straight to Reunited when approval is off.
func (s *StoryService) SubmitReunion(ctx context.Context, actor Actor, petID string, in ReunionInput) (Reunion, error) {
	if strings.TrimSpace(in.OwnerTestimonial) == "" {
		return Reunion{}, validationError("owner testimonial is required")
	}
	if in.OwnerRating < 1 || in.OwnerRating > 5 {
		return Reunion{}, validationError("rating must be between 1 and 5")
	}

	token, err := generateFinderToken()
	if err != nil {
		return Reunion{}, fmt.Errorf("failed to generate finder token: %w", err)
	}
	reunionDate := in.ReunionDate
	if reunionDate.IsZero() {
		reunionDate = s.now()
	}

	// The story is created while the pet is held, after the move to Review
	// or Reunited has been accepted, so only one submission per alert wins.
	var story models.FoundPetStory
	updated, err := s.apply(ctx, petID, lifecycle.SubmitReunion, ownedBy(actor), func(p *models.Pet) error {
		created, err := s.stories.Create(ctx, models.FoundPetStory{
			ID:                      uuid.NewString(),
			PetID:                   p.ID,
			ReunionDate:             reunionDate.UTC(),
			OwnerTestimonial:        strings.TrimSpace(in.OwnerTestimonial),
			OwnerRating:             in.OwnerRating,
			FinderTestimonialStatus: models.FinderNotSubmitted,
			FinderUniqueToken:       token,
			SubmittedAt:             s.now().UTC(),
		})
		if err != nil {
			return fmt.Errorf("failed to create story: %w", err)
		}
		story = created
		return nil
	})
	if err != nil {
		if story.ID != "" {
			_ = s.stories.Delete(ctx, story.ID)
		}
		return Reunion{}, err
	}

	s.publishSubmitted(ctx, actor, updated)
	return Reunion{Pet: updated, Story: story, FinderLink: s.FinderLink(token)}, nil
}

func (s *StoryService) publishSubmitted(ctx context.Context, actor Actor, pet models.Pet) {
	n := notify.Notification{
		Title:       "Story Submitted for Review",
		Message:     fmt.Sprintf("Thank you! Your reunion story for %s is in moderation.", pet.Name),
		Link:        "/profile",
		ImageURL:    pet.PrimaryPhoto(),
		RecipientID: pet.OwnerID,
	}
	if pet.Status == models.PetReunited {
		n.Title = "Reunion Story Published!"
		n.Message = fmt.Sprintf("The story for %s is now live on the Found Pets page!", pet.Name)
		n.Link = "/found"
	}
	if !actor.owns(pet.OwnerID) {
		n.Title = "Reunion Story Started!"
		n.Message = fmt.Sprintf("An admin has marked %s as reunited. Share the finder link to collect their story.", pet.Name)
	}
	publish(ctx, s.broker, n)
}

func (s *StoryService) Get(ctx context.Context, id string) (models.FoundPetStory, error) {
	story, err := s.stories.Get(ctx, id)
	if err != nil {
		return models.FoundPetStory{}, mapNotFound(err, ErrStoryNotFound)
	}
	return story, nil
}

// ListPublic returns stories whose pet is Reunited, newest reunion first.
func (s *StoryService) ListPublic(ctx context.Context) ([]StoryView, error) {
	pets, err := s.pets.List(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.Pet, len(pets))
	for _, p := range pets {
		byID[p.ID] = p
	}
	stories, err := s.stories.List(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.CommentCounts(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]StoryView, 0, len(stories))
	for _, st := range stories {
		pet, ok := byID[st.PetID]
		if !ok || pet.Status != models.PetReunited {
			continue
		}
		views = append(views, StoryView{Story: st, Pet: pet, CommentCount: counts[st.ID]})
	}
	sort.SliceStable(views, func(i, j int) bool {
		return views[i].Story.ReunionDate.After(views[j].Story.ReunionDate)
	})
	return views, nil
}

func (s *StoryService) Like(ctx context.Context, id string) (models.FoundPetStory, error) {
	story, err := s.stories.Modify(ctx, id, func(st *models.FoundPetStory) error {
		st.Likes++
		return nil
	})
	if err != nil {
		return models.FoundPetStory{}, mapNotFound(err, ErrStoryNotFound)
	}
	return story, nil
}

// Comments returns a story's comments oldest first.
func (s *StoryService) Comments(ctx context.Context, storyID string) ([]models.Comment, error) {
	if _, err := s.Get(ctx, storyID); err != nil {
		return nil, err
	}
	comments, err := storage.Filter(ctx, s.comments, func(c models.Comment) bool { return c.StoryID == storyID })
	if err != nil {
		return nil, err
	}
	sort.SliceStable(comments, func(i, j int) bool { return comments[i].Timestamp.Before(comments[j].Timestamp) })
	return comments, nil
}

func (s *StoryService) CommentCounts(ctx context.Context) (map[string]int, error) {
	comments, err := s.comments.List(ctx)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, c := range comments {
		counts[c.StoryID]++
	}
	return counts, nil
}

func (s *StoryService) AddComment(ctx context.Context, actor Actor, storyID, text string) (models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Comment{}, validationError("comment text is required")
	}
	if _, err := s.Get(ctx, storyID); err != nil {
		return models.Comment{}, err
	}
	words := s.settings.Current(ctx).ContentModeration.ProfanityList
	return s.comments.Create(ctx, models.Comment{
		ID:        uuid.NewString(),
		StoryID:   storyID,
		AuthorID:  actor.ID,
		Text:      CensorText(text, words),
		Timestamp: s.now().UTC(),
	})
}

// FinderStory is what a finder sees when opening a capability link.
type FinderStory struct {
	Story models.FoundPetStory `json:"story"`
	Pet   models.Pet           `json:"pet"`
}

func (s *StoryService) findByToken(ctx context.Context, token string) (models.FoundPetStory, error) {
	if token == "" {
		return models.FoundPetStory{}, ErrInvalidOrExpiredToken
	}
	story, err := storage.FindOne(ctx, s.stories, func(st models.FoundPetStory) bool {
		return st.FinderUniqueToken == token
	})
	if errors.Is(err, storage.ErrNotFound) {
		return models.FoundPetStory{}, ErrInvalidOrExpiredToken
	}
	if err != nil {
		return models.FoundPetStory{}, err
	}
	if !tokenRedeemable(story, token) {
		return models.FoundPetStory{}, ErrInvalidOrExpiredToken
	}
	return story, nil
}

func tokenRedeemable(st models.FoundPetStory, token string) bool {
	if st.FinderUniqueToken != token {
		return false
	}
	switch st.FinderTestimonialStatus {
	case models.FinderAwaitingModeration, models.FinderApproved:
		return false
	}
	return true
}

func (s *StoryService) FinderLookup(ctx context.Context, token string) (FinderStory, error) {
	story, err := s.findByToken(ctx, token)
	if err != nil {
		return FinderStory{}, err
	}
	pet, err := s.pets.Get(ctx, story.PetID)
	if err != nil {
		return FinderStory{}, mapNotFound(err, ErrPetNotFound)
	}
	return FinderStory{Story: story, Pet: pet}, nil
}

// RedeemFinder records the finder's testimonial and consumes the token.
func (s *StoryService) RedeemFinder(ctx context.Context, token, finderName, testimonial string) (models.FoundPetStory, error) {
	finderName = strings.TrimSpace(finderName)
	testimonial = strings.TrimSpace(testimonial)
	if finderName == "" || testimonial == "" {
		return models.FoundPetStory{}, validationError("finder name and testimonial are required")
	}

	found, err := s.findByToken(ctx, token)
	if err != nil {
		return models.FoundPetStory{}, err
	}
	// The token is checked again under the record lock; of two concurrent
	// redemptions only the first still sees it.
	story, err := s.stories.Modify(ctx, found.ID, func(st *models.FoundPetStory) error {
		if !tokenRedeemable(*st, token) {
			return ErrInvalidOrExpiredToken
		}
		st.FinderName = finderName
		st.FinderTestimonial = testimonial
		st.FinderTestimonialStatus = models.FinderAwaitingModeration
		st.FinderUniqueToken = ""
		return nil
	})
	if errors.Is(err, storage.ErrNotFound) {
		return models.FoundPetStory{}, ErrInvalidOrExpiredToken
	}
	return story, err
}
