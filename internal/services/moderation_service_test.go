package services

import (
	"context"
	"testing"
	"time"

	"github.com/lovemypet/backend/internal/feed"
	"github.com/lovemypet/backend/internal/lifecycle"
	"github.com/lovemypet/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func itemKeys(p Page) []string {
	var keys []string
	for _, it := range p.Pinned {
		keys = append(keys, it.Key)
	}
	for _, s := range p.Slots {
		if s.Item != nil {
			keys = append(keys, s.Item.Key)
		}
	}
	return keys
}

func TestApprovalScenario(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	stories := newStoryService(env)
	moderation := NewModerationService(env.stores, env.settings, env.broker)
	feeds := NewFeedService(env.stores)

	r, err := stories.SubmitReunion(ctx, jane, "pet-2", ReunionInput{OwnerTestimonial: "Whiskers is home", OwnerRating: 5})
	require.NoError(t, err)
	require.Equal(t, models.PetReview, r.Pet.Status)

	found, err := feeds.Found(ctx)
	require.NoError(t, err)
	assert.NotContains(t, itemKeys(found), feed.StoryKey(r.Story.ID))

	queue, err := moderation.Queue(ctx)
	require.NoError(t, err)
	var queued []string
	for _, e := range queue {
		queued = append(queued, e.Story.ID)
	}
	assert.Contains(t, queued, r.Story.ID)

	ch := env.subscribe(t)
	_, err = moderation.Approve(ctx, r.Story.ID)
	require.NoError(t, err)

	pet, err := env.stores.Pets.Get(ctx, "pet-2")
	require.NoError(t, err)
	assert.Equal(t, models.PetReunited, pet.Status)

	found, err = feeds.Found(ctx)
	require.NoError(t, err)
	assert.Contains(t, itemKeys(found), feed.StoryKey(r.Story.ID))

	got := drain(ch)
	require.Len(t, got, 1)
	assert.Equal(t, "Story Approved", got[0].Title)
	assert.Equal(t, "user-2", got[0].RecipientID)
}

func TestApprove_AlsoApprovesWaitingFinderTestimonial(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	stories := newStoryService(env)

	_, err := stories.RedeemFinder(ctx, "token_gizmo_12345", "Ellie", "Found under the porch")
	require.NoError(t, err)

	story, err := NewModerationService(env.stores, env.settings, env.broker).Approve(ctx, "story-2")
	require.NoError(t, err)
	assert.Equal(t, models.FinderApproved, story.FinderTestimonialStatus)
}

func TestReject(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	ch := env.subscribe(t)
	moderation := NewModerationService(env.stores, env.settings, env.broker)

	pet, err := moderation.Reject(ctx, admin, "story-2")
	require.NoError(t, err)
	assert.Equal(t, models.PetSafe, pet.Status)

	_, err = env.stores.Stories.Get(ctx, "story-2")
	assert.Error(t, err)

	got := drain(ch)
	require.Len(t, got, 1)
	assert.Equal(t, "Story Rejected", got[0].Title)
	assert.Equal(t, admin.ID, got[0].RecipientID)

	// Nothing is left to reject.
	_, err = moderation.Reject(ctx, admin, "story-2")
	assert.ErrorIs(t, err, ErrStoryNotFound)
}

func TestApprove_RequiresReview(t *testing.T) {
	env := newTestEnv(t)
	moderation := NewModerationService(env.stores, env.settings, env.broker)

	// story-1 belongs to an already reunited pet
	_, err := moderation.Approve(context.Background(), "story-1")
	assert.ErrorIs(t, err, lifecycle.ErrInvalidTransition)
}

func TestApproveFinder(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	moderation := NewModerationService(env.stores, env.settings, env.broker)

	_, err := moderation.ApproveFinder(ctx, "story-2")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = newStoryService(env).RedeemFinder(ctx, "token_gizmo_12345", "Ellie", "Found him")
	require.NoError(t, err)

	waiting, err := moderation.FinderQueue(ctx)
	require.NoError(t, err)
	require.Len(t, waiting, 1)

	story, err := moderation.ApproveFinder(ctx, "story-2")
	require.NoError(t, err)
	assert.Equal(t, models.FinderApproved, story.FinderTestimonialStatus)
}

func TestQueue_UsesLatestSubmissionAfterSecondLoss(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	pets := newPetService(env)
	moderation := NewModerationService(env.stores, env.settings, env.broker)

	// Rocky (pet-3) already has the published story-1.
	_, err := pets.Archive(ctx, "pet-3")
	require.NoError(t, err)
	_, err = pets.Restore(ctx, "pet-3")
	require.NoError(t, err)
	_, err = pets.ReportMissing(ctx, admin, "pet-3", MissingReport{Location: "Mission St", Time: time.Now()})
	require.NoError(t, err)
	r, err := newStoryService(env).SubmitReunion(ctx, admin, "pet-3", ReunionInput{OwnerTestimonial: "Home again", OwnerRating: 5})
	require.NoError(t, err)

	// An older submission listed after the new one must not shadow it.
	_, err = env.stores.Stories.Create(ctx, models.FoundPetStory{
		ID: "story-0", PetID: "pet-3", SubmittedAt: time.Now().Add(-30 * 24 * time.Hour),
	})
	require.NoError(t, err)

	queue, err := moderation.Queue(ctx)
	require.NoError(t, err)
	var rocky *QueueEntry
	for i := range queue {
		if queue[i].Pet.ID == "pet-3" {
			rocky = &queue[i]
		}
	}
	require.NotNil(t, rocky)
	assert.Equal(t, r.Story.ID, rocky.Story.ID)

	_, err = moderation.Approve(ctx, "story-1")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = moderation.Reject(ctx, admin, "story-0")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = moderation.Approve(ctx, r.Story.ID)
	require.NoError(t, err)
}
