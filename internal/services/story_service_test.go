package services

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/lovemypet/backend/internal/lifecycle"
	"github.com/lovemypet/backend/internal/models"
	"github.com/lovemypet/backend/internal/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStoryService(env *testEnv) *StoryService {
	return NewStoryService(env.stores, env.settings, env.broker, "https://lovemypet.test/")
}

func TestFinderRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := newStoryService(newTestEnv(t))

	found, err := svc.FinderLookup(ctx, seed.DemoFinderToken)
	require.NoError(t, err)
	assert.Equal(t, "Gizmo", found.Pet.Name)

	story, err := svc.RedeemFinder(ctx, seed.DemoFinderToken, "Ellie", "Found Gizmo under my porch.")
	require.NoError(t, err)
	assert.Equal(t, models.FinderAwaitingModeration, story.FinderTestimonialStatus)
	assert.Empty(t, story.FinderUniqueToken)
	assert.Equal(t, "Ellie", story.FinderName)

	_, err = svc.RedeemFinder(ctx, seed.DemoFinderToken, "Ellie", "again")
	assert.ErrorIs(t, err, ErrInvalidOrExpiredToken)
	_, err = svc.FinderLookup(ctx, seed.DemoFinderToken)
	assert.ErrorIs(t, err, ErrInvalidOrExpiredToken)
}

func TestRedeemFinder_ConcurrentRedeemsSucceedOnce(t *testing.T) {
	ctx := context.Background()
	svc := newStoryService(newTestEnv(t))

	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.RedeemFinder(ctx, seed.DemoFinderToken, "Finder", "Found it"); err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, ok)
}

func TestRedeemFinder_Validation(t *testing.T) {
	svc := newStoryService(newTestEnv(t))

	_, err := svc.RedeemFinder(context.Background(), seed.DemoFinderToken, "", "text")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.RedeemFinder(context.Background(), "unknown", "Finder", "text")
	assert.ErrorIs(t, err, ErrInvalidOrExpiredToken)
}

func TestSubmitReunion_NeedsReview(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	ch := env.subscribe(t)
	svc := newStoryService(env)

	r, err := svc.SubmitReunion(ctx, jane, "pet-2", ReunionInput{OwnerTestimonial: "Home at last", OwnerRating: 5})
	require.NoError(t, err)
	assert.Equal(t, models.PetReview, r.Pet.Status)
	assert.True(t, strings.HasPrefix(r.FinderLink, "https://lovemypet.test/#/finder-testimonial/"))
	assert.NotEmpty(t, r.Story.FinderUniqueToken)
	assert.Equal(t, models.FinderNotSubmitted, r.Story.FinderTestimonialStatus)

	got := drain(ch)
	require.Len(t, got, 2)
	assert.Equal(t, "Alert Resolved", got[0].Title)
	assert.Empty(t, got[0].RecipientID)
	assert.Equal(t, "Story Submitted for Review", got[1].Title)
	assert.Equal(t, "user-2", got[1].RecipientID)

	// The new story stays out of the public list until approved.
	views, err := svc.ListPublic(ctx)
	require.NoError(t, err)
	for _, v := range views {
		assert.NotEqual(t, "pet-2", v.Pet.ID)
	}
}

func TestSubmitReunion_PublishesWithoutApproval(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	s := DefaultSettings()
	s.ContentModeration.RequireStoryApproval = false
	_, err := env.settings.Update(ctx, s)
	require.NoError(t, err)
	ch := env.subscribe(t)

	r, err := newStoryService(env).SubmitReunion(ctx, jane, "pet-2", ReunionInput{OwnerTestimonial: "Home", OwnerRating: 4})
	require.NoError(t, err)
	assert.Equal(t, models.PetReunited, r.Pet.Status)
	assert.ElementsMatch(t, []string{"Pet Reunited!", "Reunion Story Published!"}, titles(drain(ch)))
}

func TestSubmitReunion_Rejections(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := newStoryService(env)
	in := ReunionInput{OwnerTestimonial: "Home", OwnerRating: 5}

	_, err := svc.SubmitReunion(ctx, sam, "pet-2", in)
	assert.ErrorIs(t, err, ErrForbidden)

	// pet-1 is Safe
	_, err = svc.SubmitReunion(ctx, admin, "pet-1", in)
	assert.ErrorIs(t, err, lifecycle.ErrInvalidTransition)

	_, err = svc.SubmitReunion(ctx, jane, "pet-2", ReunionInput{OwnerTestimonial: "Home", OwnerRating: 6})
	assert.ErrorIs(t, err, ErrValidation)

	stories, err := env.stores.Stories.List(ctx)
	require.NoError(t, err)
	assert.Len(t, stories, 2)
}

func TestSubmitReunion_ByAdmin(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	ch := env.subscribe(t)

	_, err := newStoryService(env).SubmitReunion(ctx, admin, "pet-2", ReunionInput{OwnerTestimonial: "Home", OwnerRating: 5})
	require.NoError(t, err)

	got := drain(ch)
	require.Len(t, got, 2)
	assert.Equal(t, "Reunion Story Started!", got[1].Title)
	assert.Equal(t, "user-2", got[1].RecipientID)
}

func TestAddComment_Censors(t *testing.T) {
	ctx := context.Background()
	svc := newStoryService(newTestEnv(t))

	c, err := svc.AddComment(ctx, jane, "story-1", "what a badword story")
	require.NoError(t, err)
	assert.Equal(t, "what a ******* story", c.Text)

	comments, err := svc.Comments(ctx, "story-1")
	require.NoError(t, err)
	require.Len(t, comments, 3)
	assert.Equal(t, c.ID, comments[2].ID)

	_, err = svc.AddComment(ctx, jane, "story-1", "  ")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.AddComment(ctx, jane, "missing", "hi")
	assert.ErrorIs(t, err, ErrStoryNotFound)
}

func TestListPublic_OnlyReunited(t *testing.T) {
	svc := newStoryService(newTestEnv(t))

	views, err := svc.ListPublic(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "story-1", views[0].Story.ID)
	assert.Equal(t, 2, views[0].CommentCount)
}

func TestLike(t *testing.T) {
	svc := newStoryService(newTestEnv(t))
	before, err := svc.Get(context.Background(), "story-1")
	require.NoError(t, err)

	after, err := svc.Like(context.Background(), "story-1")
	require.NoError(t, err)
	assert.Equal(t, before.Likes+1, after.Likes)
}

