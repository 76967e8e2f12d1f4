// Package seed loads the demo community: members, pets, a published and a
// pending reunion story, a chat thread, posts, one campaign and the two
// policies.
package seed

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lovemypet/backend/internal/models"
	"github.com/lovemypet/backend/internal/storage"
)

//go:embed policies/*.md
var policyFS embed.FS

// DemoFinderToken is the capability token carried by the pending demo story.
const DemoFinderToken = "token_gizmo_12345"

const day = 24 * time.Hour

// Load fills empty stores with the demo data. It does nothing when members
// already exist, so restarts against a persistent store are safe.
func Load(ctx context.Context, stores *storage.Stores, now time.Time) error {
	existing, err := stores.Users.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to check existing users: %w", err)
	}
	if len(existing) > 0 {
		slog.Debug("seed skipped, store not empty", "users", len(existing))
		return nil
	}

	now = now.UTC()
	if err := insertAll(ctx, stores.Users, users()); err != nil {
		return err
	}
	if err := insertAll(ctx, stores.Pets, pets(now)); err != nil {
		return err
	}
	if err := insertAll(ctx, stores.Stories, stories(now)); err != nil {
		return err
	}
	if err := insertAll(ctx, stores.Comments, comments(now)); err != nil {
		return err
	}
	if err := insertAll(ctx, stores.Posts, posts(now)); err != nil {
		return err
	}
	if err := insertAll(ctx, stores.Advertisers, advertisers(now)); err != nil {
		return err
	}
	if err := insertAll(ctx, stores.Adverts, adverts(now)); err != nil {
		return err
	}
	if err := insertAll(ctx, stores.ChatThreads, chatThreads(now)); err != nil {
		return err
	}
	if err := insertAll(ctx, stores.ChatMessages, chatMessages(now)); err != nil {
		return err
	}
	policies, err := policies(now)
	if err != nil {
		return err
	}
	if err := insertAll(ctx, stores.Policies, policies); err != nil {
		return err
	}

	slog.Info("demo data seeded", "users", 4, "pets", 4, "stories", 2, "posts", 4, "chats", 1)
	return nil
}

func insertAll[T storage.Entity](ctx context.Context, repo storage.Repository[T], items []T) error {
	for _, item := range items {
		if _, err := repo.Create(ctx, item); err != nil && !errors.Is(err, storage.ErrConflict) {
			return fmt.Errorf("failed to seed %s: %w", item.EntityID(), err)
		}
	}
	return nil
}

func ptr[T any](v T) *T { return &v }

func date(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func users() []models.User {
	return []models.User{
		{
			ID: "user-1", Name: "Alex Doe", DisplayName: "Alex D.", City: "San Francisco, CA",
			ProfilePhotoURL:      "https://images.unsplash.com/photo-1535713875002-d1d0cf377fde?auto=format&fit=crop&w=880&q=80",
			MemberVettedPhotoURL: "https://images.unsplash.com/photo-1535713875002-d1d0cf377fde?auto=format&fit=crop&w=880&q=80",
			Email:                "alex.doe@example.com", MobileNumber: "555-0101", ContactPreference: models.ContactEmail,
			Role: models.RoleAdmin, Status: models.UserActive, VettingStatus: models.VettingVerified,
			JoinDate: date("2023-01-15T10:00:00Z"),
		},
		{
			ID: "user-2", Name: "Jane Smith", DisplayName: "Jane S.", City: "New York, NY",
			ProfilePhotoURL: "https://images.unsplash.com/photo-1494790108377-be9c29b2912a?auto=format&fit=crop&w=687&q=80",
			Email:           "jane.smith@example.com", MobileNumber: "555-0102", ContactPreference: models.ContactMobile,
			Role: models.RoleUser, Status: models.UserActive, VettingStatus: models.VettingVerified,
			JoinDate: date("2023-02-20T11:30:00Z"),
		},
		{
			ID: "user-3", Name: "Sam Wilson", DisplayName: "Sam W.", City: "Chicago, IL",
			ProfilePhotoURL: "https://images.unsplash.com/photo-1527980965255-d3b416303d12?auto=format&fit=crop&w=880&q=80",
			Email:           "sam.wilson@example.com", MobileNumber: "555-0103", ContactPreference: models.ContactBoth,
			Role: models.RoleUser, Status: models.UserActive, VettingStatus: models.VettingPending,
			JoinDate: date("2023-03-10T09:00:00Z"),
		},
		{
			ID: "user-4", Name: "Maria Garcia", DisplayName: "Maria G.", City: "Miami, FL",
			ProfilePhotoURL: "https://images.unsplash.com/photo-1580489944761-15a19d654956?auto=format&fit=crop&w=761&q=80",
			Email:           "maria.garcia@example.com", MobileNumber: "555-0104", ContactPreference: models.ContactNone,
			Role: models.RoleUser, Status: models.UserBlocked, VettingStatus: models.VettingNotVerified,
			JoinDate: date("2023-04-05T14:00:00Z"),
		},
	}
}

func pets(now time.Time) []models.Pet {
	created := now.Add(-30 * day)
	return []models.Pet{
		{
			ID: "pet-1", OwnerID: "user-1", Name: "Buddy", Species: "Dog", Breed: "Golden Retriever", Color: "Golden", Age: 5,
			PhotoURLs:   []string{"https://images.unsplash.com/photo-1568572933382-74d440642117?auto=format&fit=crop&w=1035&q=80"},
			Description: "A very good boy who loves to play fetch and swim.",
			Keywords:    []string{"friendly", "energetic", "golden retriever", "large"},
			Status:      models.PetSafe, RoamingArea: "Golden Gate Park",
			CreatedAt: created, UpdatedAt: created,
		},
		{
			ID: "pet-2", OwnerID: "user-2", Name: "Whiskers", Species: "Cat", Breed: "Siamese", Color: "Cream with dark points", Age: 3,
			PhotoURLs:        []string{"https://images.unsplash.com/photo-1596854407944-bf87f6fdd49e?auto=format&fit=crop&w=880&q=80"},
			Description:      "A curious and vocal cat. Loves sunbathing and high places.",
			Keywords:         []string{"siamese", "vocal", "curious", "cat"},
			Status:           models.PetLost,
			LastSeenLocation: "Near Times Square",
			LastSeenTime:     ptr(now.Add(-day)),
			MissingReportMessage: "Whiskers slipped out the door last night. He is very friendly but might be scared. " +
				"Please call if you see him!",
			CreatedAt: created, UpdatedAt: created,
		},
		{
			ID: "pet-3", OwnerID: "user-1", Name: "Rocky", Species: "Dog", Breed: "French Bulldog", Color: "Fawn", Age: 2,
			PhotoURLs:   []string{"https://images.unsplash.com/photo-1598875706250-21fa76815753?auto=format&fit=crop&w=687&q=80"},
			Description: "A playful and sometimes stubborn bulldog. Loves everyone he meets.",
			Keywords:    []string{"french bulldog", "playful", "small dog", "fawn"},
			Status:      models.PetReunited,
			CreatedAt:   created, UpdatedAt: created,
		},
		{
			ID: "pet-4", OwnerID: "user-2", Name: "Gizmo", Species: "Cat", Breed: "Domestic Shorthair", Color: "Tuxedo", Age: 4,
			PhotoURLs:        []string{"https://images.unsplash.com/photo-1573865526739-10659fec78a5?auto=format&fit=crop&w=715&q=80"},
			Description:      "A shy but sweet tuxedo cat. Loves naps in sunny spots.",
			Keywords:         []string{"tuxedo", "cat", "shy", "black and white"},
			Status:           models.PetReview,
			LastSeenLocation: "Brooklyn Bridge Park",
			LastSeenTime:     ptr(now.Add(-3 * day)),
			CreatedAt:        created, UpdatedAt: created,
		},
	}
}

func stories(now time.Time) []models.FoundPetStory {
	return []models.FoundPetStory{
		{
			ID: "story-1", PetID: "pet-3", ReunionDate: now.Add(-5 * day),
			OwnerTestimonial: "I was devastated when Rocky went missing. This app connected me with the person who found him " +
				"in just a few hours. I am so incredibly grateful for this community!",
			OwnerRating: 5,
			FinderName:  "A Kind Stranger",
			FinderTestimonial: "I saw Rocky wandering near the park and recognized him from an alert on the app. " +
				"It felt amazing to help him get back home safely.",
			FinderTestimonialStatus: models.FinderApproved,
			Likes:                   128,
			SubmittedAt:             now.Add(-5 * day),
		},
		{
			ID: "story-2", PetID: "pet-4", ReunionDate: now,
			OwnerTestimonial:        "I'm overjoyed to have Gizmo back! He was found just a few blocks from home. This app is a lifesaver.",
			OwnerRating:             5,
			FinderTestimonialStatus: models.FinderNotSubmitted,
			FinderUniqueToken:       DemoFinderToken,
			SubmittedAt:             now,
		},
	}
}

func chatThreads(now time.Time) []models.ChatThread {
	return []models.ChatThread{
		{ID: "chat-1", ParticipantIDs: []string{"user-1", "user-2"}, CreatedAt: now.Add(-time.Hour)},
	}
}

func chatMessages(now time.Time) []models.ChatMessage {
	return []models.ChatMessage{
		{ID: "msg-1", ChatID: "chat-1", SenderID: "user-2", Text: "Hi Alex, I think I might have seen Whiskers near my apartment building.", Timestamp: now.Add(-time.Hour)},
		{ID: "msg-2", ChatID: "chat-1", SenderID: "user-1", Text: "Oh my gosh, really? Where is that?", Timestamp: now.Add(-59 * time.Minute)},
	}
}

func comments(now time.Time) []models.Comment {
	return []models.Comment{
		{ID: "comment-1", StoryID: "story-1", AuthorID: "user-1", Text: "This is such a wonderful story! So glad Rocky is home!", Timestamp: now.Add(-4 * day)},
		{ID: "comment-2", StoryID: "story-1", AuthorID: "user-2", Text: "Yay Rocky! ❤️", Timestamp: now.Add(-3 * day)},
	}
}

func posts(now time.Time) []models.Post {
	return []models.Post{
		{
			ID: "post-admin-1", AuthorID: "user-1",
			Text:     "Welcome to the new and improved LoveMyPet community feed! We're excited to share updates and news with you here.",
			ImageURL: "https://images.unsplash.com/photo-1599481238640-4c1288750d7a?auto=format&fit=crop&w=764&q=80",
			Timestamp: now, Likes: 150, IsAdminPost: true,
			Category: models.CategoryAnnouncement, Status: models.PostActive,
			StartDate: ptr(now.Add(-7 * day)), EndDate: ptr(now.Add(30 * day)),
		},
		{
			ID: "post-admin-2", AuthorID: "user-1",
			Text:      "There will be a scheduled maintenance on Sunday from 2 AM to 4 AM. The app might be temporarily unavailable.",
			Timestamp: now.Add(-day), Likes: 35, IsAdminPost: true,
			Category: models.CategoryImportant, Status: models.PostActive,
			StartDate: ptr(now.Add(-2 * day)), EndDate: ptr(now.Add(3 * day)),
		},
		{
			ID: "post-1", AuthorID: "user-2",
			Text:      "Just adopted this little guy! Everyone, meet Leo. He's a bit shy but so sweet. Any tips for a first-time cat owner?",
			ImageURL:  "https://images.unsplash.com/photo-1574158622682-e40e69841006?auto=format&fit=crop&w=1180&q=80",
			Timestamp: now.Add(-2 * day), Likes: 42,
		},
		{
			ID: "post-2", AuthorID: "user-1",
			Text:      "Buddy had the best day at the beach today!",
			ImageURL:  "https://images.unsplash.com/photo-1558788353-f76d92427f16?auto=format&fit=crop&w=1035&q=80",
			Timestamp: now.Add(-day), Likes: 77,
		},
	}
}

func advertisers(now time.Time) []models.Advertiser {
	return []models.Advertiser{{
		ID: "adv-1", CompanyName: "Premium Pet Foods", ContactPerson: "John Chewy",
		Email: "john@premiumpet.com", Phone: "555-0201", BillingAddress: "123 Kibble Way, Foodville, USA",
		Status: models.AdvertiserActive, CreatedAt: now,
	}}
}

// The demo campaign carries a 1x1 placeholder image and is inserted
// directly, bypassing the format size check.
func adverts(now time.Time) []models.Advert {
	return []models.Advert{{
		ID: "ad-1", AdvertiserID: "adv-1", Name: "Spring Sale 2024", Category: "Pet Food",
		ImageURL:  "data:image/gif;base64,R0lGODlhAQABAIAAAAAAAP///yH5BAEAAAAALAAAAAABAAEAAAIBRAA7",
		URL:       "https://example.com",
		StartDate: now, EndDate: now.Add(30 * day),
		Frequency: "10/day", Budget: 5000,
		DisplayPages: []string{string(models.PageFeed), string(models.PageFound)},
		Format:       models.FormatFull, Status: models.AdvertActive,
	}}
}

func policies(now time.Time) ([]models.Policy, error) {
	privacy, err := policyFS.ReadFile("policies/privacy-policy.md")
	if err != nil {
		return nil, err
	}
	guidelines, err := policyFS.ReadFile("policies/community-guidelines.md")
	if err != nil {
		return nil, err
	}
	return []models.Policy{
		{ID: models.PolicyPrivacy, Title: "Privacy Policy", Content: string(privacy), Status: models.PolicyActive, LastUpdated: now.Add(-10 * day)},
		{ID: models.PolicyCommunity, Title: "Community Guidelines", Content: string(guidelines), Status: models.PolicyActive, LastUpdated: now.Add(-15 * day)},
	}, nil
}
