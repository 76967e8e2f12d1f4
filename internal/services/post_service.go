package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lovemypet/backend/internal/feed"
	"github.com/lovemypet/backend/internal/models"
	"github.com/lovemypet/backend/internal/storage"
)

// AdminPostInput carries the fields of an admin announcement. A missing
// window defaults to today through thirty days from now.
type AdminPostInput struct {
	Text      string
	ImageURL  string
	Category  models.PostCategory
	Status    models.PostStatus
	StartDate *time.Time
	EndDate   *time.Time
}

// AdminPostView flags posts that are pinned right now.
type AdminPostView struct {
	models.Post
	Pinned bool `json:"pinned"`
}

type PostService struct {
	posts    storage.Repository[models.Post]
	pins     storage.Repository[models.PinnedItem]
	settings *SettingsService
	now      func() time.Time
}

func NewPostService(stores *storage.Stores, settings *SettingsService) *PostService {
	return &PostService{posts: stores.Posts, pins: stores.Pins, settings: settings, now: time.Now}
}

func (s *PostService) Get(ctx context.Context, id string) (models.Post, error) {
	p, err := s.posts.Get(ctx, id)
	if err != nil {
		return models.Post{}, mapNotFound(err, ErrPostNotFound)
	}
	return p, nil
}

// Create publishes a member post. Profanity is censored before saving.
func (s *PostService) Create(ctx context.Context, authorID, text, imageURL string) (models.Post, error) {
	text = strings.TrimSpace(text)
	if text == "" && imageURL == "" {
		return models.Post{}, validationError("post text or image is required")
	}
	words := s.settings.Current(ctx).ContentModeration.ProfanityList
	return s.posts.Create(ctx, models.Post{
		ID:        uuid.NewString(),
		AuthorID:  authorID,
		Text:      CensorText(text, words),
		ImageURL:  imageURL,
		Timestamp: s.now().UTC(),
	})
}

func (s *PostService) normalize(in *AdminPostInput) error {
	if strings.TrimSpace(in.Text) == "" {
		return validationError("post text is required")
	}
	if in.Category == "" {
		in.Category = models.CategoryAnnouncement
	}
	if !models.ValidPostCategory(in.Category) {
		return validationError("invalid category %q", in.Category)
	}
	if in.Status == "" {
		in.Status = models.PostActive
	}
	if in.Status != models.PostActive && in.Status != models.PostArchived {
		return validationError("invalid status %q", in.Status)
	}
	if in.StartDate == nil {
		y, m, d := s.now().UTC().Date()
		start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		in.StartDate = &start
	}
	if in.EndDate == nil {
		end := in.StartDate.AddDate(0, 0, 30)
		in.EndDate = &end
	}
	if in.EndDate.Before(*in.StartDate) {
		return ErrInvalidDateRange
	}
	return nil
}

func (s *PostService) CreateAdmin(ctx context.Context, authorID string, in AdminPostInput) (models.Post, error) {
	if err := s.normalize(&in); err != nil {
		return models.Post{}, err
	}
	return s.posts.Create(ctx, models.Post{
		ID:          uuid.NewString(),
		AuthorID:    authorID,
		Text:        strings.TrimSpace(in.Text),
		ImageURL:    in.ImageURL,
		Timestamp:   s.now().UTC(),
		IsAdminPost: true,
		Category:    in.Category,
		Status:      in.Status,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
	})
}

func (s *PostService) UpdateAdmin(ctx context.Context, id string, in AdminPostInput) (models.Post, error) {
	post, err := s.Get(ctx, id)
	if err != nil {
		return models.Post{}, err
	}
	if !post.IsAdminPost {
		return models.Post{}, ErrForbidden
	}
	if err := s.normalize(&in); err != nil {
		return models.Post{}, err
	}
	post.Text = strings.TrimSpace(in.Text)
	post.ImageURL = in.ImageURL
	post.Category = in.Category
	post.Status = in.Status
	post.StartDate = in.StartDate
	post.EndDate = in.EndDate
	return s.posts.Update(ctx, post)
}

// ListAdmin returns admin posts newest first with their current pin state.
func (s *PostService) ListAdmin(ctx context.Context) ([]AdminPostView, error) {
	posts, err := storage.Filter(ctx, s.posts, func(p models.Post) bool { return p.IsAdminPost })
	if err != nil {
		return nil, err
	}
	pins, err := s.pins.List(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	pinned := make(map[string]bool, len(pins))
	for _, pin := range pins {
		if pin.ItemType == models.PinPost && feed.PinActive(pin, now) {
			pinned[pin.ItemID] = true
		}
	}

	sort.SliceStable(posts, func(i, j int) bool { return posts[i].Timestamp.After(posts[j].Timestamp) })
	views := make([]AdminPostView, len(posts))
	for i, p := range posts {
		views[i] = AdminPostView{Post: p, Pinned: pinned[feed.PostKey(p.ID)]}
	}
	return views, nil
}

func (s *PostService) Like(ctx context.Context, id string) (models.Post, error) {
	post, err := s.posts.Modify(ctx, id, func(p *models.Post) error {
		p.Likes++
		return nil
	})
	if err != nil {
		return models.Post{}, mapNotFound(err, ErrPostNotFound)
	}
	return post, nil
}
