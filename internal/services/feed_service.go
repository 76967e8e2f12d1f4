package services

import (
	"context"
	"time"

	"github.com/lovemypet/backend/internal/feed"
	"github.com/lovemypet/backend/internal/metrics"
	"github.com/lovemypet/backend/internal/models"
	"github.com/lovemypet/backend/internal/storage"
)

// Page is one rendered feed: featured items first, then regular items with
// ad slots interleaved.
type Page struct {
	Pinned []feed.Item `json:"pinned"`
	Slots  []feed.Slot `json:"slots"`
}

type FeedService struct {
	stores *storage.Stores
	now    func() time.Time
}

func NewFeedService(stores *storage.Stores) *FeedService {
	return &FeedService{stores: stores, now: time.Now}
}

func (s *FeedService) input(ctx context.Context) (feed.Input, error) {
	pets, err := s.stores.Pets.List(ctx)
	if err != nil {
		return feed.Input{}, err
	}
	stories, err := s.stores.Stories.List(ctx)
	if err != nil {
		return feed.Input{}, err
	}
	posts, err := s.stores.Posts.List(ctx)
	if err != nil {
		return feed.Input{}, err
	}
	return feed.Input{Pets: pets, Stories: stories, Posts: posts}, nil
}

func (s *FeedService) Home(ctx context.Context) (Page, error) {
	in, err := s.input(ctx)
	if err != nil {
		return Page{}, err
	}
	now := s.now()
	items := feed.Compose(in, now)
	if err := s.attachCommentCounts(ctx, items); err != nil {
		return Page{}, err
	}
	pins, err := s.stores.Pins.List(ctx)
	if err != nil {
		return Page{}, err
	}
	pinned, regular := feed.Partition(items, pins, now)
	return s.page(ctx, models.PageFeed, pinned, regular, feed.HomeAdEvery, now)
}

func (s *FeedService) Alerts(ctx context.Context) (Page, error) {
	pets, err := s.stores.Pets.List(ctx)
	if err != nil {
		return Page{}, err
	}
	items := feed.Alerts(pets)
	feed.SortNewestFirst(items)
	return s.page(ctx, models.PageAlerts, nil, items, feed.ListAdEvery, s.now())
}

func (s *FeedService) Found(ctx context.Context) (Page, error) {
	in, err := s.input(ctx)
	if err != nil {
		return Page{}, err
	}
	items := feed.Stories(in.Stories, in.Pets)
	feed.SortNewestFirst(items)
	if err := s.attachCommentCounts(ctx, items); err != nil {
		return Page{}, err
	}
	return s.page(ctx, models.PageFound, nil, items, feed.ListAdEvery, s.now())
}

func (s *FeedService) page(ctx context.Context, page models.DisplayPage, pinned, regular []feed.Item, every int, now time.Time) (Page, error) {
	adverts, err := s.activeAdverts(ctx, page, now)
	if err != nil {
		return Page{}, err
	}
	if pinned == nil {
		pinned = []feed.Item{}
	}
	metrics.RecordFeed(string(page), len(pinned)+len(regular))
	return Page{Pinned: pinned, Slots: feed.Interleave(regular, every, adverts)}, nil
}

// activeAdverts returns running campaigns booked for page.
func (s *FeedService) activeAdverts(ctx context.Context, page models.DisplayPage, now time.Time) ([]models.Advert, error) {
	return storage.Filter(ctx, s.stores.Adverts, func(a models.Advert) bool {
		if a.Status != models.AdvertActive || !a.ShowsOn(page) {
			return false
		}
		return feed.InWindow(&a.StartDate, &a.EndDate, now)
	})
}

func (s *FeedService) attachCommentCounts(ctx context.Context, items []feed.Item) error {
	comments, err := s.stores.Comments.List(ctx)
	if err != nil {
		return err
	}
	counts := make(map[string]int)
	for _, c := range comments {
		counts[c.StoryID]++
	}
	for i := range items {
		if items[i].Story != nil {
			items[i].CommentCount = counts[items[i].Story.ID]
		}
	}
	return nil
}
