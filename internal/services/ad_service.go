package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lovemypet/backend/internal/models"
	"github.com/lovemypet/backend/internal/storage"
)

const maxAdvertImageBytes = 2 << 20

type AdvertiserInput struct {
	CompanyName    string
	ContactPerson  string
	Email          string
	Phone          string
	BillingAddress string
	TaxID          string
	Website        string
	Notes          string
	Status         models.AdvertiserStatus
}

type AdvertInput struct {
	AdvertiserID string
	Name         string
	Description  string
	Category     string
	Geolocation  string
	ImageURL     string
	URL          string
	StartDate    time.Time
	EndDate      time.Time
	Frequency    string
	Budget       float64
	DisplayPages []string
	Format       models.AdvertFormat
}

// advertMoves lists the status changes an advert may make.
var advertMoves = map[models.AdvertStatus][]models.AdvertStatus{
	models.AdvertUnderReview: {models.AdvertActive, models.AdvertArchived},
	models.AdvertActive:      {models.AdvertPaused, models.AdvertArchived},
	models.AdvertPaused:      {models.AdvertActive, models.AdvertArchived},
}

type AdService struct {
	advertisers storage.Repository[models.Advertiser]
	adverts     storage.Repository[models.Advert]
	now         func() time.Time
}

func NewAdService(stores *storage.Stores) *AdService {
	return &AdService{advertisers: stores.Advertisers, adverts: stores.Adverts, now: time.Now}
}

func (s *AdService) ListAdvertisers(ctx context.Context) ([]models.Advertiser, error) {
	list, err := s.advertisers.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].CompanyName < list[j].CompanyName })
	return list, nil
}

func (s *AdService) GetAdvertiser(ctx context.Context, id string) (models.Advertiser, error) {
	a, err := s.advertisers.Get(ctx, id)
	if err != nil {
		return models.Advertiser{}, mapNotFound(err, ErrAdvertiserNotFound)
	}
	return a, nil
}

func (in AdvertiserInput) validate() error {
	if strings.TrimSpace(in.CompanyName) == "" {
		return validationError("company name is required")
	}
	if in.Email != "" && !strings.Contains(in.Email, "@") {
		return validationError("invalid email %q", in.Email)
	}
	if in.Status != "" && in.Status != models.AdvertiserActive && in.Status != models.AdvertiserInactive {
		return validationError("invalid advertiser status %q", in.Status)
	}
	return nil
}

func (in AdvertiserInput) applyTo(a *models.Advertiser) {
	a.CompanyName = strings.TrimSpace(in.CompanyName)
	a.ContactPerson = in.ContactPerson
	a.Email = in.Email
	a.Phone = in.Phone
	a.BillingAddress = in.BillingAddress
	a.TaxID = in.TaxID
	a.Website = in.Website
	a.Notes = in.Notes
	if in.Status != "" {
		a.Status = in.Status
	}
}

func (s *AdService) CreateAdvertiser(ctx context.Context, in AdvertiserInput) (models.Advertiser, error) {
	if err := in.validate(); err != nil {
		return models.Advertiser{}, err
	}
	a := models.Advertiser{
		ID:        uuid.NewString(),
		Status:    models.AdvertiserActive,
		CreatedAt: s.now().UTC(),
	}
	in.Status = ""
	in.applyTo(&a)
	return s.advertisers.Create(ctx, a)
}

func (s *AdService) UpdateAdvertiser(ctx context.Context, id string, in AdvertiserInput) (models.Advertiser, error) {
	if err := in.validate(); err != nil {
		return models.Advertiser{}, err
	}
	a, err := s.GetAdvertiser(ctx, id)
	if err != nil {
		return models.Advertiser{}, err
	}
	in.applyTo(&a)
	return s.advertisers.Update(ctx, a)
}

// ListAdverts returns campaigns, optionally for a single advertiser.
func (s *AdService) ListAdverts(ctx context.Context, advertiserID string) ([]models.Advert, error) {
	return storage.Filter(ctx, s.adverts, func(a models.Advert) bool {
		return advertiserID == "" || a.AdvertiserID == advertiserID
	})
}

func (s *AdService) GetAdvert(ctx context.Context, id string) (models.Advert, error) {
	a, err := s.adverts.Get(ctx, id)
	if err != nil {
		return models.Advert{}, mapNotFound(err, ErrAdvertNotFound)
	}
	return a, nil
}

func (s *AdService) validateAdvert(ctx context.Context, in AdvertInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return validationError("advert name is required")
	}
	if _, err := s.GetAdvertiser(ctx, in.AdvertiserID); err != nil {
		return err
	}
	if in.ImageURL == "" {
		return validationError("advert image is required")
	}
	if _, ok := models.AdvertFormatSizes[in.Format]; !ok {
		return validationError("invalid advert format %q", in.Format)
	}
	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		return validationError("start and end dates are required")
	}
	if in.EndDate.Before(in.StartDate) {
		return ErrInvalidDateRange
	}
	for _, p := range in.DisplayPages {
		switch models.DisplayPage(p) {
		case models.PageFeed, models.PageAlerts, models.PageFound:
		default:
			return validationError("invalid display page %q", p)
		}
	}
	return ValidateAdvertImage(in.ImageURL, in.Format)
}

// ValidateAdvertImage checks an uploaded data URL against the pixel size of
// format and the upload limit. Remote URLs are not fetched and pass as is.
func ValidateAdvertImage(imageURL string, format models.AdvertFormat) error {
	if !strings.HasPrefix(imageURL, "data:") {
		return nil
	}
	comma := strings.IndexByte(imageURL, ',')
	if comma < 0 || !strings.Contains(imageURL[:comma], ";base64") {
		return validationError("advert image must be a base64 data URL")
	}
	raw, err := base64.StdEncoding.DecodeString(imageURL[comma+1:])
	if err != nil {
		return validationError("advert image is not valid base64")
	}
	if len(raw) >= maxAdvertImageBytes {
		return validationError("advert image must be smaller than 2MB")
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return validationError("advert image could not be decoded: %v", err)
	}
	want := models.AdvertFormatSizes[format]
	if cfg.Width != want[0] || cfg.Height != want[1] {
		return validationError("image for %s format must be %dx%d, got %dx%d", format, want[0], want[1], cfg.Width, cfg.Height)
	}
	return nil
}

func (in AdvertInput) applyTo(a *models.Advert) {
	a.AdvertiserID = in.AdvertiserID
	a.Name = strings.TrimSpace(in.Name)
	a.Description = in.Description
	a.Category = in.Category
	a.Geolocation = in.Geolocation
	a.ImageURL = in.ImageURL
	a.URL = in.URL
	a.StartDate = in.StartDate.UTC()
	a.EndDate = in.EndDate.UTC()
	a.Frequency = in.Frequency
	a.Budget = in.Budget
	a.DisplayPages = append(a.DisplayPages[:0:0], in.DisplayPages...)
	a.Format = in.Format
}

// CreateAdvert books a campaign. New campaigns wait in Under Review.
func (s *AdService) CreateAdvert(ctx context.Context, in AdvertInput) (models.Advert, error) {
	if err := s.validateAdvert(ctx, in); err != nil {
		return models.Advert{}, err
	}
	a := models.Advert{ID: uuid.NewString(), Status: models.AdvertUnderReview}
	in.applyTo(&a)
	return s.adverts.Create(ctx, a)
}

func (s *AdService) UpdateAdvert(ctx context.Context, id string, in AdvertInput) (models.Advert, error) {
	a, err := s.GetAdvert(ctx, id)
	if err != nil {
		return models.Advert{}, err
	}
	if err := s.validateAdvert(ctx, in); err != nil {
		return models.Advert{}, err
	}
	in.applyTo(&a)
	return s.adverts.Update(ctx, a)
}

func (s *AdService) SetAdvertStatus(ctx context.Context, id string, status models.AdvertStatus) (models.Advert, error) {
	if !models.ValidAdvertStatus(status) {
		return models.Advert{}, validationError("invalid advert status %q", status)
	}
	a, err := s.GetAdvert(ctx, id)
	if err != nil {
		return models.Advert{}, err
	}
	allowed := false
	for _, next := range advertMoves[a.Status] {
		if next == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return models.Advert{}, validationError("advert cannot move from %s to %s", a.Status, status)
	}
	a.Status = status
	updated, err := s.adverts.Update(ctx, a)
	if err != nil {
		return models.Advert{}, fmt.Errorf("failed to update advert status: %w", err)
	}
	return updated, nil
}
