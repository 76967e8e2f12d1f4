package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/png"
	"testing"
	"time"

	"github.com/lovemypet/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngDataURL(t *testing.T, w, h int) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestValidateAdvertImage(t *testing.T) {
	assert.NoError(t, ValidateAdvertImage(pngDataURL(t, 400, 200), models.FormatHalf))
	assert.NoError(t, ValidateAdvertImage("https://cdn.example.com/ad.png", models.FormatHalf))

	err := ValidateAdvertImage(pngDataURL(t, 400, 450), models.FormatHalf)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "400x200")

	assert.ErrorIs(t, ValidateAdvertImage("data:image/png;base64,!!!", models.FormatHalf), ErrValidation)
	assert.ErrorIs(t, ValidateAdvertImage("data:image/png,plain", models.FormatHalf), ErrValidation)
}

func TestCreateAdvert(t *testing.T) {
	ctx := context.Background()
	svc := NewAdService(newTestEnv(t).stores)
	start := time.Now().UTC()

	in := AdvertInput{
		AdvertiserID: "adv-1",
		Name:         "Summer Treats",
		ImageURL:     pngDataURL(t, 800, 200),
		Format:       models.FormatBanner,
		StartDate:    start,
		EndDate:      start.AddDate(0, 1, 0),
		DisplayPages: []string{string(models.PageFeed)},
	}
	ad, err := svc.CreateAdvert(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, models.AdvertUnderReview, ad.Status)

	bad := in
	bad.EndDate = start.AddDate(0, 0, -1)
	_, err = svc.CreateAdvert(ctx, bad)
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	bad = in
	bad.AdvertiserID = "adv-missing"
	_, err = svc.CreateAdvert(ctx, bad)
	assert.ErrorIs(t, err, ErrAdvertiserNotFound)

	bad = in
	bad.DisplayPages = []string{"Sidebar"}
	_, err = svc.CreateAdvert(ctx, bad)
	assert.ErrorIs(t, err, ErrValidation)

	list, err := svc.ListAdverts(ctx, "adv-1")
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestSetAdvertStatus(t *testing.T) {
	ctx := context.Background()
	svc := NewAdService(newTestEnv(t).stores)

	ad, err := svc.SetAdvertStatus(ctx, "ad-1", models.AdvertPaused)
	require.NoError(t, err)
	assert.Equal(t, models.AdvertPaused, ad.Status)

	_, err = svc.SetAdvertStatus(ctx, "ad-1", models.AdvertUnderReview)
	assert.ErrorIs(t, err, ErrValidation)

	ad, err = svc.SetAdvertStatus(ctx, "ad-1", models.AdvertArchived)
	require.NoError(t, err)
	assert.Equal(t, models.AdvertArchived, ad.Status)

	_, err = svc.SetAdvertStatus(ctx, "ad-1", models.AdvertActive)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAdvertisers(t *testing.T) {
	ctx := context.Background()
	svc := NewAdService(newTestEnv(t).stores)

	a, err := svc.CreateAdvertiser(ctx, AdvertiserInput{CompanyName: "Kibble Co", Email: "hi@kibble.co", Status: models.AdvertiserInactive})
	require.NoError(t, err)
	assert.Equal(t, models.AdvertiserActive, a.Status)

	a, err = svc.UpdateAdvertiser(ctx, a.ID, AdvertiserInput{CompanyName: "Kibble Co", Status: models.AdvertiserInactive})
	require.NoError(t, err)
	assert.Equal(t, models.AdvertiserInactive, a.Status)

	_, err = svc.CreateAdvertiser(ctx, AdvertiserInput{CompanyName: " "})
	assert.ErrorIs(t, err, ErrValidation)
}
