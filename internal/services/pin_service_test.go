package services

import (
	"context"
	"testing"
	"time"

	"github.com/lovemypet/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPinService_RepinReplacesWindow(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := NewPinService(env.stores)

	day := func(d int) time.Time { return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC) }

	_, err := svc.Pin(ctx, models.PinAlert, "alert-pet-2", day(1), day(5))
	require.NoError(t, err)
	_, err = svc.Pin(ctx, models.PinAlert, "alert-pet-2", day(10), day(20))
	require.NoError(t, err)

	pins, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, pins, 1)
	assert.Equal(t, day(10), pins[0].StartDate)
	assert.Equal(t, day(20), pins[0].EndDate)
}

func TestPinService_SameItemDifferentTypes(t *testing.T) {
	ctx := context.Background()
	svc := NewPinService(newTestEnv(t).stores)
	now := time.Now()

	_, err := svc.Pin(ctx, models.PinPost, "x", now, now)
	require.NoError(t, err)
	_, err = svc.Pin(ctx, models.PinStory, "x", now, now)
	require.NoError(t, err)

	pins, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, pins, 2)
}

func TestPinService_Validation(t *testing.T) {
	ctx := context.Background()
	svc := NewPinService(newTestEnv(t).stores)
	now := time.Now()

	_, err := svc.Pin(ctx, models.PinPost, "post-1", now, now.Add(-time.Hour))
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = svc.Pin(ctx, models.PinType("banner"), "post-1", now, now)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Pin(ctx, models.PinPost, " ", now, now)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestPinService_Unpin(t *testing.T) {
	ctx := context.Background()
	svc := NewPinService(newTestEnv(t).stores)
	now := time.Now()

	_, err := svc.Pin(ctx, models.PinPost, "post-1", now, now)
	require.NoError(t, err)
	require.NoError(t, svc.Unpin(ctx, models.PinPost, "post-1"))
	assert.ErrorIs(t, svc.Unpin(ctx, models.PinPost, "post-1"), ErrPinNotFound)
}
