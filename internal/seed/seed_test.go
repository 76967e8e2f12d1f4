package seed

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/lovemypet/backend/internal/models"
	"github.com/lovemypet/backend/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStores(t *testing.T) *storage.Stores {
	t.Helper()
	stores, err := storage.NewMemoryStores(filepath.Join(t.TempDir(), "settings.json"))
	require.NoError(t, err)
	return stores
}

func TestLoad_SeedsDemoCommunity(t *testing.T) {
	ctx := context.Background()
	stores := newStores(t)

	require.NoError(t, Load(ctx, stores, time.Now()))

	users, err := stores.Users.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 4)

	whiskers, err := stores.Pets.Get(ctx, "pet-2")
	require.NoError(t, err)
	assert.Equal(t, models.PetLost, whiskers.Status)
	require.NotNil(t, whiskers.LastSeenTime)

	pending, err := stores.Stories.Get(ctx, "story-2")
	require.NoError(t, err)
	assert.Equal(t, DemoFinderToken, pending.FinderUniqueToken)

	thread, err := stores.ChatThreads.Get(ctx, "chat-1")
	require.NoError(t, err)
	assert.True(t, thread.HasParticipant("user-2"))

	privacy, err := stores.Policies.Get(ctx, models.PolicyPrivacy)
	require.NoError(t, err)
	assert.Contains(t, privacy.Content, "## 1. What Information Do We Collect?")
}

func TestLoad_SkipsPopulatedStore(t *testing.T) {
	ctx := context.Background()
	stores := newStores(t)
	_, err := stores.Users.Create(ctx, models.User{ID: "someone", Name: "Someone", Email: "someone@example.com"})
	require.NoError(t, err)

	require.NoError(t, Load(ctx, stores, time.Now()))

	pets, err := stores.Pets.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, pets)
}
