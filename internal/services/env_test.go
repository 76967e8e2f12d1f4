package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/lovemypet/backend/internal/models"
	"github.com/lovemypet/backend/internal/notify"
	"github.com/lovemypet/backend/internal/seed"
	"github.com/lovemypet/backend/internal/storage"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	stores   *storage.Stores
	settings *SettingsService
	broker   *notify.MemoryBroker
}

// newTestEnv returns memory stores loaded with the demo community.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	stores, err := storage.NewMemoryStores(filepath.Join(t.TempDir(), "settings.json"))
	require.NoError(t, err)
	require.NoError(t, seed.Load(context.Background(), stores, time.Now().UTC()))

	return &testEnv{
		stores:   stores,
		settings: NewSettingsService(stores.Settings),
		broker:   notify.NewMemoryBroker(),
	}
}

func (e *testEnv) subscribe(t *testing.T) <-chan notify.Notification {
	t.Helper()
	ch, cancel := e.broker.Subscribe(context.Background())
	t.Cleanup(cancel)
	return ch
}

// drain collects what has been published so far.
func drain(ch <-chan notify.Notification) []notify.Notification {
	var out []notify.Notification
	for {
		select {
		case n := <-ch:
			out = append(out, n)
		case <-time.After(50 * time.Millisecond):
			return out
		}
	}
}

func titles(ns []notify.Notification) []string {
	out := make([]string, len(ns))
	for i, n := range ns {
		out[i] = n.Title
	}
	return out
}

var (
	admin = Actor{ID: "user-1", Role: models.RoleAdmin}
	jane  = Actor{ID: "user-2", Role: models.RoleUser}
	sam   = Actor{ID: "user-3", Role: models.RoleUser}
)
