package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/lovemypet/backend/internal/models"
	"github.com/lovemypet/backend/internal/storage"
)

func DefaultSettings() models.AppSettings {
	return models.AppSettings{
		General: models.GeneralSettings{
			AppName:         "LoveMyPet",
			ContactEmail:    "support@lovemypet.com",
			ContactAddress:  "123 Paw Print Lane, San Francisco, CA 94105, United States",
			MaintenanceMode: false,
			Socials: models.Socials{
				Facebook:  "https://facebook.com",
				Instagram: "https://instagram.com",
				Twitter:   "https://twitter.com",
			},
		},
		UserPetManagement: models.UserPetSettings{
			DefaultUserRole:   models.RoleUser,
			AlertDurationDays: 30,
		},
		ContentModeration: models.ModerationSettings{
			RequireStoryApproval: true,
			ProfanityList:        []string{"badword", "curse", "swearword"},
		},
	}
}

// MergeSettings overlays a stored blob on the defaults field by field, so
// fields the blob lacks keep their default value.
func MergeSettings(blob []byte) (models.AppSettings, error) {
	s := DefaultSettings()
	if len(blob) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(blob, &s); err != nil {
		return DefaultSettings(), fmt.Errorf("failed to parse stored settings: %w", err)
	}
	return s, nil
}

type SettingsService struct {
	store  storage.SettingsStore
	mu     sync.RWMutex
	cached *models.AppSettings
}

func NewSettingsService(store storage.SettingsStore) *SettingsService {
	return &SettingsService{store: store}
}

func (s *SettingsService) Get(ctx context.Context) (models.AppSettings, error) {
	s.mu.RLock()
	if s.cached != nil {
		out := copySettings(*s.cached)
		s.mu.RUnlock()
		return out, nil
	}
	s.mu.RUnlock()

	blob, err := s.store.Load(ctx)
	if err != nil {
		return DefaultSettings(), err
	}
	merged, err := MergeSettings(blob)
	if err != nil {
		return merged, err
	}

	s.mu.Lock()
	s.cached = &merged
	s.mu.Unlock()
	return copySettings(merged), nil
}

// Current is Get without the error, falling back to defaults. Used on hot
// paths where settings only tune behaviour.
func (s *SettingsService) Current(ctx context.Context) models.AppSettings {
	settings, _ := s.Get(ctx)
	return settings
}

func (s *SettingsService) Update(ctx context.Context, next models.AppSettings) (models.AppSettings, error) {
	if !models.ValidRole(next.UserPetManagement.DefaultUserRole) {
		return models.AppSettings{}, validationError("invalid default user role %q", next.UserPetManagement.DefaultUserRole)
	}
	if next.UserPetManagement.AlertDurationDays < 1 {
		return models.AppSettings{}, validationError("alert duration must be at least one day")
	}
	if next.General.AppName == "" {
		return models.AppSettings{}, validationError("app name is required")
	}

	blob, err := json.Marshal(next)
	if err != nil {
		return models.AppSettings{}, err
	}
	if err := s.store.Save(ctx, blob); err != nil {
		return models.AppSettings{}, err
	}

	saved := copySettings(next)
	s.mu.Lock()
	s.cached = &saved
	s.mu.Unlock()
	return copySettings(saved), nil
}

func copySettings(s models.AppSettings) models.AppSettings {
	s.ContentModeration.ProfanityList = append([]string(nil), s.ContentModeration.ProfanityList...)
	return s
}
