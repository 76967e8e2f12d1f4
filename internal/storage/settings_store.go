package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/lovemypet/backend/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FileSettingsStore keeps blobs in a JSON object on disk, keyed by
// models.SettingsKey.
type FileSettingsStore struct {
	path string
	mu   sync.RWMutex
	data map[string]json.RawMessage
}

func NewFileSettingsStore(path string) (*FileSettingsStore, error) {
	s := &FileSettingsStore{path: path, data: make(map[string]json.RawMessage)}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create settings dir: %w", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &s.data); err != nil {
			return nil, fmt.Errorf("failed to parse settings file: %w", err)
		}
	}
	return s, nil
}

func (s *FileSettingsStore) Load(_ context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	blob, ok := s.data[models.SettingsKey]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), blob...), nil
}

func (s *FileSettingsStore) Save(_ context.Context, blob []byte) error {
	if !json.Valid(blob) {
		return errors.New("settings blob is not valid JSON")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[models.SettingsKey] = append(json.RawMessage(nil), blob...)

	out, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, out, 0o644)
}

// GormSettingsStore keeps the blob in the app_settings table.
type GormSettingsStore struct {
	db *gorm.DB
}

func NewGormSettingsStore(db *gorm.DB) *GormSettingsStore {
	return &GormSettingsStore{db: db}
}

func (s *GormSettingsStore) Load(ctx context.Context) ([]byte, error) {
	var rec models.SettingsRecord
	if err := s.db.WithContext(ctx).First(&rec, "key = ?", models.SettingsKey).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return rec.Value, nil
}

func (s *GormSettingsStore) Save(ctx context.Context, blob []byte) error {
	rec := models.SettingsRecord{Key: models.SettingsKey, Value: datatypes.JSON(blob)}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
