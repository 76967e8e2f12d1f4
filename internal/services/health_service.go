package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lovemypet/backend/internal/models"
	"github.com/lovemypet/backend/internal/storage"
)

type HealthInput struct {
	Type    models.HealthRecordType
	Date    string
	Notes   string
	VetName string
}

func (in HealthInput) validate() error {
	if !models.ValidHealthRecordType(in.Type) {
		return validationError("invalid health record type %q", in.Type)
	}
	if _, err := time.Parse(time.DateOnly, in.Date); err != nil {
		return validationError("date must be YYYY-MM-DD")
	}
	return nil
}

// HealthService manages a pet's medical history. Only the owner may read or
// change it.
type HealthService struct {
	pets    storage.Repository[models.Pet]
	records storage.Repository[models.HealthRecord]
}

func NewHealthService(stores *storage.Stores) *HealthService {
	return &HealthService{pets: stores.Pets, records: stores.HealthRecords}
}

func (s *HealthService) authorize(ctx context.Context, actor Actor, petID string) error {
	pet, err := s.pets.Get(ctx, petID)
	if err != nil {
		return mapNotFound(err, ErrPetNotFound)
	}
	if !actor.owns(pet.OwnerID) {
		return ErrForbidden
	}
	return nil
}

// List returns records newest first.
func (s *HealthService) List(ctx context.Context, actor Actor, petID string) ([]models.HealthRecord, error) {
	if err := s.authorize(ctx, actor, petID); err != nil {
		return nil, err
	}
	recs, err := storage.Filter(ctx, s.records, func(r models.HealthRecord) bool { return r.PetID == petID })
	if err != nil {
		return nil, err
	}
	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Date > recs[j].Date })
	return recs, nil
}

func (s *HealthService) Add(ctx context.Context, actor Actor, petID string, in HealthInput) (models.HealthRecord, error) {
	if err := in.validate(); err != nil {
		return models.HealthRecord{}, err
	}
	if err := s.authorize(ctx, actor, petID); err != nil {
		return models.HealthRecord{}, err
	}
	return s.records.Create(ctx, models.HealthRecord{
		ID:      uuid.NewString(),
		PetID:   petID,
		Type:    in.Type,
		Date:    in.Date,
		Notes:   strings.TrimSpace(in.Notes),
		VetName: in.VetName,
	})
}

func (s *HealthService) get(ctx context.Context, actor Actor, petID, id string) (models.HealthRecord, error) {
	if err := s.authorize(ctx, actor, petID); err != nil {
		return models.HealthRecord{}, err
	}
	rec, err := s.records.Get(ctx, id)
	if err != nil {
		return models.HealthRecord{}, mapNotFound(err, ErrHealthNotFound)
	}
	if rec.PetID != petID {
		return models.HealthRecord{}, ErrHealthNotFound
	}
	return rec, nil
}

func (s *HealthService) Update(ctx context.Context, actor Actor, petID, id string, in HealthInput) (models.HealthRecord, error) {
	if err := in.validate(); err != nil {
		return models.HealthRecord{}, err
	}
	rec, err := s.get(ctx, actor, petID, id)
	if err != nil {
		return models.HealthRecord{}, err
	}
	rec.Type = in.Type
	rec.Date = in.Date
	rec.Notes = strings.TrimSpace(in.Notes)
	rec.VetName = in.VetName
	return s.records.Update(ctx, rec)
}

func (s *HealthService) Delete(ctx context.Context, actor Actor, petID, id string) error {
	if _, err := s.get(ctx, actor, petID, id); err != nil {
		return err
	}
	return mapNotFound(s.records.Delete(ctx, id), ErrHealthNotFound)
}
