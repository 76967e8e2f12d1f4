package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lovemypet/backend/internal/lifecycle"
	"github.com/lovemypet/backend/internal/models"
	"github.com/lovemypet/backend/internal/notify"
	"github.com/lovemypet/backend/internal/storage"
)

// PetInput holds the profile fields an owner may set. Status is not part of
// it; it only changes through lifecycle events.
type PetInput struct {
	Name           string
	Species        string
	Breed          string
	Color          string
	Age            int
	PhotoURLs      []string
	Description    string
	Keywords       []string
	RoamingArea    string
	RoamingAreaLat *float64
	RoamingAreaLng *float64
}

type MissingReport struct {
	Location string
	Time     time.Time
	Lat      *float64
	Lng      *float64
	Message  string
}

// Admin list tabs.
const (
	TabLost      = "Lost"
	TabReunited  = "Reunited"
	TabAllActive = "All Active"
	TabArchived  = "Archived"
)

type PetService struct {
	*transitions
	users storage.Repository[models.User]
}

func NewPetService(stores *storage.Stores, settings *SettingsService, broker notify.Broker) *PetService {
	return &PetService{
		transitions: &transitions{pets: stores.Pets, settings: settings, broker: broker, now: time.Now},
		users:       stores.Users,
	}
}

func (in PetInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return validationError("pet name is required")
	}
	if strings.TrimSpace(in.Species) == "" {
		return validationError("species is required")
	}
	if in.Age < 0 {
		return validationError("age cannot be negative")
	}
	return nil
}

func (in PetInput) applyTo(p *models.Pet) {
	p.Name = strings.TrimSpace(in.Name)
	p.Species = in.Species
	p.Breed = in.Breed
	p.Color = in.Color
	p.Age = in.Age
	p.PhotoURLs = append(p.PhotoURLs[:0:0], in.PhotoURLs...)
	p.Description = in.Description
	p.Keywords = append(p.Keywords[:0:0], in.Keywords...)
	p.RoamingArea = in.RoamingArea
	p.RoamingAreaLat = in.RoamingAreaLat
	p.RoamingAreaLng = in.RoamingAreaLng
}

func (s *PetService) Create(ctx context.Context, ownerID string, in PetInput) (models.Pet, error) {
	if err := in.validate(); err != nil {
		return models.Pet{}, err
	}
	now := s.now().UTC()
	pet := models.Pet{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Status:    models.PetSafe,
		CreatedAt: now,
		UpdatedAt: now,
	}
	in.applyTo(&pet)
	created, err := s.pets.Create(ctx, pet)
	if err != nil {
		return models.Pet{}, fmt.Errorf("failed to create pet: %w", err)
	}
	return created, nil
}

func (s *PetService) Get(ctx context.Context, id string) (models.Pet, error) {
	pet, err := s.pets.Get(ctx, id)
	if err != nil {
		return models.Pet{}, mapNotFound(err, ErrPetNotFound)
	}
	return pet, nil
}

// getOwned loads a pet the actor may change: their own, or any for admins.
func (s *PetService) getOwned(ctx context.Context, actor Actor, id string) (models.Pet, error) {
	pet, err := s.Get(ctx, id)
	if err != nil {
		return models.Pet{}, err
	}
	if err := ownedBy(actor)(pet); err != nil {
		return models.Pet{}, err
	}
	return pet, nil
}

func (s *PetService) ListByOwner(ctx context.Context, ownerID string) ([]models.Pet, error) {
	pets, err := storage.Filter(ctx, s.pets, func(p models.Pet) bool { return p.OwnerID == ownerID })
	if err != nil {
		return nil, err
	}
	sort.SliceStable(pets, func(i, j int) bool { return pets[i].CreatedAt.After(pets[j].CreatedAt) })
	return pets, nil
}

// Update rewrites the profile fields on the stored record. Status and the
// alert fields are left as they are, so a concurrent transition is never
// undone by a profile edit.
func (s *PetService) Update(ctx context.Context, actor Actor, id string, in PetInput) (models.Pet, error) {
	if err := in.validate(); err != nil {
		return models.Pet{}, err
	}
	guard := ownedBy(actor)
	updated, err := s.pets.Modify(ctx, id, func(p *models.Pet) error {
		if err := guard(*p); err != nil {
			return err
		}
		in.applyTo(p)
		p.UpdatedAt = s.now().UTC()
		return nil
	})
	if err != nil {
		return models.Pet{}, mapNotFound(err, ErrPetNotFound)
	}
	return updated, nil
}

// Delete removes the pet only. Stories and health records that reference it
// are left in place.
func (s *PetService) Delete(ctx context.Context, actor Actor, id string) error {
	if _, err := s.getOwned(ctx, actor, id); err != nil {
		return err
	}
	return mapNotFound(s.pets.Delete(ctx, id), ErrPetNotFound)
}

// ReportMissing raises an alert for a Safe pet.
func (s *PetService) ReportMissing(ctx context.Context, actor Actor, id string, r MissingReport) (models.Pet, error) {
	if strings.TrimSpace(r.Location) == "" || r.Time.IsZero() {
		return models.Pet{}, validationError("last seen location and time are required")
	}
	seen := r.Time.UTC()
	return s.apply(ctx, id, lifecycle.ReportMissing, ownedBy(actor), func(p *models.Pet) error {
		p.LastSeenLocation = strings.TrimSpace(r.Location)
		p.LastSeenTime = &seen
		p.LastSeenLat = r.Lat
		p.LastSeenLng = r.Lng
		p.MissingReportMessage = r.Message
		return nil
	})
}

// MarkSafe closes an alert raised by mistake.
func (s *PetService) MarkSafe(ctx context.Context, actor Actor, id string) (models.Pet, error) {
	return s.apply(ctx, id, lifecycle.MarkSafe, ownedBy(actor), nil)
}

func (s *PetService) Archive(ctx context.Context, id string) (models.Pet, error) {
	return s.apply(ctx, id, lifecycle.Archive, nil, nil)
}

func (s *PetService) Restore(ctx context.Context, id string) (models.Pet, error) {
	return s.apply(ctx, id, lifecycle.Restore, nil, nil)
}

// AdminList returns pets for one admin tab, narrowed by a case-insensitive
// search over name, breed, species, color and the owner's display name.
func (s *PetService) AdminList(ctx context.Context, tab, search string) ([]models.Pet, error) {
	owners := map[string]string{}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		owners[u.ID] = u.DisplayName
	}

	search = strings.ToLower(strings.TrimSpace(search))
	pets, err := storage.Filter(ctx, s.pets, func(p models.Pet) bool {
		if !inTab(p.Status, tab) {
			return false
		}
		if search == "" {
			return true
		}
		for _, field := range []string{p.Name, p.Breed, p.Species, p.Color, owners[p.OwnerID]} {
			if strings.Contains(strings.ToLower(field), search) {
				return true
			}
		}
		return false
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(pets, func(i, j int) bool { return pets[i].Name < pets[j].Name })
	return pets, nil
}

func inTab(status models.PetStatus, tab string) bool {
	switch tab {
	case TabLost:
		return status == models.PetLost
	case TabReunited:
		return status == models.PetReunited
	case TabArchived:
		return status == models.PetArchived
	default:
		return status != models.PetArchived
	}
}
