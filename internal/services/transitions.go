package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lovemypet/backend/internal/lifecycle"
	"github.com/lovemypet/backend/internal/metrics"
	"github.com/lovemypet/backend/internal/models"
	"github.com/lovemypet/backend/internal/notify"
	"github.com/lovemypet/backend/internal/storage"
)

// transitions applies lifecycle events to pets and emits the notifications
// that go with opening or resolving an alert. Shared by the pet, story and
// moderation services.
type transitions struct {
	pets     storage.Repository[models.Pet]
	settings *SettingsService
	broker   notify.Broker
	now      func() time.Time
}

func (t *transitions) requireApproval(ctx context.Context) bool {
	return t.settings.Current(ctx).ContentModeration.RequireStoryApproval
}

// apply moves the pet through ev as one atomic read-check-write on the pet
// store, then publishes the alert notifications that go with the move.
// guard, when set, vets the current record before the move; mutate runs on
// the moved record before it is saved. Either may abort with an error.
func (t *transitions) apply(ctx context.Context, id string, ev lifecycle.Event, guard func(models.Pet) error, mutate func(*models.Pet) error) (models.Pet, error) {
	requireApproval := t.requireApproval(ctx)

	var from models.PetStatus
	saved, err := t.pets.Modify(ctx, id, func(p *models.Pet) error {
		if guard != nil {
			if err := guard(*p); err != nil {
				return err
			}
		}
		to, err := lifecycle.Next(p.Status, ev, requireApproval)
		if err != nil {
			return err
		}
		from = p.Status
		p.Status = to
		if mutate != nil {
			if err := mutate(p); err != nil {
				return err
			}
		}
		p.UpdatedAt = t.now().UTC()
		return nil
	})
	if err != nil {
		return models.Pet{}, mapNotFound(err, ErrPetNotFound)
	}
	to := saved.Status
	metrics.RecordTransition(string(from), string(to))
	slog.Info("pet status changed", "pet_id", saved.ID, "from", from, "to", to, "action", string(ev))

	switch {
	case lifecycle.OpensAlert(from, to):
		t.publishOpened(ctx, saved)
	case lifecycle.ResolvesAlert(from, to):
		t.publishResolved(ctx, saved)
	}
	return saved, nil
}

// ownedBy lets the pet's owner or an admin through.
func ownedBy(actor Actor) func(models.Pet) error {
	return func(p models.Pet) error {
		if !actor.owns(p.OwnerID) && !actor.IsAdmin() {
			return ErrForbidden
		}
		return nil
	}
}

func (t *transitions) publishOpened(ctx context.Context, pet models.Pet) {
	breed := pet.Breed
	if breed == "" {
		breed = pet.Species
	}
	publish(ctx, t.broker, notify.Notification{
		Title:         "Missing Pet Alert",
		Message:       fmt.Sprintf("%s, a %s, has been reported missing.", pet.Name, breed),
		Link:          "/pet/" + pet.ID,
		ImageURL:      pet.PrimaryPhoto(),
		ExcludeUserID: pet.OwnerID,
	})
	publish(ctx, t.broker, notify.Notification{
		Title:       "Missing Pet Alert Active",
		Message:     fmt.Sprintf("%s has been reported missing and is now visible on the homepage.", pet.Name),
		Link:        "/pet/" + pet.ID,
		ImageURL:    pet.PrimaryPhoto(),
		RecipientID: pet.OwnerID,
	})
}

func (t *transitions) publishResolved(ctx context.Context, pet models.Pet) {
	n := notify.Notification{
		Title:    "Alert Resolved",
		Message:  fmt.Sprintf("The alert for %s has been resolved.", pet.Name),
		Link:     "/pet/" + pet.ID,
		ImageURL: pet.PrimaryPhoto(),
	}
	if pet.Status == models.PetReunited {
		n.Title = "Pet Reunited!"
		n.Message = fmt.Sprintf("%s has been successfully reunited!", pet.Name)
	}
	publish(ctx, t.broker, n)
}

// publish never fails the calling operation; a lost toast is only logged.
func publish(ctx context.Context, broker notify.Broker, n notify.Notification) {
	err := broker.Publish(ctx, n)
	metrics.RecordNotification(err)
	if err != nil {
		slog.Warn("failed to publish notification", "title", n.Title, "error", err)
	}
}
