package services

import (
	"context"
	"testing"
	"time"

	"github.com/lovemypet/backend/internal/lifecycle"
	"github.com/lovemypet/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPetService(env *testEnv) *PetService {
	return NewPetService(env.stores, env.settings, env.broker)
}

func TestCreatePet_StartsSafe(t *testing.T) {
	svc := newPetService(newTestEnv(t))

	pet, err := svc.Create(context.Background(), "user-3", PetInput{Name: "Pip", Species: "Dog", Age: 1})
	require.NoError(t, err)
	assert.Equal(t, models.PetSafe, pet.Status)
	assert.Equal(t, "user-3", pet.OwnerID)

	_, err = svc.Create(context.Background(), "user-3", PetInput{Species: "Dog"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestReportMissing(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	ch := env.subscribe(t)
	svc := newPetService(env)
	seen := time.Date(2024, 5, 1, 18, 30, 0, 0, time.UTC)

	pet, err := svc.ReportMissing(ctx, admin, "pet-1", MissingReport{Location: "Golden Gate Park", Time: seen})
	require.NoError(t, err)
	assert.Equal(t, models.PetLost, pet.Status)
	require.NotNil(t, pet.LastSeenTime)
	assert.Equal(t, seen, *pet.LastSeenTime)

	got := drain(ch)
	require.Len(t, got, 2)
	assert.Equal(t, "Missing Pet Alert", got[0].Title)
	assert.Equal(t, "user-1", got[0].ExcludeUserID)
	assert.False(t, got[0].VisibleTo("user-1"))
	assert.True(t, got[0].VisibleTo("user-2"))
	assert.Equal(t, "Missing Pet Alert Active", got[1].Title)
	assert.Equal(t, "user-1", got[1].RecipientID)

	_, err = svc.ReportMissing(ctx, admin, "pet-1", MissingReport{Location: "Park", Time: seen})
	assert.ErrorIs(t, err, lifecycle.ErrInvalidTransition)
}

func TestReportMissing_OnlyOwnerOrAdmin(t *testing.T) {
	svc := newPetService(newTestEnv(t))

	_, err := svc.ReportMissing(context.Background(), sam, "pet-1", MissingReport{Location: "Park", Time: time.Now()})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.ReportMissing(context.Background(), admin, "pet-1", MissingReport{Location: ""})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestMarkSafe_ResolvesAlert(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	ch := env.subscribe(t)

	pet, err := newPetService(env).MarkSafe(ctx, jane, "pet-2")
	require.NoError(t, err)
	assert.Equal(t, models.PetSafe, pet.Status)

	got := drain(ch)
	require.Len(t, got, 1)
	assert.Equal(t, "Alert Resolved", got[0].Title)
}

func TestArchiveRestore(t *testing.T) {
	ctx := context.Background()
	svc := newPetService(newTestEnv(t))

	pet, err := svc.Archive(ctx, "pet-2")
	require.NoError(t, err)
	assert.Equal(t, models.PetArchived, pet.Status)

	_, err = svc.Archive(ctx, "pet-2")
	assert.ErrorIs(t, err, lifecycle.ErrInvalidTransition)

	pet, err = svc.Restore(ctx, "pet-2")
	require.NoError(t, err)
	assert.Equal(t, models.PetSafe, pet.Status)
}

func TestAdminList(t *testing.T) {
	ctx := context.Background()
	svc := newPetService(newTestEnv(t))

	lost, err := svc.AdminList(ctx, TabLost, "")
	require.NoError(t, err)
	require.Len(t, lost, 1)
	assert.Equal(t, "pet-2", lost[0].ID)

	// search also matches the owner's display name
	byOwner, err := svc.AdminList(ctx, TabAllActive, "jane s.")
	require.NoError(t, err)
	var names []string
	for _, p := range byOwner {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"Gizmo", "Whiskers"}, names)
}

func TestUpdateKeepsStatus(t *testing.T) {
	ctx := context.Background()
	svc := newPetService(newTestEnv(t))

	pet, err := svc.Update(ctx, jane, "pet-2", PetInput{Name: "Whiskers II", Species: "Cat"})
	require.NoError(t, err)
	assert.Equal(t, "Whiskers II", pet.Name)
	assert.Equal(t, models.PetLost, pet.Status)

	_, err = svc.Update(ctx, sam, "pet-2", PetInput{Name: "Mine", Species: "Cat"})
	assert.ErrorIs(t, err, ErrForbidden)
}
