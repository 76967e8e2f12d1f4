package lifecycle

import (
	"testing"

	"github.com/lovemypet/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNext_Allowed(t *testing.T) {
	tests := []struct {
		from     models.PetStatus
		ev       Event
		approval bool
		want     models.PetStatus
	}{
		{models.PetSafe, ReportMissing, false, models.PetLost},
		{models.PetLost, MarkSafe, false, models.PetSafe},
		{models.PetLost, SubmitReunion, true, models.PetReview},
		{models.PetLost, SubmitReunion, false, models.PetReunited},
		{models.PetReview, ApproveStory, true, models.PetReunited},
		{models.PetReview, RejectStory, true, models.PetSafe},
		{models.PetSafe, Archive, false, models.PetArchived},
		{models.PetLost, Archive, false, models.PetArchived},
		{models.PetReview, Archive, false, models.PetArchived},
		{models.PetReunited, Archive, false, models.PetArchived},
		{models.PetArchived, Restore, false, models.PetSafe},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"/"+string(tt.ev), func(t *testing.T) {
			got, err := Next(tt.from, tt.ev, tt.approval)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNext_Rejected(t *testing.T) {
	tests := []struct {
		from models.PetStatus
		ev   Event
	}{
		{models.PetLost, ReportMissing},
		{models.PetReview, ReportMissing},
		{models.PetSafe, MarkSafe},
		{models.PetSafe, SubmitReunion},
		{models.PetReview, SubmitReunion},
		{models.PetLost, ApproveStory},
		{models.PetReunited, RejectStory},
		{models.PetArchived, Archive},
		{models.PetSafe, Restore},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"/"+string(tt.ev), func(t *testing.T) {
			got, err := Next(tt.from, tt.ev, true)
			assert.ErrorIs(t, err, ErrInvalidTransition)
			assert.Equal(t, tt.from, got)
		})
	}
}

func TestAlertTransitions(t *testing.T) {
	assert.True(t, ResolvesAlert(models.PetLost, models.PetSafe))
	assert.True(t, ResolvesAlert(models.PetLost, models.PetReview))
	assert.True(t, ResolvesAlert(models.PetLost, models.PetReunited))
	assert.False(t, ResolvesAlert(models.PetLost, models.PetArchived))
	assert.False(t, ResolvesAlert(models.PetReview, models.PetReunited))

	assert.True(t, OpensAlert(models.PetSafe, models.PetLost))
	assert.False(t, OpensAlert(models.PetArchived, models.PetSafe))
}
