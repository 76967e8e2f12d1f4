// Package lifecycle holds the pet status transition table.
package lifecycle

import (
	"errors"
	"fmt"

	"github.com/lovemypet/backend/internal/models"
)

var ErrInvalidTransition = errors.New("invalid status transition")

type Event string

const (
	ReportMissing Event = "report_missing"
	MarkSafe      Event = "mark_safe"
	SubmitReunion Event = "submit_reunion"
	ApproveStory  Event = "approve_story"
	RejectStory   Event = "reject_story"
	Archive       Event = "archive"
	Restore       Event = "restore"
)

// Next returns the status a pet moves to when ev happens in state from.
// requireApproval only matters for SubmitReunion.
func Next(from models.PetStatus, ev Event, requireApproval bool) (models.PetStatus, error) {
	switch ev {
	case ReportMissing:
		if from == models.PetSafe {
			return models.PetLost, nil
		}
	case MarkSafe:
		if from == models.PetLost {
			return models.PetSafe, nil
		}
	case SubmitReunion:
		if from == models.PetLost {
			if requireApproval {
				return models.PetReview, nil
			}
			return models.PetReunited, nil
		}
	case ApproveStory:
		if from == models.PetReview {
			return models.PetReunited, nil
		}
	case RejectStory:
		if from == models.PetReview {
			return models.PetSafe, nil
		}
	case Archive:
		if from != models.PetArchived {
			return models.PetArchived, nil
		}
	case Restore:
		if from == models.PetArchived {
			return models.PetSafe, nil
		}
	}
	return from, fmt.Errorf("%w: %s from %s", ErrInvalidTransition, ev, from)
}

// ResolvesAlert reports whether a transition closes an open lost-pet alert.
func ResolvesAlert(from, to models.PetStatus) bool {
	if from != models.PetLost {
		return false
	}
	return to == models.PetSafe || to == models.PetReunited || to == models.PetReview
}

// OpensAlert reports whether a transition starts a new lost-pet alert.
func OpensAlert(from, to models.PetStatus) bool {
	return from == models.PetSafe && to == models.PetLost
}
