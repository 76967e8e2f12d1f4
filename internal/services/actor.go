package services

import "github.com/lovemypet/backend/internal/models"

// Actor is the signed-in member performing an operation.
type Actor struct {
	ID   string
	Role models.Role
}

func (a Actor) IsAdmin() bool { return a.Role == models.RoleAdmin }

func (a Actor) owns(ownerID string) bool {
	return a.ID != "" && a.ID == ownerID
}
