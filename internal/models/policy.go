package models

import "time"

type PolicyStatus string

const (
	PolicyActive   PolicyStatus = "Active"
	PolicyArchived PolicyStatus = "Archived"
)

const (
	PolicyPrivacy   = "privacy-policy"
	PolicyCommunity = "community-guidelines"
)

// Policy is a markdown document replaced wholesale on every edit.
type Policy struct {
	ID          string       `gorm:"primaryKey;size:64" json:"id"`
	Title       string       `gorm:"size:255;not null" json:"title"`
	Content     string       `gorm:"type:text" json:"content"`
	Status      PolicyStatus `gorm:"size:20;not null;default:'Active'" json:"status"`
	LastUpdated time.Time    `json:"last_updated"`
}

func (p Policy) EntityID() string { return p.ID }
