package models

import (
	"time"

	"gorm.io/datatypes"
)

type PetStatus string

const (
	PetSafe     PetStatus = "Safe"
	PetLost     PetStatus = "Lost"
	PetReview   PetStatus = "Review"
	PetReunited PetStatus = "Reunited"
	PetArchived PetStatus = "Archived"
)

// Pet belongs to exactly one owner. Status only changes through the lifecycle rules.
type Pet struct {
	ID                   string                      `gorm:"primaryKey;size:64" json:"id"`
	OwnerID              string                      `gorm:"size:64;not null;index" json:"owner_id"`
	Name                 string                      `gorm:"size:255;not null" json:"name"`
	Species              string                      `gorm:"size:100" json:"species"`
	Breed                string                      `gorm:"size:255" json:"breed"`
	Color                string                      `gorm:"size:255" json:"color"`
	Age                  int                         `json:"age"`
	PhotoURLs            datatypes.JSONSlice[string] `json:"photo_urls"`
	Description          string                      `gorm:"type:text" json:"description"`
	Keywords             datatypes.JSONSlice[string] `json:"keywords"`
	Status               PetStatus                   `gorm:"size:20;not null;default:'Safe';index" json:"status"`
	RoamingArea          string                      `gorm:"size:255" json:"roaming_area,omitempty"`
	RoamingAreaLat       *float64                    `json:"roaming_area_lat,omitempty"`
	RoamingAreaLng       *float64                    `json:"roaming_area_lng,omitempty"`
	LastSeenLocation     string                      `gorm:"size:255" json:"last_seen_location,omitempty"`
	LastSeenTime         *time.Time                  `json:"last_seen_time,omitempty"`
	LastSeenLat          *float64                    `json:"last_seen_lat,omitempty"`
	LastSeenLng          *float64                    `json:"last_seen_lng,omitempty"`
	MissingReportMessage string                      `gorm:"type:text" json:"missing_report_message,omitempty"`
	CreatedAt            time.Time                   `json:"created_at"`
	UpdatedAt            time.Time                   `json:"updated_at"`
}

func (p Pet) EntityID() string { return p.ID }

func (p Pet) Clone() Pet {
	p.PhotoURLs = append(datatypes.JSONSlice[string](nil), p.PhotoURLs...)
	p.Keywords = append(datatypes.JSONSlice[string](nil), p.Keywords...)
	return p
}

func (p Pet) PrimaryPhoto() string {
	if len(p.PhotoURLs) == 0 {
		return ""
	}
	return p.PhotoURLs[0]
}

type HealthRecordType string

const (
	HealthVaccination HealthRecordType = "Vaccination"
	HealthVetVisit    HealthRecordType = "Vet Visit"
	HealthMedication  HealthRecordType = "Medication"
	HealthAllergy     HealthRecordType = "Allergy"
	HealthOther       HealthRecordType = "Other"
)

// HealthRecord is a dated entry in a pet's medical history.
type HealthRecord struct {
	ID      string           `gorm:"primaryKey;size:64" json:"id"`
	PetID   string           `gorm:"size:64;not null;index" json:"pet_id"`
	Type    HealthRecordType `gorm:"size:30;not null" json:"type"`
	Date    string           `gorm:"size:10;not null" json:"date"` // YYYY-MM-DD
	Notes   string           `gorm:"type:text" json:"notes"`
	VetName string           `gorm:"size:255" json:"vet_name,omitempty"`
}

func (h HealthRecord) EntityID() string { return h.ID }

func ValidHealthRecordType(t HealthRecordType) bool {
	switch t {
	case HealthVaccination, HealthVetVisit, HealthMedication, HealthAllergy, HealthOther:
		return true
	}
	return false
}
