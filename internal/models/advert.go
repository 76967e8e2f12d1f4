package models

import (
	"time"

	"gorm.io/datatypes"
)

type AdvertiserStatus string

const (
	AdvertiserActive   AdvertiserStatus = "Active"
	AdvertiserInactive AdvertiserStatus = "Inactive"
)

type Advertiser struct {
	ID             string           `gorm:"primaryKey;size:64" json:"id"`
	CompanyName    string           `gorm:"size:255;not null" json:"company_name"`
	ContactPerson  string           `gorm:"size:255" json:"contact_person"`
	Email          string           `gorm:"size:255" json:"email"`
	Phone          string           `gorm:"size:50" json:"phone"`
	BillingAddress string           `gorm:"type:text" json:"billing_address"`
	TaxID          string           `gorm:"size:100" json:"tax_id,omitempty"`
	Website        string           `gorm:"size:255" json:"website,omitempty"`
	Notes          string           `gorm:"type:text" json:"notes,omitempty"`
	Status         AdvertiserStatus `gorm:"size:20;not null;default:'Active'" json:"status"`
	CreatedAt      time.Time        `json:"created_at"`
}

func (a Advertiser) EntityID() string { return a.ID }

type AdvertStatus string

const (
	AdvertUnderReview AdvertStatus = "Under Review"
	AdvertActive      AdvertStatus = "Active"
	AdvertPaused      AdvertStatus = "Paused"
	AdvertArchived    AdvertStatus = "Archived"
)

type AdvertFormat string

const (
	FormatFull   AdvertFormat = "full"
	FormatHalf   AdvertFormat = "half"
	FormatBanner AdvertFormat = "banner"
	FormatStrip  AdvertFormat = "strip"
)

// AdvertFormatSizes lists the required pixel dimensions per format.
var AdvertFormatSizes = map[AdvertFormat][2]int{
	FormatBanner: {800, 200},
	FormatFull:   {400, 450},
	FormatHalf:   {400, 200},
	FormatStrip:  {1200, 150},
}

type DisplayPage string

const (
	PageFeed   DisplayPage = "Feed"
	PageAlerts DisplayPage = "Alerts"
	PageFound  DisplayPage = "Found"
)

type Advert struct {
	ID           string                      `gorm:"primaryKey;size:64" json:"id"`
	AdvertiserID string                      `gorm:"size:64;not null;index" json:"advertiser_id"`
	Name         string                      `gorm:"size:255;not null" json:"name"`
	Description  string                      `gorm:"type:text" json:"description,omitempty"`
	Category     string                      `gorm:"size:100" json:"category"`
	Geolocation  string                      `gorm:"size:255" json:"geolocation,omitempty"`
	ImageURL     string                      `gorm:"type:text;not null" json:"image_url"`
	URL          string                      `gorm:"type:text" json:"url"`
	StartDate    time.Time                   `json:"start_date"`
	EndDate      time.Time                   `json:"end_date"`
	Frequency    string                      `gorm:"size:50" json:"frequency"`
	Budget       float64                     `json:"budget"`
	DisplayPages datatypes.JSONSlice[string] `json:"display_pages"`
	Format       AdvertFormat                `gorm:"size:10;not null" json:"format"`
	Status       AdvertStatus                `gorm:"size:20;not null;default:'Under Review'" json:"status"`
}

func (a Advert) EntityID() string { return a.ID }

func (a Advert) Clone() Advert {
	a.DisplayPages = append(datatypes.JSONSlice[string](nil), a.DisplayPages...)
	return a
}

func (a Advert) ShowsOn(page DisplayPage) bool {
	for _, p := range a.DisplayPages {
		if p == string(page) {
			return true
		}
	}
	return false
}

func ValidAdvertStatus(s AdvertStatus) bool {
	switch s {
	case AdvertUnderReview, AdvertActive, AdvertPaused, AdvertArchived:
		return true
	}
	return false
}
