package dto

import "github.com/lovemypet/backend/internal/models"

type PetRequest struct {
	Name           string   `json:"name"`
	Species        string   `json:"species"`
	Breed          string   `json:"breed"`
	Color          string   `json:"color"`
	Age            int      `json:"age"`
	PhotoURLs      []string `json:"photo_urls"`
	Description    string   `json:"description"`
	Keywords       []string `json:"keywords"`
	RoamingArea    string   `json:"roaming_area"`
	RoamingAreaLat *float64 `json:"roaming_area_lat"`
	RoamingAreaLng *float64 `json:"roaming_area_lng"`
}

type ReportMissingRequest struct {
	LastSeenLocation     string   `json:"last_seen_location"`
	LastSeenTime         string   `json:"last_seen_time"`
	LastSeenLat          *float64 `json:"last_seen_lat"`
	LastSeenLng          *float64 `json:"last_seen_lng"`
	MissingReportMessage string   `json:"missing_report_message"`
}

type ReunionRequest struct {
	OwnerTestimonial string `json:"owner_testimonial"`
	OwnerRating      int    `json:"owner_rating"`
	ReunionDate      string `json:"reunion_date"`
}

type ReunionResponse struct {
	Pet        models.Pet           `json:"pet"`
	Story      models.FoundPetStory `json:"story"`
	FinderLink string               `json:"finder_link"`
}

type HealthRecordRequest struct {
	Type    string `json:"type"`
	Date    string `json:"date"`
	Notes   string `json:"notes"`
	VetName string `json:"vet_name"`
}
