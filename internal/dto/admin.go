package dto

type AdvertiserRequest struct {
	CompanyName    string `json:"company_name"`
	ContactPerson  string `json:"contact_person"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	BillingAddress string `json:"billing_address"`
	TaxID          string `json:"tax_id"`
	Website        string `json:"website"`
	Notes          string `json:"notes"`
	Status         string `json:"status"`
}

type AdvertRequest struct {
	AdvertiserID string   `json:"advertiser_id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	Geolocation  string   `json:"geolocation"`
	ImageURL     string   `json:"image_url"`
	URL          string   `json:"url"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	Frequency    string   `json:"frequency"`
	Budget       float64  `json:"budget"`
	DisplayPages []string `json:"display_pages"`
	Format       string   `json:"format"`
}

type StatusRequest struct {
	Status string `json:"status"`
}

type PolicyRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}
