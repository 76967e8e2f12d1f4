package dto

type CommentRequest struct {
	Text string `json:"text"`
}

type FinderTestimonialRequest struct {
	FinderName        string `json:"finder_name"`
	FinderTestimonial string `json:"finder_testimonial"`
}

type PostRequest struct {
	Text     string `json:"text"`
	ImageURL string `json:"image_url"`
}

type AdminPostRequest struct {
	Text      string `json:"text"`
	ImageURL  string `json:"image_url"`
	Category  string `json:"category"`
	Status    string `json:"status"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type PinRequest struct {
	ItemID    string `json:"item_id"`
	ItemType  string `json:"item_type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type AssistRequest struct {
	Name              string `json:"name"`
	Species           string `json:"species"`
	Breed             string `json:"breed"`
	Color             string `json:"color"`
	Age               int    `json:"age"`
	RoamingArea       string `json:"roaming_area"`
	PersonalityTraits string `json:"personality_traits"`
	Description       string `json:"description"`
	LastSeenLocation  string `json:"last_seen_location"`
	LastSeenTime      string `json:"last_seen_time"`
	ImageDataURL      string `json:"image_data_url"`
}

type AssistTextResponse struct {
	Text string `json:"text"`
}

type AssistKeywordsResponse struct {
	Keywords []string `json:"keywords"`
}

type StartChatRequest struct {
	ParticipantID string `json:"participant_id"`
}

type ChatMessageRequest struct {
	Text string `json:"text"`
}
