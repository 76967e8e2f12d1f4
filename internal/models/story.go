package models

import "time"

type FinderTestimonialStatus string

const (
	FinderNotSubmitted       FinderTestimonialStatus = "NotSubmitted"
	FinderAwaitingModeration FinderTestimonialStatus = "AwaitingModeration"
	FinderApproved           FinderTestimonialStatus = "Approved"
)

// FoundPetStory records a reunion. FinderUniqueToken is a single-use capability
// and is cleared once the finder testimonial is submitted.
type FoundPetStory struct {
	ID                      string                  `gorm:"primaryKey;size:64" json:"id"`
	PetID                   string                  `gorm:"size:64;not null;index" json:"pet_id"`
	ReunionDate             time.Time               `gorm:"not null" json:"reunion_date"`
	OwnerTestimonial        string                  `gorm:"type:text" json:"owner_testimonial"`
	OwnerRating             int                     `json:"owner_rating"`
	FinderName              string                  `gorm:"size:255" json:"finder_name,omitempty"`
	FinderTestimonial       string                  `gorm:"type:text" json:"finder_testimonial,omitempty"`
	FinderTestimonialStatus FinderTestimonialStatus `gorm:"size:30;not null;default:'NotSubmitted'" json:"finder_testimonial_status"`
	FinderUniqueToken       string                  `gorm:"size:128;index" json:"-"`
	Likes                   int                     `json:"likes"`
	SubmittedAt             time.Time               `gorm:"index" json:"submitted_at"`
}

func (s FoundPetStory) EntityID() string { return s.ID }

// NewerThan orders two submissions for the same pet: later SubmittedAt
// first, then a story still holding its finder token, then the higher id.
func (s FoundPetStory) NewerThan(o FoundPetStory) bool {
	if !s.SubmittedAt.Equal(o.SubmittedAt) {
		return s.SubmittedAt.After(o.SubmittedAt)
	}
	if (s.FinderUniqueToken != "") != (o.FinderUniqueToken != "") {
		return s.FinderUniqueToken != ""
	}
	return s.ID > o.ID
}

// Comment belongs to a FoundPetStory.
type Comment struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	StoryID   string    `gorm:"size:64;not null;index" json:"story_id"`
	AuthorID  string    `gorm:"size:64;not null" json:"author_id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	Timestamp time.Time `gorm:"not null" json:"timestamp"`
}

func (c Comment) EntityID() string { return c.ID }
