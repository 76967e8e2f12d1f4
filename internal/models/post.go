package models

import "time"

type PostCategory string

const (
	CategoryImportant    PostCategory = "Important Message"
	CategoryAnnouncement PostCategory = "Announcement"
)

type PostStatus string

const (
	PostActive   PostStatus = "Active"
	PostArchived PostStatus = "Archived"
)

// Post is community content. Admin posts are only shown while Active and
// inside their [StartDate, end of EndDate] window.
type Post struct {
	ID          string       `gorm:"primaryKey;size:64" json:"id"`
	AuthorID    string       `gorm:"size:64;not null;index" json:"author_id"`
	Text        string       `gorm:"type:text;not null" json:"text"`
	ImageURL    string       `gorm:"type:text" json:"image_url,omitempty"`
	Timestamp   time.Time    `gorm:"not null;index" json:"timestamp"`
	Likes       int          `json:"likes"`
	IsAdminPost bool         `gorm:"not null;default:false" json:"is_admin_post"`
	Category    PostCategory `gorm:"size:30" json:"category,omitempty"`
	Status      PostStatus   `gorm:"size:20" json:"status,omitempty"`
	StartDate   *time.Time   `json:"start_date,omitempty"`
	EndDate     *time.Time   `json:"end_date,omitempty"`
}

func (p Post) EntityID() string { return p.ID }

func ValidPostCategory(c PostCategory) bool {
	return c == CategoryImportant || c == CategoryAnnouncement
}

type PinType string

const (
	PinAlert PinType = "alert"
	PinStory PinType = "story"
	PinPost  PinType = "post"
)

// PinnedItem promotes a feed item for a date range. ID is derived from
// (ItemType, ItemID) so re-pinning the same item replaces the record.
type PinnedItem struct {
	ID        string    `gorm:"primaryKey;size:200" json:"-"`
	ItemID    string    `gorm:"size:150;not null" json:"item_id"`
	ItemType  PinType   `gorm:"size:10;not null" json:"item_type"`
	StartDate time.Time `gorm:"not null" json:"start_date"`
	EndDate   time.Time `gorm:"not null" json:"end_date"`
}

func (p PinnedItem) EntityID() string { return p.ID }

func PinKey(itemType PinType, itemID string) string {
	return string(itemType) + ":" + itemID
}

func ValidPinType(t PinType) bool {
	return t == PinAlert || t == PinStory || t == PinPost
}
