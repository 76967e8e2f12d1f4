package models

import "time"

type Role string

const (
	RoleUser      Role = "User"
	RoleModerator Role = "Moderator"
	RoleAdmin     Role = "Admin"
)

type UserStatus string

const (
	UserActive   UserStatus = "Active"
	UserPaused   UserStatus = "Paused"
	UserBlocked  UserStatus = "Blocked"
	UserArchived UserStatus = "Archived"
)

type VettingStatus string

const (
	VettingVerified    VettingStatus = "Verified"
	VettingPending     VettingStatus = "Pending"
	VettingNotVerified VettingStatus = "Not Verified"
)

type ContactPreference string

const (
	ContactEmail  ContactPreference = "email"
	ContactMobile ContactPreference = "mobile"
	ContactBoth   ContactPreference = "both"
	ContactNone   ContactPreference = "none"
)

// User is a community member. Users are never hard-deleted; admins archive them.
type User struct {
	ID                   string            `gorm:"primaryKey;size:64" json:"id"`
	Name                 string            `gorm:"size:255;not null" json:"name"`
	DisplayName          string            `gorm:"size:255" json:"display_name"`
	City                 string            `gorm:"size:255" json:"city"`
	ProfilePhotoURL      string            `gorm:"type:text" json:"profile_photo_url"`
	Email                string            `gorm:"size:255;not null;uniqueIndex" json:"email"`
	MobileNumber         string            `gorm:"size:50" json:"mobile_number"`
	ContactPreference    ContactPreference `gorm:"size:20;default:'email'" json:"contact_preference"`
	MemberVettedPhotoURL string            `gorm:"type:text" json:"member_vetted_photo_url,omitempty"`
	Role                 Role              `gorm:"size:20;not null;default:'User'" json:"role"`
	Status               UserStatus        `gorm:"size:20;not null;default:'Active';index" json:"status"`
	VettingStatus        VettingStatus     `gorm:"size:20;not null;default:'Pending';index" json:"vetting_status"`
	JoinDate             time.Time         `json:"join_date"`
	UpdatedAt            time.Time         `json:"updated_at"`
}

func (u User) EntityID() string { return u.ID }

func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

// CanSignIn reports whether the account may start a session.
func (u User) CanSignIn() bool {
	return u.Status != UserBlocked && u.Status != UserArchived
}

func ValidRole(r Role) bool {
	return r == RoleUser || r == RoleModerator || r == RoleAdmin
}

func ValidUserStatus(s UserStatus) bool {
	switch s {
	case UserActive, UserPaused, UserBlocked, UserArchived:
		return true
	}
	return false
}

func ValidVettingStatus(s VettingStatus) bool {
	return s == VettingVerified || s == VettingPending || s == VettingNotVerified
}
