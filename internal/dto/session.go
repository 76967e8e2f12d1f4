package dto

import "github.com/lovemypet/backend/internal/models"

type SessionRequest struct {
	Email string `json:"email"`
}

type SignupRequest struct {
	Name              string `json:"name"`
	DisplayName       string `json:"display_name"`
	Email             string `json:"email"`
	City              string `json:"city"`
	MobileNumber      string `json:"mobile_number"`
	ContactPreference string `json:"contact_preference"`
	ProfilePhotoURL   string `json:"profile_photo_url"`
}

type SessionResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

type UpdateProfileRequest struct {
	Name                 *string `json:"name"`
	DisplayName          *string `json:"display_name"`
	City                 *string `json:"city"`
	ProfilePhotoURL      *string `json:"profile_photo_url"`
	MobileNumber         *string `json:"mobile_number"`
	ContactPreference    *string `json:"contact_preference"`
	MemberVettedPhotoURL *string `json:"member_vetted_photo_url"`
}

type AdminUpdateUserRequest struct {
	Role          *string `json:"role"`
	Status        *string `json:"status"`
	VettingStatus *string `json:"vetting_status"`
}

// MemberResponse is a member profile with their pets.
type MemberResponse struct {
	User models.User  `json:"user"`
	Pets []models.Pet `json:"pets"`
}
