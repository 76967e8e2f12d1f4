package models

import (
	"time"

	"gorm.io/datatypes"
)

// SettingsKey is the fixed key the settings blob is stored under.
const SettingsKey = "lovemypet-app-settings"

type Socials struct {
	Facebook  string `json:"facebook"`
	Instagram string `json:"instagram"`
	Twitter   string `json:"twitter"`
}

type GeneralSettings struct {
	AppName         string  `json:"app_name"`
	ContactEmail    string  `json:"contact_email"`
	ContactAddress  string  `json:"contact_address"`
	MaintenanceMode bool    `json:"maintenance_mode"`
	Socials         Socials `json:"socials"`
}

type UserPetSettings struct {
	DefaultUserRole   Role `json:"default_user_role"`
	AlertDurationDays int  `json:"alert_duration_days"`
}

type ModerationSettings struct {
	RequireStoryApproval bool     `json:"require_story_approval"`
	ProfanityList        []string `json:"profanity_list"`
}

// AppSettings is the process-wide configuration singleton.
type AppSettings struct {
	General           GeneralSettings    `json:"general"`
	UserPetManagement UserPetSettings    `json:"user_pet_management"`
	ContentModeration ModerationSettings `json:"content_moderation"`
}

// SettingsRecord is a key/value row holding a JSON settings blob.
type SettingsRecord struct {
	Key       string         `gorm:"primaryKey;size:100" json:"key"`
	Value     datatypes.JSON `gorm:"type:jsonb;not null" json:"value"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (SettingsRecord) TableName() string {
	return "app_settings"
}
