package models

import (
	"time"

	"gorm.io/datatypes"
)

// ChatThread is a private conversation between two members.
type ChatThread struct {
	ID             string                      `gorm:"primaryKey;size:64" json:"id"`
	ParticipantIDs datatypes.JSONSlice[string] `json:"participant_ids"`
	CreatedAt      time.Time                   `json:"created_at"`
}

func (t ChatThread) EntityID() string { return t.ID }

func (t ChatThread) Clone() ChatThread {
	t.ParticipantIDs = append(datatypes.JSONSlice[string](nil), t.ParticipantIDs...)
	return t
}

func (t ChatThread) HasParticipant(userID string) bool {
	for _, id := range t.ParticipantIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// Other returns the participant that is not userID.
func (t ChatThread) Other(userID string) string {
	for _, id := range t.ParticipantIDs {
		if id != userID {
			return id
		}
	}
	return ""
}

type ChatMessage struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	ChatID    string    `gorm:"size:64;not null;index" json:"chat_id"`
	SenderID  string    `gorm:"size:64;not null" json:"sender_id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	Timestamp time.Time `gorm:"not null;index" json:"timestamp"`
}

func (m ChatMessage) EntityID() string { return m.ID }
