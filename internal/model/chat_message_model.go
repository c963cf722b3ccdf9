package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ChatMessage struct {
	Id            uuid.UUID      `gorm:"type:uuid;primaryKey"`
	ChatSessionId uuid.UUID      `gorm:"type:uuid;not null;index:idx_chat_messages_session_created,priority:1"`
	Content       string         `gorm:"type:text;not null"`
	Role          string         `gorm:"type:varchar(16);not null"`
	Attachment    datatypes.JSON
	Lawyers       datatypes.JSON
	CreatedAt     time.Time      `gorm:"not null;index:idx_chat_messages_session_created,priority:2"`

	ChatSession *ChatSession `gorm:"foreignKey:ChatSessionId;constraint:OnDelete:CASCADE"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}

// AttachmentSnapshot is the JSON shape of ChatMessage.Attachment.
type AttachmentSnapshot struct {
	FileName string `json:"file_name"`
	FileSize int64  `json:"file_size"`
}

// LawyerSnapshot is one element of the JSON array in ChatMessage.Lawyers.
type LawyerSnapshot struct {
	Id              int64     `json:"id"`
	LawFirm         string    `json:"law_firm"`
	PhoneNumber     string    `json:"phone_number"`
	Email           string    `json:"email"`
	Website         string    `json:"website"`
	City            string    `json:"city"`
	County          string    `json:"county"`
	State           string    `json:"state"`
	CreatedAt       time.Time `json:"created_at"`
	Name            string    `json:"name"`
	Specialty       string    `json:"specialty"`
	Rating          float64   `json:"rating"`
	ProfileImageUrl string    `json:"profile_image_url"`
	Availability    string    `json:"availability"`
	IsFirmVerified  bool      `json:"is_firm_verified"`
	Description     string    `json:"description"`
	PracticeAreas   []string  `json:"practice_areas"`
}
