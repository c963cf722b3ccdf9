package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatMessage struct {
	Id            uuid.UUID
	ChatSessionId uuid.UUID
	Content       string
	Role          string
	Attachment    *Attachment
	Lawyers       []LawyerProfile
	CreatedAt     time.Time
}

type Attachment struct {
	FileName string
	FileSize int64
}
