package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionResponse struct {
	Id      uuid.UUID            `json:"id"`
	Title   string               `json:"title"`
	Welcome *ChatMessageResponse `json:"welcome"`
}

type GetAllSessionsResponse struct {
	Id        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type AttachmentDTO struct {
	FileName string `json:"file_name" validate:"required,max=255"`
	FileSize int64  `json:"file_size" validate:"min=0"`
}

type ChatMessageResponse struct {
	Id         uuid.UUID        `json:"id"`
	Role       string           `json:"role"`
	Content    string           `json:"content"`
	IsUser     bool             `json:"is_user"`
	CreatedAt  time.Time        `json:"created_at"`
	Attachment *AttachmentDTO   `json:"attachment,omitempty"`
	Lawyers    []LawyerResponse `json:"lawyers,omitempty"`
}

type SendMessageRequest struct {
	ChatSessionId uuid.UUID      `json:"-"`
	Content       string         `json:"content" validate:"required,max=4000"`
	Attachment    *AttachmentDTO `json:"attachment,omitempty"`
}

type SendMessageResponse struct {
	ChatSessionId uuid.UUID              `json:"chat_session_id"`
	Phase         string                 `json:"phase"`
	Sent          *ChatMessageResponse   `json:"sent"`
	Replies       []*ChatMessageResponse `json:"replies"`
	CaseInfo      *CaseInfoResponse      `json:"case_info"`
}

type CaseInfoResponse struct {
	County    string `json:"county"`
	City      string `json:"city"`
	State     string `json:"state"`
	Location  string `json:"location"`
	CaseType  string `json:"case_type"`
	Confirmed bool   `json:"confirmed"`
}

// ConfirmCaseInfoRequest pins the location (and optionally case type) for
// the rest of the session.
type ConfirmCaseInfoRequest struct {
	ChatSessionId uuid.UUID `json:"-"`
	Location      string    `json:"location" validate:"required,max=200"`
	CaseType      string    `json:"case_type" validate:"max=100"`
}

type TurnPhaseResponse struct {
	ChatSessionId uuid.UUID `json:"chat_session_id"`
	Phase         string    `json:"phase"`
}
