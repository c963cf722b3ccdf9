package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatSession struct {
	Id         uuid.UUID
	BrowserKey string
	Title      string
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}
