package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByChatSessionID struct {
	ChatSessionID uuid.UUID
}

func (s ByChatSessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chat_session_id = ?", s.ChatSessionID)
}

// OwnedByBrowser scopes sessions to the browser that created them.
type OwnedByBrowser struct {
	BrowserKey string
}

func (s OwnedByBrowser) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("browser_key = ?", s.BrowserKey)
}

type ByRole struct {
	Role string
}

func (s ByRole) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("role = ?", s.Role)
}
