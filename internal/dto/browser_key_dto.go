package dto

import "time"

type BrowserKeyResponse struct {
	BrowserKey string    `json:"browser_key"`
	Token      string    `json:"token"`
	ExpiresAt  time.Time `json:"expires_at"`
}
