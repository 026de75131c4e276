package models

import "time"

// SocialAccount is a connected social platform handle. The connect flow does
// not run a real OAuth exchange; it records the handle the user provides.
type SocialAccount struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Platform    string    `json:"platform"`
	AccountName string    `json:"account_name"`
	AccountID   string    `json:"account_id"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}
