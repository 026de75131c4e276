package models

import "time"

// Post statuses.
const (
	PostDraft     = "draft"
	PostScheduled = "scheduled"
	PostPosted    = "posted"
)

// Post is a piece of scheduled or published content. Platforms holds the
// platform names the post targets.
type Post struct {
	ID          string     `json:"id"`
	CreatedBy   string     `json:"created_by"`
	CampaignID  *string    `json:"campaign_id,omitempty"`
	AssetID     *string    `json:"asset_id,omitempty"`
	Title       string     `json:"title"`
	Content     string     `json:"content,omitempty"`
	Platforms   []string   `json:"platforms"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ValidPostStatus reports whether s is one of the known post statuses.
func ValidPostStatus(s string) bool {
	switch s {
	case PostDraft, PostScheduled, PostPosted:
		return true
	}
	return false
}
