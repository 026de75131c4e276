package models

import "time"

// Asset kinds.
const (
	AssetImage        = "image"
	AssetVideo        = "video"
	AssetTextTemplate = "text_template"
)

// Asset is a stored media object with metadata tracked by the dashboard.
// URL and GeneratedByAI are mutated when an external edit round trip
// completes.
type Asset struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Title         string    `json:"title,omitempty"`
	Kind          string    `json:"type"`
	URL           string    `json:"url,omitempty"`
	GeneratedByAI bool      `json:"generated_by_ai"`
	CreatedAt     time.Time `json:"created_at"`
}

// ValidAssetKind reports whether k is one of the known asset kinds.
func ValidAssetKind(k string) bool {
	switch k {
	case AssetImage, AssetVideo, AssetTextTemplate:
		return true
	}
	return false
}
