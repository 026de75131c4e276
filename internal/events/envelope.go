// Package events publishes domain events (published posts, edited assets) to
// a RabbitMQ topic exchange. Publishing is best-effort: callers log failures
// and move on, the dashboard flow never depends on the broker.
package events

import "time"

// Routing keys for the events the server emits.
const (
	KeyPostPublished = "post.published"
	KeyAssetEdited   = "asset.edited"
)

// Meta carries event identity and provenance.
type Meta struct {
	ID            string    `json:"id"`
	CorrelationID string    `json:"correlation_id,omitempty"`
	Source        string    `json:"source"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// Envelope is the wire shape of every event.
type Envelope struct {
	Meta Meta `json:"meta"`
	Data any  `json:"data"`
}

// PostPublished is emitted once per platform when the scheduler dispatches a
// due post.
type PostPublished struct {
	PostID    string `json:"post_id"`
	Platform  string `json:"platform"`
	CreatedBy string `json:"created_by"`
}

// AssetEdited is emitted after an external edit round trip completes.
type AssetEdited struct {
	AssetID string `json:"asset_id"`
	UserID  string `json:"user_id"`
	URL     string `json:"url"`
}
