package models

import "time"

// AnalyticsEntry is one fetched engagement snapshot for a post on one
// platform.
type AnalyticsEntry struct {
	ID             string    `json:"id"`
	PostID         string    `json:"post_id"`
	Platform       string    `json:"platform"`
	Likes          int64     `json:"likes"`
	Comments       int64     `json:"comments"`
	Shares         int64     `json:"shares"`
	Impressions    int64     `json:"impressions"`
	Clicks         int64     `json:"clicks"`
	EngagementRate float64   `json:"engagement_rate"`
	FetchedAt      time.Time `json:"fetched_at"`

	// Post is the joined post row, populated by list queries.
	Post *Post `json:"post,omitempty"`
}

// AnalyticsSummary aggregates engagement across all entries.
type AnalyticsSummary struct {
	Likes             int64   `json:"likes"`
	Comments          int64   `json:"comments"`
	Shares            int64   `json:"shares"`
	Impressions       int64   `json:"impressions"`
	Clicks            int64   `json:"clicks"`
	AvgEngagementRate float64 `json:"avg_engagement_rate"`
}
