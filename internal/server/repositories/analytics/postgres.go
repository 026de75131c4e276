// Package analytics provides a PostgreSQL-backed repository for engagement
// snapshots. List queries join the parent post so the dashboard can show
// entries with their titles in one round trip.
package analytics

import (
	"context"
	"fmt"

	"github.com/socialboard/socialboard/internal/dbx"
	"github.com/socialboard/socialboard/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Record inserts a fetched engagement snapshot.
func (r *PostgresRepository) Record(ctx context.Context, entry *models.AnalyticsEntry) (*models.AnalyticsEntry, error) {
	query := `
		INSERT INTO analytics (post_id, platform, likes, comments, shares, impressions, clicks, engagement_rate)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, fetched_at
	`
	err := r.db.QueryRowContext(ctx, query,
		entry.PostID, entry.Platform, entry.Likes, entry.Comments, entry.Shares,
		entry.Impressions, entry.Clicks, entry.EngagementRate).
		Scan(&entry.ID, &entry.FetchedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return entry, nil
}

// List returns engagement entries for posts created by userID, newest first,
// each joined with the post title and status.
func (r *PostgresRepository) List(ctx context.Context, userID string) ([]*models.AnalyticsEntry, error) {
	query := `
		SELECT a.id, a.post_id, a.platform, a.likes, a.comments, a.shares,
		       a.impressions, a.clicks, a.engagement_rate, a.fetched_at,
		       p.title, p.status
		FROM analytics a
		JOIN posts p ON p.id = a.post_id
		WHERE p.created_by = $1
		ORDER BY a.fetched_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.AnalyticsEntry
	for rows.Next() {
		entry := &models.AnalyticsEntry{Post: &models.Post{}}
		if err := rows.Scan(&entry.ID, &entry.PostID, &entry.Platform,
			&entry.Likes, &entry.Comments, &entry.Shares,
			&entry.Impressions, &entry.Clicks, &entry.EngagementRate,
			&entry.FetchedAt, &entry.Post.Title, &entry.Post.Status); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		entry.Post.ID = entry.PostID
		result = append(result, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// Summary aggregates all engagement entries for posts created by userID.
// With no entries the sums come back zero.
func (r *PostgresRepository) Summary(ctx context.Context, userID string) (*models.AnalyticsSummary, error) {
	query := `
		SELECT COALESCE(SUM(a.likes), 0),
		       COALESCE(SUM(a.comments), 0),
		       COALESCE(SUM(a.shares), 0),
		       COALESCE(SUM(a.impressions), 0),
		       COALESCE(SUM(a.clicks), 0),
		       COALESCE(AVG(a.engagement_rate), 0)
		FROM analytics a
		JOIN posts p ON p.id = a.post_id
		WHERE p.created_by = $1
	`
	summary := &models.AnalyticsSummary{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&summary.Likes, &summary.Comments, &summary.Shares,
		&summary.Impressions, &summary.Clicks, &summary.AvgEngagementRate)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return summary, nil
}
