package services

import (
	"context"
	"database/sql"

	"github.com/socialboard/socialboard/internal/server/models"
	"github.com/socialboard/socialboard/internal/server/repositories/repomanager"
)

// AnalyticsService reads engagement snapshots for the dashboard charts.
type AnalyticsService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewAnalyticsService constructs an AnalyticsService.
func NewAnalyticsService(db *sql.DB, m repomanager.RepositoryManager) *AnalyticsService {
	return &AnalyticsService{db: db, repomanager: m}
}

// Record stores a fetched engagement snapshot for a post.
func (s *AnalyticsService) Record(ctx context.Context, entry *models.AnalyticsEntry) (*models.AnalyticsEntry, error) {
	return s.repomanager.Analytics(s.db).Record(ctx, entry)
}

// List returns engagement entries for the caller's posts, joined with post
// titles, newest first.
func (s *AnalyticsService) List(ctx context.Context, userID string) ([]*models.AnalyticsEntry, error) {
	return s.repomanager.Analytics(s.db).List(ctx, userID)
}

// Summary aggregates engagement across all of the caller's posts.
func (s *AnalyticsService) Summary(ctx context.Context, userID string) (*models.AnalyticsSummary, error) {
	return s.repomanager.Analytics(s.db).Summary(ctx, userID)
}
