package analytics

import (
	"context"

	"github.com/socialboard/socialboard/internal/server/models"
)

type Repository interface {
	Record(ctx context.Context, entry *models.AnalyticsEntry) (*models.AnalyticsEntry, error)
	List(ctx context.Context, userID string) ([]*models.AnalyticsEntry, error)
	Summary(ctx context.Context, userID string) (*models.AnalyticsSummary, error)
}
