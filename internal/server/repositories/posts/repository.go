package posts

import (
	"context"
	"time"

	"github.com/socialboard/socialboard/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, post *models.Post) (*models.Post, error)
	GetByID(ctx context.Context, id string) (*models.Post, error)
	List(ctx context.Context, userID string) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id string, userID string) error
	SelectDue(ctx context.Context, now time.Time) ([]*models.Post, error)
	MarkPosted(ctx context.Context, id string) error
}
