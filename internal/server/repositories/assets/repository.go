package assets

import (
	"context"

	"github.com/socialboard/socialboard/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, asset *models.Asset) (*models.Asset, error)
	GetByID(ctx context.Context, id string) (*models.Asset, error)
	List(ctx context.Context, userID string) ([]*models.Asset, error)
	SetEditedURL(ctx context.Context, id string, userID string, url string) error
	Delete(ctx context.Context, id string, userID string) error
}
