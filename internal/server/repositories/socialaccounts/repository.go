package socialaccounts

import (
	"context"

	"github.com/socialboard/socialboard/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, account *models.SocialAccount) (*models.SocialAccount, error)
	List(ctx context.Context, userID string) ([]*models.SocialAccount, error)
	SetActive(ctx context.Context, id string, userID string, active bool) error
	Delete(ctx context.Context, id string, userID string) error
}
