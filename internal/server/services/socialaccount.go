package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/socialboard/socialboard/internal/common"
	"github.com/socialboard/socialboard/internal/server/models"
	"github.com/socialboard/socialboard/internal/server/repositories/repomanager"
)

// SocialAccountService tracks connected platform handles. Connecting does not
// run a real OAuth exchange, it records the handle the user supplies.
type SocialAccountService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewSocialAccountService constructs a SocialAccountService.
func NewSocialAccountService(db *sql.DB, m repomanager.RepositoryManager) *SocialAccountService {
	return &SocialAccountService{db: db, repomanager: m}
}

// Connect records a platform handle for userID. A second connection of the
// same platform surfaces as common.ErrorAlreadyExists.
func (s *SocialAccountService) Connect(ctx context.Context, userID, platform, accountName, accountID string) (*models.SocialAccount, error) {
	if platform == "" || accountName == "" {
		return nil, fmt.Errorf("%w: platform and account_name are required", common.ErrorValidation)
	}
	account := &models.SocialAccount{
		UserID:      userID,
		Platform:    platform,
		AccountName: accountName,
		AccountID:   accountID,
		IsActive:    true,
	}
	return s.repomanager.SocialAccounts(s.db).Create(ctx, account)
}

// List returns the caller's connected accounts.
func (s *SocialAccountService) List(ctx context.Context, userID string) ([]*models.SocialAccount, error) {
	return s.repomanager.SocialAccounts(s.db).List(ctx, userID)
}

// SetActive toggles a connected account on or off.
func (s *SocialAccountService) SetActive(ctx context.Context, id, userID string, active bool) error {
	return s.repomanager.SocialAccounts(s.db).SetActive(ctx, id, userID, active)
}

// Disconnect removes a connected account.
func (s *SocialAccountService) Disconnect(ctx context.Context, id, userID string) error {
	return s.repomanager.SocialAccounts(s.db).Delete(ctx, id, userID)
}
