package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/socialboard/socialboard/internal/common"
	"github.com/socialboard/socialboard/internal/server/models"
	"github.com/socialboard/socialboard/internal/server/repositories/repomanager"
)

// canManageCampaigns lists the roles allowed to create and change campaigns.
func canManageCampaigns(role string) bool {
	return role == models.RoleAdmin || role == models.RoleMarketer
}

// CampaignService manages marketing campaigns. Campaigns are readable by the
// whole team; writes require the marketer or admin role.
type CampaignService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewCampaignService constructs a CampaignService.
func NewCampaignService(db *sql.DB, m repomanager.RepositoryManager) *CampaignService {
	return &CampaignService{db: db, repomanager: m}
}

// Create validates and inserts a campaign.
func (s *CampaignService) Create(ctx context.Context, role string, campaign *models.Campaign) (*models.Campaign, error) {
	if !canManageCampaigns(role) {
		return nil, common.ErrorForbidden
	}
	if campaign.Name == "" {
		return nil, fmt.Errorf("%w: name is required", common.ErrorValidation)
	}
	if campaign.Status == "" {
		campaign.Status = "active"
	}
	return s.repomanager.Campaigns(s.db).Create(ctx, campaign)
}

// Get returns one campaign by id.
func (s *CampaignService) Get(ctx context.Context, id string) (*models.Campaign, error) {
	return s.repomanager.Campaigns(s.db).GetByID(ctx, id)
}

// List returns all campaigns, newest first.
func (s *CampaignService) List(ctx context.Context) ([]*models.Campaign, error) {
	return s.repomanager.Campaigns(s.db).List(ctx)
}

// Update rewrites the mutable fields of a campaign.
func (s *CampaignService) Update(ctx context.Context, role string, campaign *models.Campaign) error {
	if !canManageCampaigns(role) {
		return common.ErrorForbidden
	}
	return s.repomanager.Campaigns(s.db).Update(ctx, campaign)
}

// Delete removes a campaign.
func (s *CampaignService) Delete(ctx context.Context, role string, id string) error {
	if !canManageCampaigns(role) {
		return common.ErrorForbidden
	}
	return s.repomanager.Campaigns(s.db).Delete(ctx, id)
}
