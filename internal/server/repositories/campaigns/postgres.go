// Package campaigns provides a PostgreSQL-backed repository for marketing
// campaigns. Campaigns are shared across the team, so reads are not scoped to
// a user; write access is enforced by role at the service layer.
package campaigns

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/socialboard/socialboard/internal/common"
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

const campaignColumns = `id, created_by, name, description, color, start_date, end_date, status, created_at`

// Create inserts a new campaign row and returns it with id and created_at set.
func (r *PostgresRepository) Create(ctx context.Context, campaign *models.Campaign) (*models.Campaign, error) {
	query := `
		INSERT INTO campaigns (created_by, name, description, color, start_date, end_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		campaign.CreatedBy, campaign.Name, campaign.Description, campaign.Color,
		campaign.StartDate, campaign.EndDate, campaign.Status).
		Scan(&campaign.ID, &campaign.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return campaign, nil
}

// GetByID returns the campaign with the given id, or common.ErrorNotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Campaign, error) {
	query := `
		SELECT ` + campaignColumns + `
		FROM campaigns
		WHERE id = $1
	`
	campaign := &models.Campaign{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&campaign.ID, &campaign.CreatedBy, &campaign.Name, &campaign.Description,
		&campaign.Color, &campaign.StartDate, &campaign.EndDate, &campaign.Status,
		&campaign.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return campaign, nil
}

// List returns all campaigns, newest first.
func (r *PostgresRepository) List(ctx context.Context) ([]*models.Campaign, error) {
	query := `
		SELECT ` + campaignColumns + `
		FROM campaigns
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Campaign
	for rows.Next() {
		campaign := &models.Campaign{}
		if err := rows.Scan(&campaign.ID, &campaign.CreatedBy, &campaign.Name,
			&campaign.Description, &campaign.Color, &campaign.StartDate,
			&campaign.EndDate, &campaign.Status, &campaign.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, campaign)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// Update rewrites the mutable fields of a campaign.
func (r *PostgresRepository) Update(ctx context.Context, campaign *models.Campaign) error {
	query := `
		UPDATE campaigns
		SET name = $1, description = $2, color = $3, start_date = $4, end_date = $5, status = $6
		WHERE id = $7
	`
	res, err := r.db.ExecContext(ctx, query,
		campaign.Name, campaign.Description, campaign.Color,
		campaign.StartDate, campaign.EndDate, campaign.Status, campaign.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// Delete removes a campaign by id.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `
		DELETE FROM campaigns
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}
	return nil
}
