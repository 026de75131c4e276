// Package assets provides a PostgreSQL-backed repository for media asset
// metadata. Binary content lives in object storage; rows here carry the
// public URL and ownership.
package assets

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/socialboard/socialboard/internal/common"
	"github.com/socialboard/socialboard/internal/dbx"
	"github.com/socialboard/socialboard/internal/server/models"
)

// PostgresRepository implements asset storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new asset row and returns it with id and created_at set.
func (r *PostgresRepository) Create(ctx context.Context, asset *models.Asset) (*models.Asset, error) {
	query := `
		INSERT INTO assets (user_id, title, type, url, generated_by_ai)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		asset.UserID, asset.Title, asset.Kind, asset.URL, asset.GeneratedByAI).
		Scan(&asset.ID, &asset.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return asset, nil
}

// GetByID returns the asset with the given id, or common.ErrorNotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Asset, error) {
	query := `
		SELECT id, user_id, title, type, url, generated_by_ai, created_at
		FROM assets
		WHERE id = $1
	`
	asset := &models.Asset{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&asset.ID, &asset.UserID, &asset.Title, &asset.Kind, &asset.URL,
		&asset.GeneratedByAI, &asset.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return asset, nil
}

// List returns all assets owned by userID, newest first.
func (r *PostgresRepository) List(ctx context.Context, userID string) ([]*models.Asset, error) {
	query := `
		SELECT id, user_id, title, type, url, generated_by_ai, created_at
		FROM assets
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Asset
	for rows.Next() {
		asset := &models.Asset{}
		if err := rows.Scan(&asset.ID, &asset.UserID, &asset.Title, &asset.Kind,
			&asset.URL, &asset.GeneratedByAI, &asset.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, asset)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// SetEditedURL replaces the stored URL of an asset after an external edit and
// flags it as AI generated. The owner check is part of the WHERE clause, so a
// wrong owner and a missing row both come back as common.ErrorNotFound.
func (r *PostgresRepository) SetEditedURL(ctx context.Context, id string, userID string, url string) error {
	query := `
		UPDATE assets
		SET url = $1, generated_by_ai = true
		WHERE id = $2 AND user_id = $3
	`
	res, err := r.db.ExecContext(ctx, query, url, id, userID)
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

// Delete removes an asset owned by userID. Missing or foreign rows map to
// common.ErrorNotFound.
func (r *PostgresRepository) Delete(ctx context.Context, id string, userID string) error {
	query := `
		DELETE FROM assets
		WHERE id = $1 AND user_id = $2
	`
	res, err := r.db.ExecContext(ctx, query, id, userID)
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
