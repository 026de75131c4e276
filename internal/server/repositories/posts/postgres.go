// Package posts provides a PostgreSQL-backed repository for scheduled and
// published content. The platforms column is JSONB and is marshalled on the
// way in and out.
package posts

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/socialboard/socialboard/internal/common"
	"github.com/socialboard/socialboard/internal/dbx"
	"github.com/socialboard/socialboard/internal/server/models"
)

// PostgresRepository implements post storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const postColumns = `id, created_by, campaign_id, asset_id, title, content, platforms, scheduled_at, status, created_at`

// Create inserts a new post row and returns it with id and created_at set.
func (r *PostgresRepository) Create(ctx context.Context, post *models.Post) (*models.Post, error) {
	platforms, err := json.Marshal(post.Platforms)
	if err != nil {
		return nil, fmt.Errorf("marshal platforms: %w", err)
	}
	query := `
		INSERT INTO posts (created_by, campaign_id, asset_id, title, content, platforms, scheduled_at, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`
	err = r.db.QueryRowContext(ctx, query,
		post.CreatedBy, post.CampaignID, post.AssetID, post.Title, post.Content,
		platforms, post.ScheduledAt, post.Status).
		Scan(&post.ID, &post.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return post, nil
}

// GetByID returns the post with the given id, or common.ErrorNotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts
		WHERE id = $1
	`
	post, err := scanPost(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return post, nil
}

// List returns all posts created by userID, newest first.
func (r *PostgresRepository) List(ctx context.Context, userID string) ([]*models.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts
		WHERE created_by = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// Update rewrites the mutable fields of a post. The creator check is part of
// the WHERE clause, so a wrong creator and a missing row both come back as
// common.ErrorNotFound.
func (r *PostgresRepository) Update(ctx context.Context, post *models.Post) error {
	platforms, err := json.Marshal(post.Platforms)
	if err != nil {
		return fmt.Errorf("marshal platforms: %w", err)
	}
	query := `
		UPDATE posts
		SET campaign_id = $1, asset_id = $2, title = $3, content = $4,
		    platforms = $5, scheduled_at = $6, status = $7
		WHERE id = $8 AND created_by = $9
	`
	res, err := r.db.ExecContext(ctx, query,
		post.CampaignID, post.AssetID, post.Title, post.Content,
		platforms, post.ScheduledAt, post.Status, post.ID, post.CreatedBy)
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

// Delete removes a post created by userID.
func (r *PostgresRepository) Delete(ctx context.Context, id string, userID string) error {
	query := `
		DELETE FROM posts
		WHERE id = $1 AND created_by = $2
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

// SelectDue returns scheduled posts whose scheduled_at is at or before now.
func (r *PostgresRepository) SelectDue(ctx context.Context, now time.Time) ([]*models.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts
		WHERE status = 'scheduled' AND scheduled_at <= $1
		ORDER BY scheduled_at
	`
	rows, err := r.db.QueryContext(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// MarkPosted transitions a post to the posted status.
func (r *PostgresRepository) MarkPosted(ctx context.Context, id string) error {
	query := `
		UPDATE posts
		SET status = 'posted'
		WHERE id = $1 AND status = 'scheduled'
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*models.Post, error) {
	post := &models.Post{}
	var platforms []byte
	err := row.Scan(&post.ID, &post.CreatedBy, &post.CampaignID, &post.AssetID,
		&post.Title, &post.Content, &platforms, &post.ScheduledAt,
		&post.Status, &post.CreatedAt)
	if err != nil {
		return nil, err
	}
	if len(platforms) > 0 {
		if err := json.Unmarshal(platforms, &post.Platforms); err != nil {
			return nil, fmt.Errorf("unmarshal platforms: %w", err)
		}
	}
	return post, nil
}
