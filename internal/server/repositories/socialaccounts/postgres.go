// Package socialaccounts provides a PostgreSQL-backed repository for
// connected social platform handles.
package socialaccounts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

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

// Create inserts a new connected account. A second connection of the same
// platform for the same user maps to common.ErrorAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, account *models.SocialAccount) (*models.SocialAccount, error) {
	query := `
		INSERT INTO social_accounts (user_id, platform, account_name, account_id, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		account.UserID, account.Platform, account.AccountName, account.AccountID, account.IsActive).
		Scan(&account.ID, &account.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return account, nil
}

// List returns all connected accounts for userID.
func (r *PostgresRepository) List(ctx context.Context, userID string) ([]*models.SocialAccount, error) {
	query := `
		SELECT id, user_id, platform, account_name, account_id, is_active, created_at
		FROM social_accounts
		WHERE user_id = $1
		ORDER BY created_at
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.SocialAccount
	for rows.Next() {
		account := &models.SocialAccount{}
		if err := rows.Scan(&account.ID, &account.UserID, &account.Platform,
			&account.AccountName, &account.AccountID, &account.IsActive,
			&account.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// SetActive toggles a connected account on or off.
func (r *PostgresRepository) SetActive(ctx context.Context, id string, userID string, active bool) error {
	query := `
		UPDATE social_accounts
		SET is_active = $1
		WHERE id = $2 AND user_id = $3
	`
	res, err := r.db.ExecContext(ctx, query, active, id, userID)
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

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "SQLSTATE 23505")
}

// Delete disconnects an account owned by userID.
func (r *PostgresRepository) Delete(ctx context.Context, id string, userID string) error {
	query := `
		DELETE FROM social_accounts
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
