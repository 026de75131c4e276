package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/socialboard/socialboard/internal/common"
	"github.com/socialboard/socialboard/internal/server/models"
	"github.com/socialboard/socialboard/internal/server/repositories/repomanager"
)

// canManagePosts lists the roles allowed to create and change posts. Creators
// only produce assets, they do not publish.
func canManagePosts(role string) bool {
	switch role {
	case models.RoleAdmin, models.RoleMarketer, models.RoleIntern:
		return true
	}
	return false
}

// PostService manages scheduled and draft content.
type PostService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewPostService constructs a PostService.
func NewPostService(db *sql.DB, m repomanager.RepositoryManager) *PostService {
	return &PostService{db: db, repomanager: m}
}

// Create validates and inserts a post. A scheduled post must carry a
// scheduled_at time.
func (s *PostService) Create(ctx context.Context, role string, post *models.Post) (*models.Post, error) {
	if !canManagePosts(role) {
		return nil, common.ErrorForbidden
	}
	if post.Title == "" {
		return nil, fmt.Errorf("%w: title is required", common.ErrorValidation)
	}
	if post.Status == "" {
		post.Status = models.PostDraft
	}
	if !models.ValidPostStatus(post.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", common.ErrorValidation, post.Status)
	}
	if post.Status == models.PostScheduled && post.ScheduledAt == nil {
		return nil, fmt.Errorf("%w: scheduled post needs scheduled_at", common.ErrorValidation)
	}
	return s.repomanager.Posts(s.db).Create(ctx, post)
}

// Get returns one post by id.
func (s *PostService) Get(ctx context.Context, id string) (*models.Post, error) {
	return s.repomanager.Posts(s.db).GetByID(ctx, id)
}

// List returns the caller's posts, newest first.
func (s *PostService) List(ctx context.Context, userID string) ([]*models.Post, error) {
	return s.repomanager.Posts(s.db).List(ctx, userID)
}

// Update rewrites the mutable fields of the caller's post.
func (s *PostService) Update(ctx context.Context, role string, post *models.Post) error {
	if !canManagePosts(role) {
		return common.ErrorForbidden
	}
	if !models.ValidPostStatus(post.Status) {
		return fmt.Errorf("%w: unknown status %q", common.ErrorValidation, post.Status)
	}
	return s.repomanager.Posts(s.db).Update(ctx, post)
}

// Delete removes the caller's post.
func (s *PostService) Delete(ctx context.Context, role string, id string, userID string) error {
	if !canManagePosts(role) {
		return common.ErrorForbidden
	}
	return s.repomanager.Posts(s.db).Delete(ctx, id, userID)
}

// SelectDue returns scheduled posts due at or before now. Used by the
// scheduler loop.
func (s *PostService) SelectDue(ctx context.Context, now time.Time) ([]*models.Post, error) {
	return s.repomanager.Posts(s.db).SelectDue(ctx, now)
}

// MarkPosted transitions a due post to posted.
func (s *PostService) MarkPosted(ctx context.Context, id string) error {
	return s.repomanager.Posts(s.db).MarkPosted(ctx, id)
}
