package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/socialboard/socialboard/internal/common"
	"github.com/socialboard/socialboard/internal/server/models"
)

func newPostService(t *testing.T, rm *fakeRepoManager) *PostService {
	t.Helper()
	db, _ := newSQLMockDB(t)
	t.Cleanup(func() { db.Close() })
	return NewPostService(db, rm)
}

func TestPostCreate_RoleGate(t *testing.T) {
	rm := &fakeRepoManager{posts: &fakePostsRepo{}}
	s := newPostService(t, rm)

	post := &models.Post{CreatedBy: "u-1", Title: "launch"}
	if _, err := s.Create(context.Background(), models.RoleCreator, post); !errors.Is(err, common.ErrorForbidden) {
		t.Fatalf("creator must not create posts, got %v", err)
	}
	if _, err := s.Create(context.Background(), models.RoleIntern, post); err != nil {
		t.Fatalf("intern should create posts, got %v", err)
	}
}

func TestPostCreate_DefaultsToDraft(t *testing.T) {
	rm := &fakeRepoManager{posts: &fakePostsRepo{}}
	s := newPostService(t, rm)

	p, err := s.Create(context.Background(), models.RoleMarketer, &models.Post{CreatedBy: "u-1", Title: "t"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if p.Status != models.PostDraft {
		t.Fatalf("want draft, got %q", p.Status)
	}
}

func TestPostCreate_ScheduledNeedsTime(t *testing.T) {
	rm := &fakeRepoManager{posts: &fakePostsRepo{}}
	s := newPostService(t, rm)

	post := &models.Post{CreatedBy: "u-1", Title: "t", Status: models.PostScheduled}
	if _, err := s.Create(context.Background(), models.RoleAdmin, post); !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("want common.ErrorValidation, got %v", err)
	}

	at := time.Now().Add(time.Hour)
	post.ScheduledAt = &at
	if _, err := s.Create(context.Background(), models.RoleAdmin, post); err != nil {
		t.Fatalf("Create error: %v", err)
	}
}

func TestPostCreate_MissingTitle(t *testing.T) {
	rm := &fakeRepoManager{posts: &fakePostsRepo{}}
	s := newPostService(t, rm)

	if _, err := s.Create(context.Background(), models.RoleAdmin, &models.Post{CreatedBy: "u-1"}); !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("want common.ErrorValidation, got %v", err)
	}
}

func TestCampaignCreate_RoleGate(t *testing.T) {
	rm := &fakeRepoManager{campaigns: &fakeCampaignsRepo{}}
	db, _ := newSQLMockDB(t)
	defer db.Close()
	s := NewCampaignService(db, rm)

	c := &models.Campaign{CreatedBy: "u-1", Name: "summer"}
	if _, err := s.Create(context.Background(), models.RoleIntern, c); !errors.Is(err, common.ErrorForbidden) {
		t.Fatalf("intern must not create campaigns, got %v", err)
	}
	got, err := s.Create(context.Background(), models.RoleMarketer, c)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.Status != "active" {
		t.Fatalf("want default active status, got %q", got.Status)
	}
}
