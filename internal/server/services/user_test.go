package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/socialboard/socialboard/internal/common"
	"github.com/socialboard/socialboard/internal/server/auth"
	"github.com/socialboard/socialboard/internal/server/config"
	"github.com/socialboard/socialboard/internal/server/models"
)

func newUserService(t *testing.T, rm *fakeRepoManager) *UserService {
	t.Helper()
	db, _ := newSQLMockDB(t)
	t.Cleanup(func() { db.Close() })
	cfg := &config.Config{
		SecretKey:                    "k",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 2 * time.Hour,
	}
	return NewUserService(db, rm, cfg)
}

func TestRegister_Success(t *testing.T) {
	rm := &fakeRepoManager{users: &fakeUsersRepo{}}
	s := newUserService(t, rm)

	u, err := s.Register(context.Background(), "alice@example.com", "Alice", "pa55word", models.RoleMarketer)
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if u.Email != "alice@example.com" || u.Role != models.RoleMarketer {
		t.Fatalf("unexpected user: %+v", u)
	}
	if u.PasswordHash == "" || u.PasswordHash == "pa55word" {
		t.Fatalf("password was not hashed: %q", u.PasswordHash)
	}
}

func TestRegister_DefaultRole(t *testing.T) {
	rm := &fakeRepoManager{users: &fakeUsersRepo{}}
	s := newUserService(t, rm)

	u, err := s.Register(context.Background(), "bob@example.com", "Bob", "pw", "")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if u.Role != models.RoleCreator {
		t.Fatalf("want creator role, got %q", u.Role)
	}
}

func TestRegister_UnknownRole(t *testing.T) {
	rm := &fakeRepoManager{users: &fakeUsersRepo{}}
	s := newUserService(t, rm)

	_, err := s.Register(context.Background(), "bob@example.com", "Bob", "pw", "superuser")
	if !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("want common.ErrorValidation, got %v", err)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	rm := &fakeRepoManager{users: &fakeUsersRepo{createErr: common.ErrorAlreadyExists}}
	s := newUserService(t, rm)

	_, err := s.Register(context.Background(), "alice@example.com", "Alice", "pw", models.RoleAdmin)
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("want common.ErrorAlreadyExists, got %v", err)
	}
}

func TestLogin_Success(t *testing.T) {
	hash, err := auth.HashPassword("pa55word")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	rm := &fakeRepoManager{
		users:         &fakeUsersRepo{getOut: &models.User{ID: "u-1", Email: "alice@example.com", PasswordHash: hash, Role: models.RoleAdmin}},
		refreshTokens: &fakeRefreshRepo{},
	}
	s := newUserService(t, rm)

	user, pair, err := s.Login(context.Background(), "alice@example.com", "pa55word")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if user.ID != "u-1" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("expected token pair, got %+v", pair)
	}

	claims, err := auth.ParseToken(pair.AccessToken, []byte("k"))
	if err != nil {
		t.Fatalf("ParseToken error: %v", err)
	}
	if claims.UserID != "u-1" || claims.Role != models.RoleAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	hash, _ := auth.HashPassword("correct")
	rm := &fakeRepoManager{
		users:         &fakeUsersRepo{getOut: &models.User{ID: "u-1", PasswordHash: hash}},
		refreshTokens: &fakeRefreshRepo{},
	}
	s := newUserService(t, rm)

	_, _, err := s.Login(context.Background(), "alice@example.com", "wrong")
	if !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("want common.ErrorUnauthorized, got %v", err)
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	rm := &fakeRepoManager{users: &fakeUsersRepo{getErr: common.ErrorNotFound}}
	s := newUserService(t, rm)

	_, _, err := s.Login(context.Background(), "ghost@example.com", "pw")
	if !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("want common.ErrorUnauthorized, got %v", err)
	}
}

func TestRefreshToken_Expired(t *testing.T) {
	rm := &fakeRepoManager{
		refreshTokens: &fakeRefreshRepo{
			findOut: &models.RefreshToken{UserID: "u-1", Expires: time.Now().Add(-time.Minute)},
		},
	}
	s := newUserService(t, rm)

	_, err := s.RefreshToken(context.Background(), "stale")
	if !errors.Is(err, common.ErrRefreshTokenExpired) {
		t.Fatalf("want common.ErrRefreshTokenExpired, got %v", err)
	}
}
