package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/socialboard/socialboard/internal/dbx"
	"github.com/socialboard/socialboard/internal/events"
	"github.com/socialboard/socialboard/internal/logging"
	"github.com/socialboard/socialboard/internal/server/models"
	analyticsrepo "github.com/socialboard/socialboard/internal/server/repositories/analytics"
	assetsrepo "github.com/socialboard/socialboard/internal/server/repositories/assets"
	campaignsrepo "github.com/socialboard/socialboard/internal/server/repositories/campaigns"
	postsrepo "github.com/socialboard/socialboard/internal/server/repositories/posts"
	refreshtokensrepo "github.com/socialboard/socialboard/internal/server/repositories/refreshtokens"
	"github.com/socialboard/socialboard/internal/server/repositories/repomanager"
	socialaccountsrepo "github.com/socialboard/socialboard/internal/server/repositories/socialaccounts"
	usersrepo "github.com/socialboard/socialboard/internal/server/repositories/users"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

type nopLogger struct{}

func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}
func (l nopLogger) With(...any) logging.Logger          { return l }

// --- fake repositories ---

type fakeUsersRepo struct {
	createOut *models.User
	createErr error
	getOut    *models.User
	getErr    error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	return u, nil
}
func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}
func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

type fakeRefreshRepo struct {
	findOut   *models.RefreshToken
	findErr   error
	delErr    error
	createErr error
}

func (f *fakeRefreshRepo) Create(ctx context.Context, userID string, token string, validity time.Duration) error {
	return f.createErr
}
func (f *fakeRefreshRepo) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}
func (f *fakeRefreshRepo) Delete(ctx context.Context, token string) error { return f.delErr }
func (f *fakeRefreshRepo) DeleteExpired(ctx context.Context) error        { return nil }

type fakeAssetsRepo struct {
	createOut *models.Asset
	createErr error
	getOut    *models.Asset
	getErr    error
	listOut   []*models.Asset
	listErr   error

	setEditedErr    error
	setEditedID     string
	setEditedUserID string
	setEditedURL    string

	delErr error
}

func (f *fakeAssetsRepo) Create(ctx context.Context, a *models.Asset) (*models.Asset, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	return a, nil
}
func (f *fakeAssetsRepo) GetByID(ctx context.Context, id string) (*models.Asset, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}
func (f *fakeAssetsRepo) List(ctx context.Context, userID string) ([]*models.Asset, error) {
	return f.listOut, f.listErr
}
func (f *fakeAssetsRepo) SetEditedURL(ctx context.Context, id, userID, url string) error {
	f.setEditedID, f.setEditedUserID, f.setEditedURL = id, userID, url
	return f.setEditedErr
}
func (f *fakeAssetsRepo) Delete(ctx context.Context, id, userID string) error { return f.delErr }

type fakePostsRepo struct {
	createErr error
	getOut    *models.Post
	getErr    error
	listOut   []*models.Post
	updateErr error
	delErr    error

	dueOut []*models.Post
	dueErr error

	markedIDs  []string
	markErrFor map[string]error
}

func (f *fakePostsRepo) Create(ctx context.Context, p *models.Post) (*models.Post, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return p, nil
}
func (f *fakePostsRepo) GetByID(ctx context.Context, id string) (*models.Post, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}
func (f *fakePostsRepo) List(ctx context.Context, userID string) ([]*models.Post, error) {
	return f.listOut, nil
}
func (f *fakePostsRepo) Update(ctx context.Context, p *models.Post) error { return f.updateErr }
func (f *fakePostsRepo) Delete(ctx context.Context, id, userID string) error {
	return f.delErr
}
func (f *fakePostsRepo) SelectDue(ctx context.Context, now time.Time) ([]*models.Post, error) {
	return f.dueOut, f.dueErr
}
func (f *fakePostsRepo) MarkPosted(ctx context.Context, id string) error {
	if err, ok := f.markErrFor[id]; ok {
		return err
	}
	f.markedIDs = append(f.markedIDs, id)
	return nil
}

type fakeCampaignsRepo struct {
	createErr error
	getOut    *models.Campaign
	listOut   []*models.Campaign
	updateErr error
	delErr    error
}

func (f *fakeCampaignsRepo) Create(ctx context.Context, c *models.Campaign) (*models.Campaign, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return c, nil
}
func (f *fakeCampaignsRepo) GetByID(ctx context.Context, id string) (*models.Campaign, error) {
	return f.getOut, nil
}
func (f *fakeCampaignsRepo) List(ctx context.Context) ([]*models.Campaign, error) {
	return f.listOut, nil
}
func (f *fakeCampaignsRepo) Update(ctx context.Context, c *models.Campaign) error {
	return f.updateErr
}
func (f *fakeCampaignsRepo) Delete(ctx context.Context, id string) error { return f.delErr }

type fakeSocialAccountsRepo struct {
	createErr error
	listOut   []*models.SocialAccount
	setErr    error
	delErr    error
}

func (f *fakeSocialAccountsRepo) Create(ctx context.Context, a *models.SocialAccount) (*models.SocialAccount, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return a, nil
}
func (f *fakeSocialAccountsRepo) List(ctx context.Context, userID string) ([]*models.SocialAccount, error) {
	return f.listOut, nil
}
func (f *fakeSocialAccountsRepo) SetActive(ctx context.Context, id, userID string, active bool) error {
	return f.setErr
}
func (f *fakeSocialAccountsRepo) Delete(ctx context.Context, id, userID string) error {
	return f.delErr
}

type fakeAnalyticsRepo struct {
	recordErr  error
	listOut    []*models.AnalyticsEntry
	summaryOut *models.AnalyticsSummary
}

func (f *fakeAnalyticsRepo) Record(ctx context.Context, e *models.AnalyticsEntry) (*models.AnalyticsEntry, error) {
	if f.recordErr != nil {
		return nil, f.recordErr
	}
	return e, nil
}
func (f *fakeAnalyticsRepo) List(ctx context.Context, userID string) ([]*models.AnalyticsEntry, error) {
	return f.listOut, nil
}
func (f *fakeAnalyticsRepo) Summary(ctx context.Context, userID string) (*models.AnalyticsSummary, error) {
	return f.summaryOut, nil
}

// --- fake repository manager ---

type fakeRepoManager struct {
	users          *fakeUsersRepo
	refreshTokens  *fakeRefreshRepo
	assets         *fakeAssetsRepo
	posts          *fakePostsRepo
	campaigns      *fakeCampaignsRepo
	socialAccounts *fakeSocialAccountsRepo
	analytics      *fakeAnalyticsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) usersrepo.Repository          { return m.users }
func (m *fakeRepoManager) RefreshTokens(dbx.DBTX) refreshtokensrepo.Repository {
	return m.refreshTokens
}
func (m *fakeRepoManager) Assets(dbx.DBTX) assetsrepo.Repository       { return m.assets }
func (m *fakeRepoManager) Posts(dbx.DBTX) postsrepo.Repository         { return m.posts }
func (m *fakeRepoManager) Campaigns(dbx.DBTX) campaignsrepo.Repository { return m.campaigns }
func (m *fakeRepoManager) SocialAccounts(dbx.DBTX) socialaccountsrepo.Repository {
	return m.socialAccounts
}
func (m *fakeRepoManager) Analytics(dbx.DBTX) analyticsrepo.Repository { return m.analytics }

var _ repomanager.RepositoryManager = (*fakeRepoManager)(nil)

// --- fake storage and events ---

type fakeStore struct {
	uploadedKey         string
	uploadedData        []byte
	uploadedContentType string
	uploadedOverwrite   bool
	uploadErr           error
	publicBase          string
}

func (f *fakeStore) Upload(ctx context.Context, key string, data []byte, contentType string, overwrite bool) (string, error) {
	f.uploadedKey, f.uploadedData, f.uploadedContentType, f.uploadedOverwrite = key, data, contentType, overwrite
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	return f.PublicURL(key), nil
}
func (f *fakeStore) PresignPut(ctx context.Context, key string) (string, error) {
	return f.PublicURL(key) + "?sig=x", nil
}
func (f *fakeStore) PublicURL(key string) string {
	base := f.publicBase
	if base == "" {
		base = "http://cdn.local"
	}
	return base + "/" + key
}

type fakePublisher struct {
	keys      []string
	envelopes []events.Envelope
	err       error
}

func (f *fakePublisher) Publish(ctx context.Context, key string, msg events.Envelope) error {
	if f.err != nil {
		return f.err
	}
	f.keys = append(f.keys, key)
	f.envelopes = append(f.envelopes, msg)
	return nil
}
func (f *fakePublisher) Close() error { return nil }
