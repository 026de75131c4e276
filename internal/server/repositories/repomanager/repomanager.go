package repomanager

import (
	"context"
	"database/sql"

	"github.com/socialboard/socialboard/internal/dbx"
	"github.com/socialboard/socialboard/internal/server/repositories/analytics"
	"github.com/socialboard/socialboard/internal/server/repositories/assets"
	"github.com/socialboard/socialboard/internal/server/repositories/campaigns"
	"github.com/socialboard/socialboard/internal/server/repositories/posts"
	"github.com/socialboard/socialboard/internal/server/repositories/refreshtokens"
	"github.com/socialboard/socialboard/internal/server/repositories/socialaccounts"
	"github.com/socialboard/socialboard/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Assets(db dbx.DBTX) assets.Repository
	Posts(db dbx.DBTX) posts.Repository
	Campaigns(db dbx.DBTX) campaigns.Repository
	SocialAccounts(db dbx.DBTX) socialaccounts.Repository
	Analytics(db dbx.DBTX) analytics.Repository
}
