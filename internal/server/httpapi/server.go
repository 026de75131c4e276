// Package httpapi exposes the dashboard's HTTP surface: the JSON API the
// frontend consumes and the browser-facing editor callback pages.
package httpapi

import (
	"net/http"

	"github.com/socialboard/socialboard/internal/logging"
	"github.com/socialboard/socialboard/internal/server/config"
	"github.com/socialboard/socialboard/internal/server/services"
)

type Server struct {
	config     *config.Config
	logger     logging.Logger
	users      *services.UserService
	assets     *services.AssetService
	posts      *services.PostService
	campaigns  *services.CampaignService
	accounts   *services.SocialAccountService
	analytics  *services.AnalyticsService
	copywriter *services.CopywriterService
}

// NewServer wires the handlers to their services.
func NewServer(cfg *config.Config, logger logging.Logger,
	users *services.UserService, assets *services.AssetService,
	posts *services.PostService, campaigns *services.CampaignService,
	accounts *services.SocialAccountService, analytics *services.AnalyticsService,
	copywriter *services.CopywriterService) *Server {
	return &Server{
		config:     cfg,
		logger:     logger.With("component", "httpapi"),
		users:      users,
		assets:     assets,
		posts:      posts,
		campaigns:  campaigns,
		accounts:   accounts,
		analytics:  analytics,
		copywriter: copywriter,
	}
}

// Routes builds the full handler tree. The editor callback endpoint is
// deliberately outside the auth middleware: the editor redirects a bare
// browser window there with no credentials attached.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealthz)

	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("POST /api/auth/refresh", s.handleRefresh)

	mux.Handle("GET /api/me", s.authenticated(s.handleMe))

	mux.Handle("GET /api/assets", s.authenticated(s.handleListAssets))
	mux.Handle("POST /api/assets", s.authenticated(s.handleUploadAsset))
	mux.Handle("POST /api/assets/presign", s.authenticated(s.handlePresignAsset))
	mux.Handle("GET /api/assets/{id}", s.authenticated(s.handleGetAsset))
	mux.Handle("GET /api/assets/{id}/edit-url", s.authenticated(s.handleAssetEditURL))
	mux.Handle("DELETE /api/assets/{id}", s.authenticated(s.handleDeleteAsset))
	mux.Handle("POST /api/assets/{id}/edited", s.authenticated(s.handleApplyEditedImage))

	mux.Handle("GET /api/posts", s.authenticated(s.handleListPosts))
	mux.Handle("POST /api/posts", s.authenticated(s.handleCreatePost))
	mux.Handle("GET /api/posts/{id}", s.authenticated(s.handleGetPost))
	mux.Handle("PUT /api/posts/{id}", s.authenticated(s.handleUpdatePost))
	mux.Handle("DELETE /api/posts/{id}", s.authenticated(s.handleDeletePost))

	mux.Handle("GET /api/campaigns", s.authenticated(s.handleListCampaigns))
	mux.Handle("POST /api/campaigns", s.authenticated(s.handleCreateCampaign))
	mux.Handle("GET /api/campaigns/{id}", s.authenticated(s.handleGetCampaign))
	mux.Handle("PUT /api/campaigns/{id}", s.authenticated(s.handleUpdateCampaign))
	mux.Handle("DELETE /api/campaigns/{id}", s.authenticated(s.handleDeleteCampaign))

	mux.Handle("GET /api/accounts", s.authenticated(s.handleListAccounts))
	mux.Handle("POST /api/accounts", s.authenticated(s.handleConnectAccount))
	mux.Handle("PUT /api/accounts/{id}/active", s.authenticated(s.handleSetAccountActive))
	mux.Handle("DELETE /api/accounts/{id}", s.authenticated(s.handleDisconnectAccount))

	mux.Handle("GET /api/analytics", s.authenticated(s.handleListAnalytics))
	mux.Handle("POST /api/analytics", s.authenticated(s.handleRecordAnalytics))
	mux.Handle("GET /api/analytics/summary", s.authenticated(s.handleAnalyticsSummary))

	mux.Handle("POST /api/copywriter", s.authenticated(s.handleCopywriter))

	mux.HandleFunc("/pixlr/callback", s.handlePixlrCallback)

	return s.loggingMiddleware(s.corsMiddleware(mux))
}
