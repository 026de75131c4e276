package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/socialboard/socialboard/internal/dataurl"
	"github.com/socialboard/socialboard/internal/editsession"
	"github.com/socialboard/socialboard/internal/events"
	"github.com/socialboard/socialboard/internal/imageconv"
	"github.com/socialboard/socialboard/internal/logging"
	"github.com/socialboard/socialboard/internal/server/config"
	"github.com/socialboard/socialboard/internal/server/models"
	"github.com/socialboard/socialboard/internal/server/repositories/repomanager"
	"github.com/socialboard/socialboard/internal/server/storage"
)

// nowUnixMilli is a seam for tests that pin the edited object key.
var nowUnixMilli = func() int64 { return time.Now().UnixMilli() }

var _ editsession.Uploader = (*AssetService)(nil)

// AssetService manages media assets: direct uploads, listing, and applying
// the result of an external editor round trip.
type AssetService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	store       storage.Store
	publisher   events.Publisher
	logger      logging.Logger
	config      *config.Config
}

// NewAssetService constructs an AssetService. publisher may be nil, in which
// case no events are emitted.
func NewAssetService(db *sql.DB, m repomanager.RepositoryManager, store storage.Store,
	publisher events.Publisher, logger logging.Logger, cfg *config.Config) *AssetService {
	return &AssetService{
		db:          db,
		repomanager: m,
		store:       store,
		publisher:   publisher,
		logger:      logger.With("service", "assets"),
		config:      cfg,
	}
}

// Upload stores the uploaded bytes and records an asset row. Images in
// formats the dashboard does not serve directly (WebP, JPEG) are converted
// to PNG first.
func (s *AssetService) Upload(ctx context.Context, userID, title, kind string, data []byte, contentType string) (*models.Asset, error) {
	if !models.ValidAssetKind(kind) {
		return nil, fmt.Errorf("unknown asset type %q", kind)
	}

	ext := extensionFor(contentType)
	if kind == models.AssetImage && !imageconv.IsPNG(data) {
		converted, err := imageconv.ToPNG(data)
		if err != nil {
			return nil, fmt.Errorf("convert image: %w", err)
		}
		data = converted
		contentType = "image/png"
		ext = ".png"
	}

	key := fmt.Sprintf("assets/%s%s", uuid.New(), ext)
	url, err := s.store.Upload(ctx, key, data, contentType, false)
	if err != nil {
		return nil, fmt.Errorf("store asset: %w", err)
	}

	asset := &models.Asset{UserID: userID, Title: title, Kind: kind, URL: url}
	return s.repomanager.Assets(s.db).Create(ctx, asset)
}

// Get returns one asset by id.
func (s *AssetService) Get(ctx context.Context, id string) (*models.Asset, error) {
	return s.repomanager.Assets(s.db).GetByID(ctx, id)
}

// List returns the caller's assets, newest first.
func (s *AssetService) List(ctx context.Context, userID string) ([]*models.Asset, error) {
	return s.repomanager.Assets(s.db).List(ctx, userID)
}

// Delete removes the caller's asset.
func (s *AssetService) Delete(ctx context.Context, id string, userID string) error {
	return s.repomanager.Assets(s.db).Delete(ctx, id, userID)
}

// PresignUpload hands out a presigned PUT URL for bulk imports.
func (s *AssetService) PresignUpload(ctx context.Context, key string) (string, error) {
	return s.store.PresignPut(ctx, key)
}

// PublicURL reports where a stored key will be served from.
func (s *AssetService) PublicURL(key string) string {
	return s.store.PublicURL(key)
}

// ApplyEditedImage persists an edited image delivered by the editor callback.
// The data URI payload is decoded and stored verbatim under a fresh
// timestamped key, so repeated edits of the same asset never collide, then
// the asset row is pointed at the new URL. The returned string is the new
// public URL.
func (s *AssetService) ApplyEditedImage(ctx context.Context, userID, assetID, dataURI string) (string, error) {
	data, _, err := dataurl.Decode(dataURI)
	if err != nil {
		return "", fmt.Errorf("Upload failed: %v", err)
	}

	key := fmt.Sprintf("assets/%s-edited-%d.png", userID, nowUnixMilli())
	url, err := s.store.Upload(ctx, key, data, "image/png", false)
	if err != nil {
		return "", fmt.Errorf("Upload failed: %v", err)
	}

	if err := s.repomanager.Assets(s.db).SetEditedURL(ctx, assetID, userID, url); err != nil {
		return "", fmt.Errorf("Database update failed: %v", err)
	}

	if s.publisher != nil {
		env := events.NewEnvelope("socialboard.server", events.AssetEdited{
			AssetID: assetID, UserID: userID, URL: url,
		})
		if err := s.publisher.Publish(ctx, events.KeyAssetEdited, env); err != nil {
			s.logger.Warn(ctx, "publish asset.edited failed", "error", err)
		}
	}

	return url, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	case "video/mp4":
		return ".mp4"
	default:
		return ""
	}
}
