package main

import (
	"database/sql"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/cobra"

	"github.com/socialboard/socialboard/internal/netx"
	"github.com/socialboard/socialboard/internal/server/config"
	"github.com/socialboard/socialboard/internal/server/models"
	"github.com/socialboard/socialboard/internal/server/repositories/repomanager"
	"github.com/socialboard/socialboard/internal/server/storage"
)

var (
	assetKey        string
	assetOwner      string
	assetTitle      string
	assetKind       string
	s3User          string
	s3Password      string
	s3Bucket        string
	s3Region        string
	s3Endpoint      string
	s3PublicBaseURL string
)

var assetCmd = &cobra.Command{
	Use:   "asset",
	Short: "Manage stored asset files",
}

var assetImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Upload a local file to object storage via a presigned URL",
	Args:  cobra.ExactArgs(1),
	RunE:  runAssetImport,
}

func init() {
	f := assetImportCmd.Flags()
	f.StringVar(&assetKey, "key", "", "object key; defaults to assets/<filename>")
	f.StringVar(&assetOwner, "owner", "", "user id to record the asset under; skips the metadata row when empty")
	f.StringVar(&assetTitle, "title", "", "asset title; defaults to the file name")
	f.StringVar(&assetKind, "type", "image", "asset type (image, video, text_template)")
	f.StringVar(&s3User, "s3-user", os.Getenv("S3_ROOT_USER"), "S3 access key")
	f.StringVar(&s3Password, "s3-password", os.Getenv("S3_ROOT_PASSWORD"), "S3 secret key")
	f.StringVar(&s3Bucket, "s3-bucket", "assets", "S3 bucket")
	f.StringVar(&s3Region, "s3-region", "us-east-1", "S3 region")
	f.StringVar(&s3Endpoint, "s3-endpoint", "http://127.0.0.1:9000/", "S3 endpoint")
	f.StringVar(&s3PublicBaseURL, "s3-public-base", "http://127.0.0.1:9000", "public base URL")
	assetCmd.AddCommand(assetImportCmd)
}

func runAssetImport(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	key := assetKey
	if key == "" {
		key = "assets/" + filepath.Base(path)
	}
	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.S3RootUser = s3User
	cfg.S3RootPassword = s3Password
	cfg.S3Bucket = s3Bucket
	cfg.S3Region = s3Region
	cfg.S3BaseEndpoint = s3Endpoint
	cfg.S3PublicBaseURL = s3PublicBaseURL

	store := storage.NewS3Store(cfg)
	url, err := store.PresignPut(cmd.Context(), key)
	if err != nil {
		return fmt.Errorf("presign: %w", err)
	}
	if err := netx.UploadToPresignedURL(url, data, contentType); err != nil {
		return fmt.Errorf("upload: %w", err)
	}

	publicURL := store.PublicURL(key)
	fmt.Println(publicURL)

	if assetOwner == "" {
		return nil
	}
	if !models.ValidAssetKind(assetKind) {
		return fmt.Errorf("unknown asset type %q", assetKind)
	}

	if dsn == "" {
		return fmt.Errorf("--dsn or DATABASE_DSN is required to record the asset")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	rm, err := repomanager.NewPostgresRepositoryManager()
	if err != nil {
		return err
	}

	title := assetTitle
	if title == "" {
		title = filepath.Base(path)
	}
	asset := &models.Asset{UserID: assetOwner, Title: title, Kind: assetKind, URL: publicURL}
	created, err := rm.Assets(db).Create(cmd.Context(), asset)
	if err != nil {
		return fmt.Errorf("record asset: %w", err)
	}

	fmt.Printf("recorded asset %s for user %s\n", created.ID, assetOwner)
	return nil
}
