// Package storage puts asset bytes into an S3-compatible object store
// (MinIO in development) and hands out the public URLs the dashboard serves
// to browsers.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"github.com/socialboard/socialboard/internal/common"
	sc "github.com/socialboard/socialboard/internal/server/config"
)

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
)

// Store is the object storage surface the services depend on. Upload returns
// the public URL of the stored object.
type Store interface {
	Upload(ctx context.Context, key string, data []byte, contentType string, overwrite bool) (string, error)
	PresignPut(ctx context.Context, key string) (string, error)
	PublicURL(key string) string
}

// S3Store implements Store against any S3-compatible endpoint.
type S3Store struct {
	config *sc.Config
}

// NewS3Store constructs a store from the server configuration.
func NewS3Store(config *sc.Config) *S3Store {
	return &S3Store{config: config}
}

func (s *S3Store) getClient() (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,     // MINIO_ROOT_USER
			s.config.S3RootPassword, // MINIO_ROOT_PASSWORD
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return client, nil
}

// Upload writes data under key. With overwrite false the put carries
// If-None-Match: * so an existing object makes it fail, which is mapped to
// common.ErrorAlreadyExists.
func (s *S3Store) Upload(ctx context.Context, key string, data []byte, contentType string, overwrite bool) (string, error) {
	client, err := s.getClient()
	if err != nil {
		return "", err
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.config.S3Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	}
	if !overwrite {
		input.IfNoneMatch = aws.String("*")
	}

	if _, err := putObject(client, ctx, input); err != nil {
		if isPreconditionFailed(err) {
			return "", common.ErrorAlreadyExists
		}
		return "", fmt.Errorf("put object: %w", err)
	}

	return s.PublicURL(key), nil
}

// PresignPut returns a presigned PUT URL for key, valid for 15 minutes.
func (s *S3Store) PresignPut(ctx context.Context, key string) (string, error) {
	client, err := s.getClient()
	if err != nil {
		return "", err
	}

	req, err := presignPutObject(newS3PresignClient(client), ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.config.S3Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}

// PublicURL returns the browser-facing URL of an object.
func (s *S3Store) PublicURL(key string) string {
	base := strings.TrimRight(s.config.S3PublicBaseURL, "/")
	return fmt.Sprintf("%s/%s/%s", base, s.config.S3Bucket, key)
}

func isPreconditionFailed(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode() == "PreconditionFailed"
	}
	return false
}
