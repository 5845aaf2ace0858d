package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/BruksfildServices01/salon-manager/internal/config"
)

// Uploader grava um objeto e devolve a URL pública.
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, body []byte) (string, error)
}

type S3Store struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

// NewS3 funciona com AWS e com storages compatíveis (MinIO, R2, Supabase Storage).
func NewS3(cfg *config.Config) *S3Store {
	opts := s3.Options{
		Region:      cfg.S3Region,
		Credentials: credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, ""),
	}
	if cfg.S3Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.S3Endpoint)
		opts.UsePathStyle = true
	}

	publicURL := strings.TrimRight(cfg.S3PublicURL, "/")
	if publicURL == "" && cfg.S3Endpoint != "" {
		publicURL = strings.TrimRight(cfg.S3Endpoint, "/") + "/" + cfg.S3Bucket
	}
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, cfg.S3Region)
	}

	return &S3Store{
		client:    s3.New(opts),
		bucket:    cfg.S3Bucket,
		publicURL: publicURL,
	}
}

func (s *S3Store) Upload(ctx context.Context, key, contentType string, body []byte) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(body),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("public, max-age=31536000"),
	})
	if err != nil {
		return "", fmt.Errorf("s3 put %s: %w", key, err)
	}
	return s.publicURL + "/" + key, nil
}
