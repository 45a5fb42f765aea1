// Package storage provides S3-compatible object storage for campaign photos.
// Uploads go straight from the browser to the bucket through presigned URLs.
package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	appconfig "fundfusion/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const signingRegion = "us-east-1"

// Service defines the interface for storage operations
type Service interface {
	// GeneratePresignedUploadURL creates a time-limited presigned URL for uploading an object
	GeneratePresignedUploadURL(ctx context.Context, key string, contentType string, ttl time.Duration) (string, error)

	// PublicURL returns the permanent address of an object, suitable for a campaign photo
	PublicURL(key string) string

	// EnsureBucketExists creates the bucket if it doesn't exist
	EnsureBucketExists(ctx context.Context) error

	// Health checks if the bucket is reachable
	Health(ctx context.Context) error
}

type service struct {
	client          *s3.Client
	publicPresigner *s3.PresignClient
	bucketName      string
	publicBaseURL   string
}

// New creates a storage service for an S3-compatible endpoint such as MinIO.
// Presigned URLs are signed against the public endpoint when one is set.
func New(ctx context.Context, cfg appconfig.StorageConfig) (Service, error) {
	if !cfg.Enabled() {
		return nil, errors.New("S3_ENDPOINT is required")
	}

	protocol := "http"
	if cfg.UseSSL {
		protocol = "https"
	}

	publicEndpoint := cfg.PublicEndpoint
	if publicEndpoint == "" {
		publicEndpoint = cfg.Endpoint
	}
	slog.Info("Object storage configured",
		"endpoint", cfg.Endpoint,
		"public_endpoint", publicEndpoint,
		"bucket", cfg.Bucket,
	)

	client, err := newClient(ctx, cfg, fmt.Sprintf("%s://%s", protocol, cfg.Endpoint))
	if err != nil {
		return nil, err
	}

	publicPresigner := s3.NewPresignClient(client)
	if publicEndpoint != cfg.Endpoint {
		publicClient, err := newClient(ctx, cfg, fmt.Sprintf("%s://%s", protocol, publicEndpoint))
		if err != nil {
			return nil, err
		}
		publicPresigner = s3.NewPresignClient(publicClient)
	}

	return &service{
		client:          client,
		publicPresigner: publicPresigner,
		bucketName:      cfg.Bucket,
		publicBaseURL:   fmt.Sprintf("%s://%s/%s", protocol, publicEndpoint, cfg.Bucket),
	}, nil
}

// newClient builds a path-style S3 client with static credentials, which is
// what MinIO expects.
func newClient(ctx context.Context, cfg appconfig.StorageConfig, endpointURL string) (*s3.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(signingRegion),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpointURL)
		o.UsePathStyle = true
	}), nil
}

// EnsureBucketExists creates the bucket if it doesn't already exist
func (s *service) EnsureBucketExists(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucketName),
	})
	if err == nil {
		return nil
	}

	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(s.bucketName),
	})
	if err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", s.bucketName, err)
	}

	slog.Info("Created S3 bucket", "bucket", s.bucketName)
	return nil
}

// GeneratePresignedUploadURL creates a presigned PUT URL bound to contentType
func (s *service) GeneratePresignedUploadURL(ctx context.Context, key string, contentType string, ttl time.Duration) (string, error) {
	if key == "" {
		return "", errors.New("object key cannot be empty")
	}
	if contentType == "" {
		return "", errors.New("content type cannot be empty")
	}
	if ttl <= 0 {
		return "", errors.New("TTL must be positive")
	}

	request, err := s.publicPresigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned upload URL for key %s: %w", key, err)
	}

	return request.URL, nil
}

// PublicURL escapes each key segment so the path matches the one the
// presigned PUT writes to.
func (s *service) PublicURL(key string) string {
	segments := strings.Split(key, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return s.publicBaseURL + "/" + strings.Join(segments, "/")
}

// Health checks if the bucket is accessible
func (s *service) Health(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucketName),
	})
	if err != nil {
		return fmt.Errorf("storage health check failed: %w", err)
	}
	return nil
}
