package uploads

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"fundfusion/internal/storage"

	"github.com/google/uuid"
)

// ErrInvalidUpload wraps every validation failure so handlers can answer 400
var ErrInvalidUpload = errors.New("invalid upload")

// Service issues presigned upload URLs for campaign photos
type Service struct {
	storage storage.Service
	now     func() time.Time
}

// NewService creates a new uploads service
func NewService(storage storage.Service) *Service {
	return &Service{storage: storage, now: time.Now}
}

// ValidateFilename checks if filename is safe to embed in an object key
func ValidateFilename(filename string) error {
	if filename == "" {
		return fmt.Errorf("%w: filename cannot be empty", ErrInvalidUpload)
	}
	if len(filename) > MaxFilenameLength {
		return fmt.Errorf("%w: filename too long (max %d characters)", ErrInvalidUpload, MaxFilenameLength)
	}
	if strings.Contains(filename, "..") || strings.ContainsAny(filename, `/\`) {
		return fmt.Errorf("%w: filename contains invalid characters", ErrInvalidUpload)
	}
	if filepath.Ext(filename) == "" {
		return fmt.Errorf("%w: filename must have an extension", ErrInvalidUpload)
	}
	return nil
}

// ValidateContentType accepts image types only
func ValidateContentType(contentType string) error {
	if !AllowedContentTypes[contentType] {
		return fmt.Errorf("%w: content type %q is not allowed", ErrInvalidUpload, contentType)
	}
	return nil
}

// PhotoUploadURL validates the request and presigns a PUT for a fresh key
func (s *Service) PhotoUploadURL(ctx context.Context, req *PhotoURLRequest) (*PhotoURLResponse, error) {
	if err := ValidateFilename(req.Filename); err != nil {
		return nil, err
	}
	if err := ValidateContentType(req.ContentType); err != nil {
		return nil, err
	}

	fileKey := keyPrefix + uuid.NewString() + "-" + req.Filename

	uploadURL, err := s.storage.GeneratePresignedUploadURL(ctx, fileKey, req.ContentType, UploadURLTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate upload URL: %w", err)
	}

	return &PhotoURLResponse{
		UploadURL: uploadURL,
		FileKey:   fileKey,
		PhotoURL:  s.storage.PublicURL(fileKey),
		ExpiresAt: s.now().Add(UploadURLTTL).Unix(),
	}, nil
}
