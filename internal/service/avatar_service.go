package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/shubhodip/spendmate/spendmate-backend/internal/domain"
	"github.com/shubhodip/spendmate/spendmate-backend/internal/repository/storage"
)

const (
	MaxAvatarSize  = 5 * 1024 * 1024 // 5MB
	MinAvatarWidth = 50
	ThumbnailSize  = 200 // square thumbnail edge in pixels
	DisplaySize    = 800 // square display edge in pixels
	JPEGQuality    = 85

	avatarURLExpiry = 15 * time.Minute
)

var (
	ErrAvatarTooLarge             = errors.New("file too large. Maximum size is 5MB")
	ErrAvatarInvalidFormat        = errors.New("invalid format. Supported: JPEG, PNG, WebP")
	ErrAvatarTooSmall             = errors.New("image too small. Minimum 50x50 pixels")
	ErrAvatarInvalidData          = errors.New("invalid image data")
	ErrAvatarStorageNotConfigured = errors.New("avatar storage not configured")
)

// allowedAvatarExtensions maps extensions to content types
var allowedAvatarExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// avatarVariants defines the sizes generated for every upload
var avatarVariants = []struct {
	name string
	size int
}{
	{"thumb", ThumbnailSize},
	{"display", DisplaySize},
}

// AvatarURLs contains presigned URLs for each stored avatar size
type AvatarURLs struct {
	ThumbnailURL string `json:"thumbnailUrl"`
	DisplayURL   string `json:"displayUrl"`
}

// AvatarService handles profile picture processing and storage
type AvatarService struct {
	storage  storage.AvatarRepository
	userRepo domain.UserRepository
}

// NewAvatarService creates a new AvatarService
func NewAvatarService(storage storage.AvatarRepository, userRepo domain.UserRepository) *AvatarService {
	return &AvatarService{storage: storage, userRepo: userRepo}
}

// IsEnabled indicates whether uploads/deletes are supported (storage configured).
func (s *AvatarService) IsEnabled() bool {
	return s != nil && s.storage != nil
}

// Upload validates, resizes and stores a user's avatar as thumbnail and
// display variants, returning presigned URLs for both.
func (s *AvatarService) Upload(ctx context.Context, userID uuid.UUID, data []byte, filename string) (*AvatarURLs, error) {
	if !s.IsEnabled() {
		return nil, ErrAvatarStorageNotConfigured
	}

	img, err := s.validateAndDecode(data, filename)
	if err != nil {
		return nil, err
	}

	baseKey := avatarKey(userID)

	var uploaded []string
	for _, variant := range avatarVariants {
		// Center-crop to a square and scale to the variant size
		processed := imaging.Fill(img, variant.size, variant.size, imaging.Center, imaging.Lanczos)

		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, processed, &jpeg.Options{Quality: JPEGQuality}); err != nil {
			s.cleanupVariants(ctx, uploaded)
			return nil, fmt.Errorf("failed to encode image: %w", err)
		}

		key := variantKey(baseKey, variant.name)
		if err := s.storage.Upload(ctx, key, bytes.NewReader(buf.Bytes()), "image/jpeg", int64(buf.Len())); err != nil {
			s.cleanupVariants(ctx, uploaded)
			return nil, fmt.Errorf("failed to upload %s variant: %w", variant.name, err)
		}
		uploaded = append(uploaded, key)
	}

	if err := s.userRepo.UpdateAvatarKey(userID, &baseKey); err != nil {
		return nil, err
	}

	return s.presignVariants(ctx, baseKey)
}

// URLs returns presigned URLs for the user's avatar variants, or nil if the
// user has no avatar or storage is not configured.
func (s *AvatarService) URLs(ctx context.Context, user *domain.User) (*AvatarURLs, error) {
	if user.AvatarKey == nil || *user.AvatarKey == "" {
		return nil, nil
	}
	if !s.IsEnabled() {
		return nil, nil
	}
	return s.presignVariants(ctx, *user.AvatarKey)
}

// Delete removes all avatar variants from storage and clears the reference.
// Variant deletion is best effort.
func (s *AvatarService) Delete(ctx context.Context, userID uuid.UUID, user *domain.User) error {
	if user.AvatarKey == nil || *user.AvatarKey == "" {
		return nil
	}
	if !s.IsEnabled() {
		return ErrAvatarStorageNotConfigured
	}

	for _, variant := range avatarVariants {
		if err := s.storage.Delete(ctx, variantKey(*user.AvatarKey, variant.name)); err != nil {
			continue
		}
	}
	return s.userRepo.UpdateAvatarKey(userID, nil)
}

func (s *AvatarService) presignVariants(ctx context.Context, baseKey string) (*AvatarURLs, error) {
	thumbURL, err := s.storage.PresignedURL(ctx, variantKey(baseKey, "thumb"), avatarURLExpiry)
	if err != nil {
		return nil, err
	}
	displayURL, err := s.storage.PresignedURL(ctx, variantKey(baseKey, "display"), avatarURLExpiry)
	if err != nil {
		return nil, err
	}
	return &AvatarURLs{ThumbnailURL: thumbURL, DisplayURL: displayURL}, nil
}

// cleanupVariants removes variants uploaded before a failed operation
func (s *AvatarService) cleanupVariants(ctx context.Context, keys []string) {
	for _, key := range keys {
		_ = s.storage.Delete(ctx, key)
	}
}

// validateAndDecode validates the image and returns the decoded image
func (s *AvatarService) validateAndDecode(data []byte, filename string) (image.Image, error) {
	if len(data) > MaxAvatarSize {
		return nil, ErrAvatarTooLarge
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := allowedAvatarExtensions[ext]; !ok {
		return nil, ErrAvatarInvalidFormat
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, ErrAvatarInvalidData
	}

	bounds := img.Bounds()
	if bounds.Dx() < MinAvatarWidth || bounds.Dy() < MinAvatarWidth {
		return nil, ErrAvatarTooSmall
	}

	return img, nil
}

func avatarKey(userID uuid.UUID) string {
	return fmt.Sprintf("avatars/%s", userID.String())
}

func variantKey(baseKey, variant string) string {
	return fmt.Sprintf("%s_%s.jpg", baseKey, variant)
}
