package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"testing"
	"time"

	"github.com/shubhodip/spendmate/spendmate-backend/internal/testutil"
)

// mockAvatarStorage is an in-memory stand-in for the S3 repository
type mockAvatarStorage struct {
	objects map[string][]byte
}

func newMockAvatarStorage() *mockAvatarStorage {
	return &mockAvatarStorage{objects: make(map[string][]byte)}
}

func (m *mockAvatarStorage) Upload(_ context.Context, objectKey string, data io.Reader, _ string, _ int64) error {
	buf, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	m.objects[objectKey] = buf
	return nil
}

func (m *mockAvatarStorage) Delete(_ context.Context, objectKey string) error {
	if _, ok := m.objects[objectKey]; !ok {
		return errors.New("object not found")
	}
	delete(m.objects, objectKey)
	return nil
}

func (m *mockAvatarStorage) PresignedURL(_ context.Context, objectKey string, _ time.Duration) (string, error) {
	return "https://storage.example.com/" + objectKey + "?signed", nil
}

func testImagePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Expected no error encoding test image, got %v", err)
	}
	return buf.Bytes()
}

func TestAvatarUpload_Valid(t *testing.T) {
	storage := newMockAvatarStorage()
	userRepo := testutil.NewMockUserRepository()
	avatarService := NewAvatarService(storage, userRepo)
	user := seedUser(userRepo)

	urls, err := avatarService.Upload(context.Background(), user.ID, testImagePNG(t, 400, 300), "photo.png")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if urls == nil || urls.ThumbnailURL == "" || urls.DisplayURL == "" {
		t.Fatalf("Expected presigned URLs for both variants, got %+v", urls)
	}
	if user.AvatarKey == nil {
		t.Fatal("Expected avatar key set on the user")
	}
	for _, suffix := range []string{"_thumb.jpg", "_display.jpg"} {
		if _, ok := storage.objects[*user.AvatarKey+suffix]; !ok {
			t.Errorf("Expected object stored under %s%s", *user.AvatarKey, suffix)
		}
	}
}

func TestAvatarUpload_GeneratesBothVariantSizes(t *testing.T) {
	storage := newMockAvatarStorage()
	userRepo := testutil.NewMockUserRepository()
	avatarService := NewAvatarService(storage, userRepo)
	user := seedUser(userRepo)

	if _, err := avatarService.Upload(context.Background(), user.ID, testImagePNG(t, 1200, 900), "photo.png"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	sizes := map[string]int{"_thumb.jpg": ThumbnailSize, "_display.jpg": DisplaySize}
	for suffix, want := range sizes {
		data, ok := storage.objects[*user.AvatarKey+suffix]
		if !ok {
			t.Fatalf("Expected %s variant in storage", suffix)
		}
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("Expected decodable JPEG for %s, got %v", suffix, err)
		}
		if img.Bounds().Dx() != want || img.Bounds().Dy() != want {
			t.Errorf("Expected %dx%d for %s, got %dx%d", want, want, suffix, img.Bounds().Dx(), img.Bounds().Dy())
		}
	}
}

func TestAvatarUpload_Validation(t *testing.T) {
	storage := newMockAvatarStorage()
	userRepo := testutil.NewMockUserRepository()
	avatarService := NewAvatarService(storage, userRepo)
	user := seedUser(userRepo)

	tests := []struct {
		name     string
		data     []byte
		filename string
		wantErr  error
	}{
		{"oversized file", make([]byte, MaxAvatarSize+1), "big.jpg", ErrAvatarTooLarge},
		{"bad extension", testImagePNG(t, 100, 100), "document.pdf", ErrAvatarInvalidFormat},
		{"tiny image", testImagePNG(t, 20, 20), "tiny.png", ErrAvatarTooSmall},
		{"corrupt data", []byte("not an image"), "photo.png", ErrAvatarInvalidData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := avatarService.Upload(context.Background(), user.ID, tt.data, tt.filename)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
			if len(storage.objects) != 0 {
				t.Errorf("Expected nothing stored, got %d objects", len(storage.objects))
			}
		})
	}
}

func TestAvatarUpload_StorageNotConfigured(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	avatarService := NewAvatarService(nil, userRepo)
	user := seedUser(userRepo)

	_, err := avatarService.Upload(context.Background(), user.ID, testImagePNG(t, 100, 100), "photo.png")
	if !errors.Is(err, ErrAvatarStorageNotConfigured) {
		t.Errorf("Expected ErrAvatarStorageNotConfigured, got %v", err)
	}
}

func TestAvatarURLs_NoAvatar(t *testing.T) {
	storage := newMockAvatarStorage()
	userRepo := testutil.NewMockUserRepository()
	avatarService := NewAvatarService(storage, userRepo)
	user := seedUser(userRepo)

	urls, err := avatarService.URLs(context.Background(), user)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if urls != nil {
		t.Errorf("Expected nil URLs for user without avatar, got %+v", urls)
	}
}

// failAfterAvatarStorage rejects uploads after the first n succeed
type failAfterAvatarStorage struct {
	*mockAvatarStorage
	allowed int
	count   int
}

func (f *failAfterAvatarStorage) Upload(ctx context.Context, objectKey string, data io.Reader, contentType string, size int64) error {
	f.count++
	if f.count > f.allowed {
		return errors.New("storage unavailable")
	}
	return f.mockAvatarStorage.Upload(ctx, objectKey, data, contentType, size)
}

func TestAvatarUpload_PartialFailureCleansUp(t *testing.T) {
	storage := &failAfterAvatarStorage{mockAvatarStorage: newMockAvatarStorage(), allowed: 1}
	userRepo := testutil.NewMockUserRepository()
	avatarService := NewAvatarService(storage, userRepo)
	user := seedUser(userRepo)

	_, err := avatarService.Upload(context.Background(), user.ID, testImagePNG(t, 400, 400), "photo.png")
	if err == nil {
		t.Fatal("Expected an error when the second variant upload fails")
	}
	if len(storage.objects) != 0 {
		t.Errorf("Expected uploaded variants cleaned up, got %d objects", len(storage.objects))
	}
	if user.AvatarKey != nil {
		t.Error("Expected no avatar key recorded after a failed upload")
	}
}

func TestAvatarDelete_RemovesObjectAndReference(t *testing.T) {
	storage := newMockAvatarStorage()
	userRepo := testutil.NewMockUserRepository()
	avatarService := NewAvatarService(storage, userRepo)
	user := seedUser(userRepo)

	if _, err := avatarService.Upload(context.Background(), user.ID, testImagePNG(t, 400, 400), "photo.png"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if err := avatarService.Delete(context.Background(), user.ID, user); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(storage.objects) != 0 {
		t.Errorf("Expected storage emptied, got %d objects", len(storage.objects))
	}
	if user.AvatarKey != nil {
		t.Error("Expected avatar key cleared")
	}
}
