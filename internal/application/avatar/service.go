package avatar

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/hypideas/identity-api/internal/domain"
	"github.com/hypideas/identity-api/internal/pkg/id"
)

type Service interface {
	Upload(ctx context.Context, userID, filename, base64Data string) (*domain.File, string, error)
	Remove(ctx context.Context, userID string) error
}

type objectStore interface {
	UploadBase64(ctx context.Context, key, b64Data string) (string, error)
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

type fileStore interface {
	Put(ctx context.Context, f *domain.File) error
	Get(ctx context.Context, fileID string) (*domain.File, error)
	SoftDelete(ctx context.Context, fileID string) error
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

type service struct {
	s3       objectStore
	fileRepo fileStore
	userRepo userStore
	urlTTL   time.Duration
}

func NewService(s3 objectStore, fileRepo fileStore, userRepo userStore) Service {
	return &service{s3: s3, fileRepo: fileRepo, userRepo: userRepo, urlTTL: 24 * time.Hour}
}

// Upload stores the avatar image in S3, records it in the files table and
// points the user's avatar field at a presigned URL. Returns the file record
// and the URL.
func (s *service) Upload(ctx context.Context, userID, filename, base64Data string) (*domain.File, string, error) {
	if _, err := s.userRepo.Get(ctx, userID); err != nil {
		return nil, "", err
	}
	safeName := sanitizeFilename(filename)
	if !isImageName(safeName) {
		return nil, "", fmt.Errorf("avatar must be a jpg, png or webp image: %w", domain.ErrBadRequest)
	}
	decoded, err := base64.StdEncoding.DecodeString(base64Data)
	if err != nil {
		return nil, "", fmt.Errorf("decode base64: %w", domain.ErrBadRequest)
	}

	key := fmt.Sprintf("avatars/%s/%s", userID, safeName)
	if _, err := s.s3.UploadBase64(ctx, key, base64Data); err != nil {
		return nil, "", err
	}
	url, err := s.s3.PresignedURL(ctx, key, s.urlTTL)
	if err != nil {
		return nil, "", err
	}

	sum := sha256.Sum256(decoded)
	now := time.Now().UTC()
	f := &domain.File{
		FileID:           id.NewSortable(),
		Object:           key,
		Size:             int64(len(decoded)),
		Type:             contentTypeFromName(safeName),
		Name:             safeName,
		Hash:             hex.EncodeToString(sum[:]),
		UploadedByUserID: userID,
		Enable:           true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.fileRepo.Put(ctx, f); err != nil {
		return nil, "", err
	}
	if err := s.userRepo.Update(ctx, userID, map[string]interface{}{"avatar": url}); err != nil {
		return nil, "", err
	}
	return f, url, nil
}

// Remove deletes the stored avatar object and clears the user's avatar field.
func (s *service) Remove(ctx context.Context, userID string) error {
	u, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		return err
	}
	if u.Avatar == nil {
		return fmt.Errorf("no avatar set: %w", domain.ErrNotFound)
	}
	key := fmt.Sprintf("avatars/%s/", userID)
	// Presigned URLs embed the object key after the bucket; recover it so the
	// object can be removed without a second lookup table.
	if idx := strings.Index(*u.Avatar, key); idx >= 0 {
		objectKey := (*u.Avatar)[idx:]
		if q := strings.Index(objectKey, "?"); q >= 0 {
			objectKey = objectKey[:q]
		}
		if err := s.s3.Delete(ctx, objectKey); err != nil {
			return err
		}
	}
	return s.userRepo.Update(ctx, userID, map[string]interface{}{"avatar": nil})
}

func isImageName(filename string) bool {
	switch contentTypeFromName(filename) {
	case "image/jpeg", "image/png", "image/webp":
		return true
	}
	return false
}

func contentTypeFromName(filename string) string {
	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ".jpg") || strings.HasSuffix(lower, ".jpeg"):
		return "image/jpeg"
	case strings.HasSuffix(lower, ".png"):
		return "image/png"
	case strings.HasSuffix(lower, ".webp"):
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}

// sanitizeFilename strips directory components and keeps only safe characters
// (alphanumeric, dot, dash, underscore) to prevent path traversal in S3 keys.
func sanitizeFilename(name string) string {
	name = path.Base(name)
	var b strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || r == '.' || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	if result := b.String(); result != "" && result != "." {
		return result
	}
	return "_"
}
