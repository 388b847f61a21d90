package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/recipebox/backend/internal/logger"
	"github.com/recipebox/backend/internal/types"
)

// MaxImageBytes is the largest decoded image accepted from a data URL
const MaxImageBytes = 5 << 20

// ImageService resolves recipe images submitted as URLs or data URLs
type ImageService struct {
	store ImageStore
}

// NewImageService creates a new ImageService. Without a store, data URLs are
// validated and kept inline.
func NewImageService(store ImageStore) *ImageService {
	return &ImageService{store: store}
}

// Resolve returns the value to store for a submitted image. Plain URLs pass
// through; data URLs are uploaded to the store under recipes/<uuid>.<ext>.
func (s *ImageService) Resolve(ctx context.Context, image string) (string, error) {
	image = strings.TrimSpace(image)
	if !strings.HasPrefix(image, "data:") {
		return image, nil
	}

	contentType, data, err := decodeDataURL(image)
	if err != nil {
		return "", err
	}
	if s.store == nil {
		return image, nil
	}

	key := fmt.Sprintf("recipes/%s.%s", uuid.NewString(), extension(contentType))
	url, err := s.store.Upload(ctx, key, contentType, data)
	if err != nil {
		return "", fmt.Errorf("failed to store image: %w", err)
	}

	logger.Debug(ctx).Str("key", key).Int("bytes", len(data)).Msg("Stored recipe image")
	return url, nil
}

// decodeDataURL parses data:image/<type>;base64,<payload>
func decodeDataURL(image string) (string, []byte, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(image, "data:"), ",")
	if !ok {
		return "", nil, types.NewValidationError("image", "Image data URL is malformed.")
	}

	contentType, isBase64 := strings.CutSuffix(meta, ";base64")
	if !isBase64 {
		return "", nil, types.NewValidationError("image", "Image data URL must be base64 encoded.")
	}
	contentType = strings.ToLower(contentType)
	if !strings.HasPrefix(contentType, "image/") || len(contentType) == len("image/") {
		return "", nil, types.NewValidationError("image", "Image must be an image/* data URL.")
	}

	if base64.StdEncoding.DecodedLen(len(payload)) > MaxImageBytes+2 {
		return "", nil, types.NewValidationError("image", "Image must be at most 5 MiB.")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, types.NewValidationError("image", "Image data is not valid base64.")
	}
	if len(data) > MaxImageBytes {
		return "", nil, types.NewValidationError("image", "Image must be at most 5 MiB.")
	}

	return contentType, data, nil
}

func extension(contentType string) string {
	sub := strings.TrimPrefix(contentType, "image/")
	switch sub {
	case "jpeg", "pjpeg":
		return "jpg"
	case "svg+xml":
		return "svg"
	}
	if i := strings.IndexAny(sub, "+;"); i > 0 {
		sub = sub[:i]
	}
	return sub
}
