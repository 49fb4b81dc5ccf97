// Package media stores uploaded post images and hands back stable URLs.
// Two backends exist: a local filesystem store for development and an
// S3-compatible store (AWS or MinIO) for production.
package media

import (
	"bytes"
	"context"
	"image"
	"mime"
	"net/http"
	"strings"

	"inkwell/internal/models"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp" // Register WebP decoder
)

// Object identifies a stored media item. URL is what clients render;
// ID is the backend key used to delete the item later.
type Object struct {
	URL string `json:"url"`
	ID  string `json:"id"`
}

// Store uploads and deletes media items. Implementations must make Delete
// idempotent: deleting an already-missing item is not an error.
type Store interface {
	Upload(ctx context.Context, filename string, content []byte) (*Object, error)
	Delete(ctx context.Context, id string) error
}

var allowedImageMIMEs = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// validateImage sniffs and decodes the content, returning the canonical file
// extension for the detected format. Rejects anything that is not a real
// jpeg, png, gif or webp image.
func validateImage(content []byte) (string, error) {
	if len(content) == 0 {
		return "", models.NewValidationError("No file uploaded")
	}

	detected := normalizeContentType(http.DetectContentType(content))
	ext, ok := allowedImageMIMEs[detected]
	if !ok {
		return "", models.NewValidationError("Invalid image type")
	}

	if _, _, err := image.Decode(bytes.NewReader(content)); err != nil {
		return "", models.NewValidationError("Invalid image file")
	}
	return ext, nil
}

func normalizeContentType(ct string) string {
	parsed, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(ct))
	}
	return strings.ToLower(parsed)
}
