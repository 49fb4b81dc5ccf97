package media

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/observability"

	"github.com/google/uuid"
)

const fsBackendName = "fs"

// FSStore keeps uploads on the local filesystem. Intended for development
// and tests; production deployments use the S3 store.
type FSStore struct {
	uploadDir          string
	baseURL            string
	maxUploadSizeBytes int64
}

// NewFSStore creates a filesystem store rooted at uploadDir. Served URLs are
// prefixed with baseURL (for example "/media"). maxUploadSizeMB of 0 means
// a 10MB default.
func NewFSStore(uploadDir, baseURL string, maxUploadSizeMB int) (*FSStore, error) {
	if uploadDir == "" {
		return nil, errors.New("media: upload directory is required")
	}
	if maxUploadSizeMB <= 0 {
		maxUploadSizeMB = 10
	}
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("media: create upload dir: %w", err)
	}
	return &FSStore{
		uploadDir:          uploadDir,
		baseURL:            strings.TrimRight(baseURL, "/"),
		maxUploadSizeBytes: int64(maxUploadSizeMB) * 1024 * 1024,
	}, nil
}

func (s *FSStore) Upload(ctx context.Context, filename string, content []byte) (obj *Object, err error) {
	start := time.Now()
	ctx, span := observability.StartMediaSpan(ctx, fsBackendName, "upload")
	defer func() {
		observability.ObserveMediaCall(fsBackendName, "upload", start, err)
		observability.EndSpan(span, err)
	}()
	_ = ctx

	if int64(len(content)) > s.maxUploadSizeBytes {
		return nil, models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", s.maxUploadSizeBytes/(1024*1024)))
	}
	ext, err := validateImage(content)
	if err != nil {
		return nil, err
	}

	// Content hash plus a random component keeps keys unique without
	// leaking the original filename.
	sum := sha256.Sum256(content)
	key := fmt.Sprintf("%s-%s%s", hex.EncodeToString(sum[:8]), uuid.NewString(), ext)

	path := filepath.Join(s.uploadDir, key)
	if err := writeFileAtomic(path, content); err != nil {
		return nil, models.NewStoreUnavailableError("media", err)
	}

	return &Object{
		URL: s.baseURL + "/" + key,
		ID:  key,
	}, nil
}

// Delete removes the stored file. A missing file is treated as success.
func (s *FSStore) Delete(ctx context.Context, id string) (err error) {
	start := time.Now()
	_, span := observability.StartMediaSpan(ctx, fsBackendName, "delete")
	defer func() {
		observability.ObserveMediaCall(fsBackendName, "delete", start, err)
		observability.EndSpan(span, err)
	}()

	clean := filepath.Base(id)
	if clean != id || clean == "." || clean == ".." {
		return models.NewValidationError("Invalid media id")
	}

	if err := os.Remove(filepath.Join(s.uploadDir, clean)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return models.NewStoreUnavailableError("media", err)
	}
	return nil
}

// writeFileAtomic writes via a temp file and rename so readers never see a
// partially written image.
func writeFileAtomic(path string, content []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".upload-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Chmod(path, 0o644)
}
