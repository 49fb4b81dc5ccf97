package media

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 60), G: uint8(y * 60), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newTestStore(t *testing.T) *FSStore {
	t.Helper()
	store, err := NewFSStore(t.TempDir(), "/media", 1)
	require.NoError(t, err)
	return store
}

func TestFSStoreUploadAndDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	obj, err := store.Upload(ctx, "photo.png", pngBytes(t))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(obj.URL, "/media/"))
	assert.True(t, strings.HasSuffix(obj.ID, ".png"))

	_, err = os.Stat(filepath.Join(store.uploadDir, obj.ID))
	require.NoError(t, err, "uploaded file should exist on disk")

	require.NoError(t, store.Delete(ctx, obj.ID))
	_, err = os.Stat(filepath.Join(store.uploadDir, obj.ID))
	assert.True(t, os.IsNotExist(err))
}

func TestFSStoreDeleteMissingIsNoop(t *testing.T) {
	store := newTestStore(t)
	assert.NoError(t, store.Delete(context.Background(), "never-uploaded.png"))
}

func TestFSStoreDeleteRejectsPathTraversal(t *testing.T) {
	store := newTestStore(t)
	err := store.Delete(context.Background(), "../../etc/passwd")
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.ErrCodeValidation, appErr.Code)
}

func TestFSStoreUploadRejectsNonImage(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Upload(context.Background(), "notes.txt", []byte("just some text, not an image"))
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.ErrCodeValidation, appErr.Code)
}

func TestFSStoreUploadRejectsEmpty(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Upload(context.Background(), "empty.png", nil)
	require.Error(t, err)
}

func TestFSStoreUploadRejectsOversize(t *testing.T) {
	store := newTestStore(t)

	big := make([]byte, 2*1024*1024)
	_, err := store.Upload(context.Background(), "big.png", big)
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.ErrCodeValidation, appErr.Code)
	assert.Contains(t, appErr.Message, "too large")
}

func TestFSStoreUploadRejectsMislabeledContent(t *testing.T) {
	store := newTestStore(t)

	// A PNG header followed by garbage sniffs as image/png but fails decode.
	corrupt := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0xAB}, 64)...)
	_, err := store.Upload(context.Background(), "broken.png", corrupt)
	require.Error(t, err)
}
