package services

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"media-gallery/internal/domain/media"
)

type upload struct {
	name        string
	body        []byte
	size        int64
	contentType string
}

type memoryUploader struct {
	uploads []upload
	err     error
}

func (m *memoryUploader) UploadFile(_ context.Context, objectName string, reader io.Reader, objectSize int64, contentType string) error {
	if m.err != nil {
		return m.err
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	m.uploads = append(m.uploads, upload{name: objectName, body: body, size: objectSize, contentType: contentType})
	return nil
}

type resetter struct {
	calls int
	err   error
}

func (r *resetter) Reset(context.Context) error {
	r.calls++
	return r.err
}

func TestPushAssets(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "img"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "vid"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "img", "a.jpeg"), []byte("jpeg"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vid", "b.mp4"), []byte("mp4!!"), 0o644))

	entries := []media.Entry{
		{ID: 1, Src: "img/a.jpeg", Kind: media.KindPhoto},
		{ID: 2, Src: "vid/b.mp4", Kind: media.KindVideo},
		{ID: 3, Src: "img/missing.jpeg", Kind: media.KindPhoto},
		{ID: 4, Src: "img/a.jpeg", Kind: media.KindPhoto},
	}

	uploader := &memoryUploader{}
	result, err := PushAssets(context.Background(), uploader, dir, entries)
	require.NoError(t, err)

	assert.Equal(t, []string{"img/a.jpeg", "vid/b.mp4"}, result.Uploaded)
	assert.Equal(t, []string{"img/missing.jpeg"}, result.Missing)

	require.Len(t, uploader.uploads, 2)
	assert.Equal(t, upload{name: "img/a.jpeg", body: []byte("jpeg"), size: 4, contentType: "image/jpeg"}, uploader.uploads[0])
	assert.Equal(t, "vid/b.mp4", uploader.uploads[1].name)
	assert.Equal(t, int64(5), uploader.uploads[1].size)
	assert.Equal(t, "video/mp4", uploader.uploads[1].contentType)
}

func TestPushAssets_UploadError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.jpeg"), []byte("x"), 0o644))

	uploader := &memoryUploader{err: errors.New("bucket gone")}
	_, err := PushAssets(context.Background(), uploader, dir, []media.Entry{{ID: 1, Src: "a.jpeg", Kind: media.KindPhoto}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to upload a.jpeg")
	assert.Contains(t, err.Error(), "bucket gone")
}

func TestResetDeletions(t *testing.T) {
	r := &resetter{}
	require.NoError(t, ResetDeletions(context.Background(), r))
	assert.Equal(t, 1, r.calls)

	r.err = errors.New("connection refused")
	err := ResetDeletions(context.Background(), r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to reset deletions")
	assert.Equal(t, 2, r.calls)
}
