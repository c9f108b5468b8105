package storage_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"media-gallery/internal/platform/storage"
	"media-gallery/internal/testutils"
)

func writeAsset(t *testing.T, root, name, body string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestLocalAssets_Serve(t *testing.T) {
	root := t.TempDir()
	writeAsset(t, root, "img/sunset.jpeg", "jpeg-bytes")
	writeAsset(t, root, "vid/clip.mp4", "mp4-bytes")
	assets := storage.NewLocalAssets(root)

	tests := []struct {
		name       string
		src        string
		wantStatus int
		wantBody   string
	}{
		{name: "photo", src: "img/sunset.jpeg", wantStatus: http.StatusOK, wantBody: "jpeg-bytes"},
		{name: "video", src: "vid/clip.mp4", wantStatus: http.StatusOK, wantBody: "mp4-bytes"},
		{name: "leading slash", src: "/img/sunset.jpeg", wantStatus: http.StatusOK, wantBody: "jpeg-bytes"},
		{name: "missing", src: "img/nope.jpeg", wantStatus: http.StatusNotFound},
		{name: "directory", src: "img", wantStatus: http.StatusNotFound},
		{name: "traversal", src: "../etc/passwd", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/media/"+tt.src, nil)
			rec := httptest.NewRecorder()

			assets.Serve(rec, req, tt.src)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestLocalAssets_Health(t *testing.T) {
	root := t.TempDir()
	assert.NoError(t, storage.NewLocalAssets(root).Health(context.Background()))
	assert.Error(t, storage.NewLocalAssets(filepath.Join(root, "missing")).Health(context.Background()))

	file := filepath.Join(root, "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	assert.Error(t, storage.NewLocalAssets(file).Health(context.Background()))
}

func TestMinIOClient_Integration(t *testing.T) {
	testutils.SkipIfShort(t)

	ctx := context.Background()
	container, err := testutils.StartMinio(ctx)
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, container.Terminate(context.Background()))
	})

	client, err := storage.NewMinIOClient(ctx, testutils.StorageConfig(container.Endpoint), 10*time.Minute)
	require.NoError(t, err)
	require.NoError(t, client.Health(ctx))

	body := []byte("fake video payload")
	require.NoError(t, client.UploadFile(ctx, "vid/clip.mp4", bytes.NewReader(body), int64(len(body)), "video/mp4"))

	t.Run("resolve presigns a readable URL", func(t *testing.T) {
		u, err := client.Resolve(ctx, "vid/clip.mp4")
		require.NoError(t, err)
		assert.Contains(t, u, "X-Amz-Signature")

		resp, err := http.Get(u)
		require.NoError(t, err)
		defer resp.Body.Close()

		got, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, body, got)
	})

	t.Run("serve redirects", func(t *testing.T) {
		rec := httptest.NewRecorder()
		client.Serve(rec, httptest.NewRequest(http.MethodGet, "/media/vid/clip.mp4", nil), "vid/clip.mp4")

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.True(t, strings.Contains(rec.Header().Get("Location"), "vid/clip.mp4"))
	})

	t.Run("serve missing object", func(t *testing.T) {
		rec := httptest.NewRecorder()
		client.Serve(rec, httptest.NewRequest(http.MethodGet, "/media/vid/none.mp4", nil), "vid/none.mp4")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
