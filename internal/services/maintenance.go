package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	"media-gallery/internal/domain/media"
	"media-gallery/internal/platform/cache"
	"media-gallery/internal/platform/storage"
)

// video types are missing from the builtin mime table on minimal systems
var videoContentTypes = map[string]string{
	".mp4":  "video/mp4",
	".webm": "video/webm",
	".mov":  "video/quicktime",
}

// AssetUploader stores asset files under their catalogue src
type AssetUploader interface {
	UploadFile(ctx context.Context, objectName string, reader io.Reader, objectSize int64, contentType string) error
}

// DeletionResetter forgets persisted deletions
type DeletionResetter interface {
	Reset(ctx context.Context) error
}

var (
	_ AssetUploader    = (*storage.MinIOClient)(nil)
	_ DeletionResetter = (*cache.RedisClient)(nil)
)

// PushResult summarises a PushAssets run
type PushResult struct {
	Uploaded []string
	Missing  []string
}

// PushAssets uploads the file behind every catalogue src found under dir.
// Entries without a file are reported as missing rather than failing the run.
func PushAssets(ctx context.Context, uploader AssetUploader, dir string, entries []media.Entry) (PushResult, error) {
	var result PushResult
	seen := make(map[string]struct{}, len(entries))

	for _, e := range entries {
		if _, dup := seen[e.Src]; dup {
			continue
		}
		seen[e.Src] = struct{}{}

		uploaded, err := pushAsset(ctx, uploader, dir, e.Src)
		if err != nil {
			return result, err
		}
		if uploaded {
			result.Uploaded = append(result.Uploaded, e.Src)
		} else {
			result.Missing = append(result.Missing, e.Src)
		}
	}
	return result, nil
}

func pushAsset(ctx context.Context, uploader AssetUploader, dir, src string) (bool, error) {
	f, err := os.Open(filepath.Join(dir, filepath.FromSlash(src)))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", src, err)
	}
	if info.IsDir() {
		return false, nil
	}

	ext := strings.ToLower(path.Ext(src))
	contentType, ok := videoContentTypes[ext]
	if !ok {
		contentType = mime.TypeByExtension(ext)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if err := uploader.UploadFile(ctx, src, f, info.Size(), contentType); err != nil {
		return false, fmt.Errorf("failed to upload %s: %w", src, err)
	}
	return true, nil
}

// ResetDeletions clears the persisted deletion log so the next start shows
// the whole catalogue again
func ResetDeletions(ctx context.Context, log DeletionResetter) error {
	if err := log.Reset(ctx); err != nil {
		return fmt.Errorf("failed to reset deletions: %w", err)
	}
	return nil
}
