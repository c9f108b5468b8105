package storage

import (
	"context"
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"
)

// Assets serves the file behind an entry src
type Assets interface {
	Serve(w http.ResponseWriter, r *http.Request, src string)
	Health(ctx context.Context) error
}

// LocalAssets serves assets from a directory on disk
type LocalAssets struct {
	root string
	fsys fs.FS
}

var _ Assets = (*LocalAssets)(nil)

func NewLocalAssets(root string) *LocalAssets {
	return &LocalAssets{root: root, fsys: os.DirFS(root)}
}

// Serve writes the file for src. Paths escaping the root are rejected.
func (l *LocalAssets) Serve(w http.ResponseWriter, r *http.Request, src string) {
	name := path.Clean(strings.TrimPrefix(src, "/"))
	if !fs.ValidPath(name) {
		http.NotFound(w, r)
		return
	}
	if info, err := fs.Stat(l.fsys, name); err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}
	http.ServeFileFS(w, r, l.fsys, name)
}

// Health checks that the asset directory exists
func (l *LocalAssets) Health(context.Context) error {
	info, err := os.Stat(l.root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return &fs.PathError{Op: "stat", Path: l.root, Err: fs.ErrInvalid}
	}
	return nil
}
