// Package assets resolves logical asset paths such as "/data.xlsx" or
// "/logos/lions.png" against a directory or a remote asset server.
package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/mcdev12/teamsheet/go/internal/models"
)

// FSStore serves assets from a directory on disk
type FSStore struct {
	root string
}

// NewFSStore creates an FSStore rooted at dir
func NewFSStore(dir string) *FSStore {
	return &FSStore{root: dir}
}

// Clean normalises a logical asset path to a rooted slash path
func Clean(p string) string {
	return path.Clean("/" + p)
}

func (s *FSStore) resolve(p string) string {
	return filepath.Join(s.root, filepath.FromSlash(Clean(p)))
}

// Get returns the asset at p, or nil when there is no file there
func (s *FSStore) Get(_ context.Context, p string) (*models.Asset, error) {
	full := s.resolve(p)
	info, err := os.Stat(full)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat asset %s: %w", p, err)
	}
	if info.IsDir() {
		return nil, nil
	}

	mt, err := mimetype.DetectFile(full)
	if err != nil {
		return nil, fmt.Errorf("failed to detect type of asset %s: %w", p, err)
	}

	return &models.Asset{
		Path:     Clean(p),
		Type:     models.AssetTypeFor(mt.String()),
		MimeType: mt.String(),
		Size:     info.Size(),
	}, nil
}

// Open opens the asset at p for reading
func (s *FSStore) Open(_ context.Context, p string) (io.ReadCloser, error) {
	f, err := os.Open(s.resolve(p))
	if err != nil {
		return nil, fmt.Errorf("failed to open asset %s: %w", p, err)
	}
	return f, nil
}
