// Package storage abstracts media blob persistence behind a small
// interface so the HTTP layer never touches a concrete backend. The
// production implementation writes to a local directory served under a
// public URL prefix; a hosted object store slots in behind the same
// interface.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// BlobStore persists uploaded media and returns a public URL for it.
type BlobStore interface {
	// Save streams r into the store under a generated name with the given
	// extension (".jpg", ".png", ...) and returns the public URL path.
	Save(ctx context.Context, ext string, r io.Reader) (url string, err error)
}

// DiskStore is the local-filesystem BlobStore. Files land in Dir and are
// served by the router under URLPrefix.
type DiskStore struct {
	Dir       string
	URLPrefix string
}

// NewDiskStore creates the target directory if needed and returns a store
// serving files under urlPrefix (e.g. "/media").
func NewDiskStore(dir, urlPrefix string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	return &DiskStore{Dir: dir, URLPrefix: strings.TrimRight(urlPrefix, "/")}, nil
}

// Save implements BlobStore. Names are random UUIDs, so callers cannot
// influence the path and collisions are not a practical concern.
func (s *DiskStore) Save(ctx context.Context, ext string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	name := uuid.NewString() + ext

	f, err := os.CreateTemp(s.Dir, "upload-*")
	if err != nil {
		return "", fmt.Errorf("create blob: %w", err)
	}
	tmp := f.Name()

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", fmt.Errorf("write blob: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("close blob: %w", err)
	}
	// Rename-into-place so a partially written file is never visible
	// under its final name.
	final := filepath.Join(s.Dir, name)
	if err := os.Rename(tmp, final); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("publish blob: %w", err)
	}
	return s.URLPrefix + "/" + name, nil
}
