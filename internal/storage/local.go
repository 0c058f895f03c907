package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"uploadapi/internal/config"
)

// localStorage writes blobs as plain files under a single directory.
type localStorage struct {
	dir string
}

// NewLocal creates a filesystem-backed BlobStore rooted at cfg.Dir.
// The directory is resolved to an absolute path once; it is created lazily on first write.
func NewLocal(cfg config.LocalConfig) (BlobStore, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("local upload dir is required")
	}
	abs, err := filepath.Abs(cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("resolve upload dir: %w", err)
	}
	return &localStorage{dir: abs}, nil
}

// Store writes content to <dir>/<name>, replacing any existing file of that name.
func (l *localStorage) Store(ctx context.Context, name string, content []byte, _ string) (Object, error) {
	if err := ctx.Err(); err != nil {
		return Object{}, err
	}

	// Only the base name is used so a key can never point outside dir.
	base := filepath.Base(filepath.Clean("/" + filepath.FromSlash(name)))
	if base == "." || base == ".." || base == string(filepath.Separator) {
		return Object{}, fmt.Errorf("invalid file name %q", name)
	}

	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return Object{}, fmt.Errorf("create upload dir: %w", err)
	}

	path := filepath.Join(l.dir, base)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return Object{}, fmt.Errorf("write file: %w", err)
	}

	return Object{
		Key:     base,
		Locator: path,
		Remote:  false,
		Size:    int64(len(content)),
	}, nil
}
