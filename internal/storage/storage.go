package storage

import (
	"context"
	"fmt"
	"net/url"

	"uploadapi/internal/config"
)

// Package storage contains the blob store used by the ingestion workflow.
// Drivers are interchangeable and chosen by configuration: local filesystem, MinIO, or S3.

// Object describes a blob after it has been durably written.
type Object struct {
	// Key is the name the blob was stored under.
	Key string
	// Locator resolves back to the blob: an absolute path for local storage, a public URL for buckets.
	Locator string
	// Remote reports whether Locator is a URL.
	Remote bool
	Size   int64
}

// BlobStore writes a named payload to durable storage.
// Writing an existing name overwrites it. Implementations are safe for concurrent use.
type BlobStore interface {
	Store(ctx context.Context, name string, content []byte, contentType string) (Object, error)
}

// New builds the BlobStore selected by cfg.Driver. It also rejects an unknown
// key strategy so a typo fails at startup instead of silently keeping original names.
func New(ctx context.Context, cfg config.StorageConfig) (BlobStore, error) {
	switch cfg.KeyStrategy {
	case config.KeyStrategyOriginal, config.KeyStrategyUUID, "":
	default:
		return nil, fmt.Errorf("unknown storage key strategy %q", cfg.KeyStrategy)
	}

	switch cfg.Driver {
	case config.StorageDriverLocal, "":
		return NewLocal(cfg.Local)
	case config.StorageDriverMinIO:
		return NewMinIO(ctx, cfg.MinIO)
	case config.StorageDriverS3:
		return NewS3(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// joinURL appends escaped path elements to base.
func joinURL(base string, elem ...string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("base url %q must be absolute", base)
	}
	escaped := make([]string, len(elem))
	for i, e := range elem {
		escaped[i] = url.PathEscape(e)
	}
	return u.JoinPath(escaped...).String(), nil
}
