// Package storage provides blob storage operations behind a driver-neutral
// System interface, with Azure Blob Storage and local filesystem drivers.
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/myreply/docket/pkg/lifecycle"
)

// ObjectInfo describes a stored object for listing operations.
type ObjectInfo struct {
	Key     string
	Size    int64
	ModTime time.Time
}

// System manages blob storage operations and lifecycle coordination.
type System interface {
	// Start registers a startup hook that initializes the storage location.
	Start(lc *lifecycle.Coordinator) error
	// Upload streams data to an object at the given key with the specified content type.
	Upload(ctx context.Context, key string, reader io.Reader, contentType string) error
	// Download returns a stream for the object at the given key. The caller must
	// close the reader. Returns ErrNotFound if the object does not exist.
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	// Exists reports whether an object exists at the given key.
	Exists(ctx context.Context, key string) (bool, error)
	// List returns info for every object whose key starts with prefix.
	// An empty prefix lists everything.
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)
}

// New creates a storage system for the configured driver.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	switch cfg.Driver {
	case DriverAzure:
		return newAzure(cfg, logger)
	case DriverFilesystem:
		return newFilesystem(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown storage driver: %q", cfg.Driver)
	}
}

func validateKey(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if strings.Contains(key, "..") {
		return ErrInvalidKey
	}
	return nil
}
