// Package artifacts persists rendered documents and retrieves them by
// response id or recency.
//
// Artifact keys are {prefix}-{responseID}-{unixMillis}-{contentHash}.html.
// The content hash suffix keeps two generations for the same response inside
// the same millisecond from colliding; repeated generations supersede rather
// than overwrite each other, and deletion is left to external housekeeping.
package artifacts

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/myreply/docket/pkg/formatting"
	"github.com/myreply/docket/pkg/storage"
)

// ContentType is the stored content type of every rendered artifact.
const ContentType = "text/html; charset=utf-8"

const (
	extension      = ".html"
	hashSuffixSize = 8
)

// Handle identifies a persisted artifact.
type Handle struct {
	Key         string    `json:"key"`
	Size        int64     `json:"size"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Artifact is a retrieved rendered document.
type Artifact struct {
	Key     string
	Content []byte
	ModTime time.Time
}

// System persists and retrieves rendered artifacts.
type System interface {
	// Persist writes rendered content under a deterministic key for the
	// response id. Later generations for the same response produce new keys.
	Persist(ctx context.Context, responseID string, content []byte) (*Handle, error)
	// Retrieve returns the most recent artifact for the given response id.
	// Returns ErrNotFound when none has been generated yet.
	Retrieve(ctx context.Context, responseID string) (*Artifact, error)
	// Latest returns the most recently modified artifact in the store.
	// Returns ErrNotFound when the store is empty.
	Latest(ctx context.Context) (*Artifact, error)
}

type store struct {
	storage storage.System
	prefix  string
	logger  *slog.Logger
	now     func() time.Time
}

// New creates an artifact system over the given storage backend. prefix
// namespaces artifact keys within the backend.
func New(st storage.System, prefix string, logger *slog.Logger) System {
	return &store{
		storage: st,
		prefix:  prefix,
		logger:  logger.With("system", "artifacts"),
		now:     time.Now,
	}
}

func (s *store) Persist(ctx context.Context, responseID string, content []byte) (*Handle, error) {
	if responseID == "" {
		return nil, ErrEmptyResponseID
	}

	generatedAt := s.now().UTC()
	key := s.buildKey(responseID, generatedAt, content)

	if err := s.storage.Upload(ctx, key, bytes.NewReader(content), ContentType); err != nil {
		return nil, fmt.Errorf("persist artifact %s: %w", key, err)
	}

	s.logger.Info(
		"artifact persisted",
		"key", key,
		"size", formatting.FormatBytes(int64(len(content)), 1),
	)

	return &Handle{
		Key:         key,
		Size:        int64(len(content)),
		GeneratedAt: generatedAt,
	}, nil
}

func (s *store) Retrieve(ctx context.Context, responseID string) (*Artifact, error) {
	if responseID == "" {
		return nil, ErrEmptyResponseID
	}
	return s.newest(ctx, fmt.Sprintf("%s-%s-", s.prefix, responseID))
}

func (s *store) Latest(ctx context.Context) (*Artifact, error) {
	return s.newest(ctx, s.prefix+"-")
}

// newest scans objects under prefix and downloads the one with the most
// recent modification time.
func (s *store) newest(ctx context.Context, prefix string) (*Artifact, error) {
	infos, err := s.storage.List(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("list artifacts %s: %w", prefix, err)
	}
	if len(infos) == 0 {
		return nil, ErrNotFound
	}

	pick := infos[0]
	for _, info := range infos[1:] {
		if info.ModTime.After(pick.ModTime) {
			pick = info
		}
	}

	reader, err := s.storage.Download(ctx, pick.Key)
	if err != nil {
		return nil, fmt.Errorf("download artifact %s: %w", pick.Key, err)
	}
	defer reader.Close()

	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read artifact %s: %w", pick.Key, err)
	}

	return &Artifact{
		Key:     pick.Key,
		Content: content,
		ModTime: pick.ModTime,
	}, nil
}

func (s *store) buildKey(responseID string, generatedAt time.Time, content []byte) string {
	sum := sha256.Sum256(content)
	suffix := hex.EncodeToString(sum[:])[:hashSuffixSize]
	return fmt.Sprintf("%s-%s-%d-%s%s", s.prefix, responseID, generatedAt.UnixMilli(), suffix, extension)
}
