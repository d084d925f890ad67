package artifacts_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/myreply/docket/internal/artifacts"
	"github.com/myreply/docket/pkg/storage"
)

func testSystem(t *testing.T) (artifacts.System, storage.System) {
	t.Helper()

	cfg := &storage.Config{Driver: storage.DriverFilesystem, Root: t.TempDir()}
	store, err := storage.New(cfg, slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatalf("storage init failed: %v", err)
	}

	return artifacts.New(store, "answer", slog.New(slog.DiscardHandler)), store
}

func TestPersistAndRetrieve(t *testing.T) {
	sys, _ := testSystem(t)
	ctx := context.Background()
	content := []byte("<html>rendered</html>")

	handle, err := sys.Persist(ctx, "resp_123", content)
	if err != nil {
		t.Fatalf("persist failed: %v", err)
	}

	if !strings.HasPrefix(handle.Key, "answer-resp_123-") {
		t.Errorf("key = %q, want answer-resp_123- prefix", handle.Key)
	}
	if !strings.HasSuffix(handle.Key, ".html") {
		t.Errorf("key = %q, want .html suffix", handle.Key)
	}
	if handle.Size != int64(len(content)) {
		t.Errorf("size = %d, want %d", handle.Size, len(content))
	}

	artifact, err := sys.Retrieve(ctx, "resp_123")
	if err != nil {
		t.Fatalf("retrieve failed: %v", err)
	}
	if !bytes.Equal(artifact.Content, content) {
		t.Errorf("content = %q, want %q", artifact.Content, content)
	}
	if artifact.Key != handle.Key {
		t.Errorf("retrieved key = %q, want %q", artifact.Key, handle.Key)
	}
}

func TestPersistDistinctKeysPerGeneration(t *testing.T) {
	sys, _ := testSystem(t)
	ctx := context.Background()

	first, err := sys.Persist(ctx, "resp_123", []byte("first version"))
	if err != nil {
		t.Fatalf("persist failed: %v", err)
	}
	second, err := sys.Persist(ctx, "resp_123", []byte("second version"))
	if err != nil {
		t.Fatalf("persist failed: %v", err)
	}

	if first.Key == second.Key {
		t.Errorf("regeneration reused key %q", first.Key)
	}
}

func TestRetrieveReturnsNewest(t *testing.T) {
	root := t.TempDir()
	store, err := storage.New(&storage.Config{Driver: storage.DriverFilesystem, Root: root}, slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatalf("storage init failed: %v", err)
	}
	sys := artifacts.New(store, "answer", slog.New(slog.DiscardHandler))
	ctx := context.Background()

	first, err := sys.Persist(ctx, "resp_123", []byte("old"))
	if err != nil {
		t.Fatalf("persist failed: %v", err)
	}

	// Age the first generation so the second one is unambiguously newer.
	past := time.Now().Add(-time.Hour)
	if err := os.Chtimes(filepath.Join(root, first.Key), past, past); err != nil {
		t.Fatalf("chtimes failed: %v", err)
	}

	if _, err := sys.Persist(ctx, "resp_123", []byte("new")); err != nil {
		t.Fatalf("persist failed: %v", err)
	}

	artifact, err := sys.Retrieve(ctx, "resp_123")
	if err != nil {
		t.Fatalf("retrieve failed: %v", err)
	}
	if string(artifact.Content) != "new" {
		t.Errorf("content = %q, want newest generation", artifact.Content)
	}
}

func TestRetrieveScopedToResponse(t *testing.T) {
	sys, _ := testSystem(t)
	ctx := context.Background()

	if _, err := sys.Persist(ctx, "resp_a", []byte("for a")); err != nil {
		t.Fatalf("persist failed: %v", err)
	}
	if _, err := sys.Persist(ctx, "resp_b", []byte("for b")); err != nil {
		t.Fatalf("persist failed: %v", err)
	}

	artifact, err := sys.Retrieve(ctx, "resp_a")
	if err != nil {
		t.Fatalf("retrieve failed: %v", err)
	}
	if string(artifact.Content) != "for a" {
		t.Errorf("content = %q, want resp_a artifact", artifact.Content)
	}
}

func TestRetrieveNotFound(t *testing.T) {
	sys, _ := testSystem(t)

	_, err := sys.Retrieve(context.Background(), "never_generated")
	if !errors.Is(err, artifacts.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestPersistEmptyResponseID(t *testing.T) {
	sys, _ := testSystem(t)

	_, err := sys.Persist(context.Background(), "", []byte("content"))
	if !errors.Is(err, artifacts.ErrEmptyResponseID) {
		t.Errorf("err = %v, want ErrEmptyResponseID", err)
	}
}

func TestLatest(t *testing.T) {
	sys, _ := testSystem(t)
	ctx := context.Background()

	_, err := sys.Latest(ctx)
	if !errors.Is(err, artifacts.ErrNotFound) {
		t.Errorf("empty store err = %v, want ErrNotFound", err)
	}

	if _, err := sys.Persist(ctx, "resp_123", []byte("content")); err != nil {
		t.Fatalf("persist failed: %v", err)
	}

	artifact, err := sys.Latest(ctx)
	if err != nil {
		t.Fatalf("latest failed: %v", err)
	}
	if string(artifact.Content) != "content" {
		t.Errorf("content = %q", artifact.Content)
	}
}
