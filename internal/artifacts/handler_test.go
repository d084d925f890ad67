package artifacts_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/myreply/docket/internal/artifacts"
)

func testHandler(t *testing.T) (*artifacts.Handler, artifacts.System) {
	t.Helper()
	sys, _ := testSystem(t)
	return artifacts.NewHandler(sys, slog.New(slog.DiscardHandler)), sys
}

func TestDownloadByResponseID(t *testing.T) {
	handler, sys := testHandler(t)

	if _, err := sys.Persist(context.Background(), "resp_123", []byte("<html>doc</html>")); err != nil {
		t.Fatalf("persist failed: %v", err)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/artifacts?response_id=resp_123", nil)
	handler.Download(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != artifacts.ContentType {
		t.Errorf("content type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.HasPrefix(cd, "attachment") {
		t.Errorf("content disposition = %q", cd)
	}
	if rec.Body.String() != "<html>doc</html>" {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestDownloadLatestWithoutResponseID(t *testing.T) {
	handler, sys := testHandler(t)

	if _, err := sys.Persist(context.Background(), "resp_123", []byte("content")); err != nil {
		t.Fatalf("persist failed: %v", err)
	}

	rec := httptest.NewRecorder()
	handler.Download(rec, httptest.NewRequest("GET", "/artifacts", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Body.String() != "content" {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestDownloadPendingGeneration(t *testing.T) {
	handler, _ := testHandler(t)

	rec := httptest.NewRecorder()
	handler.Download(rec, httptest.NewRequest("GET", "/artifacts?response_id=resp_123", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "pending" {
		t.Errorf("status field = %q, want pending", body["status"])
	}
}
