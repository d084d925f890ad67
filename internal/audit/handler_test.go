package audit_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/myreply/docket/internal/audit"
)

// stubSystem records List calls without a database.
type stubSystem struct {
	entries   []audit.Entry
	err       error
	lastLimit int
}

func (s *stubSystem) Record(ctx context.Context, entry audit.Entry) (*audit.Entry, error) {
	return &entry, nil
}

func (s *stubSystem) List(ctx context.Context, limit int) ([]audit.Entry, error) {
	s.lastLimit = limit
	return s.entries, s.err
}

func (s *stubSystem) Handler() *audit.Handler {
	return audit.NewHandler(s, slog.New(slog.DiscardHandler))
}

func TestListReturnsEntries(t *testing.T) {
	stub := &stubSystem{
		entries: []audit.Entry{
			{
				ID:         uuid.New(),
				ResponseID: "resp_123",
				Outcome:    audit.OutcomeGenerated,
				CreatedAt:  time.Now(),
			},
			{
				ID:         uuid.New(),
				ResponseID: "resp_122",
				Outcome:    audit.OutcomeIneligible,
				Gate:       "jurisdiction",
				CreatedAt:  time.Now().Add(-time.Minute),
			},
		},
	}

	rec := httptest.NewRecorder()
	stub.Handler().List(rec, httptest.NewRequest("GET", "/audit?limit=10", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if stub.lastLimit != 10 {
		t.Errorf("limit = %d, want 10", stub.lastLimit)
	}

	var decoded []audit.Entry
	if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("entries = %d, want 2", len(decoded))
	}
	if decoded[0].Outcome != audit.OutcomeGenerated {
		t.Errorf("first outcome = %q", decoded[0].Outcome)
	}
}

func TestListDefaultsMissingLimit(t *testing.T) {
	stub := &stubSystem{}

	rec := httptest.NewRecorder()
	stub.Handler().List(rec, httptest.NewRequest("GET", "/audit", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if stub.lastLimit != 0 {
		t.Errorf("limit = %d, want 0 passed through for repository default", stub.lastLimit)
	}
}

func TestListError(t *testing.T) {
	stub := &stubSystem{err: errors.New("connection refused")}

	rec := httptest.NewRecorder()
	stub.Handler().List(rec, httptest.NewRequest("GET", "/audit", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}
