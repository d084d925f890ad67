package analysis_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/myreply/docket/internal/analysis"
)

func testClient(t *testing.T, baseURL string) *analysis.Client {
	t.Helper()

	cfg := &analysis.Config{BaseURL: baseURL, Timeout: "5s"}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	return analysis.New(cfg, slog.New(slog.DiscardHandler), nil)
}

func testRequest() *analysis.Request {
	return &analysis.Request{
		ResponseID:    "resp_123",
		State:         "Colorado",
		PaymentStatus: "tjif4flki2vwxeonh887bp90",
		NoticeURL:     "https://storage.example.com/notice.pdf",
		UpCodes:       []string{"UP003", "UP001"},
	}
}

func TestGenerateArguments(t *testing.T) {
	var received analysis.Request

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/generate-arguments" {
			t.Errorf("path = %q, want /generate-arguments", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("method = %q, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode request: %v", err)
		}

		json.NewEncoder(w).Encode(analysis.Result{
			DocumentURL:  "https://storage.example.com/args.pdf",
			ArgumentText: "The tenant asserts the notice period was insufficient.",
		})
	}))
	defer srv.Close()

	result, err := testClient(t, srv.URL).GenerateArguments(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if result.ArgumentText == "" {
		t.Error("argument text empty")
	}
	if result.DocumentURL != "https://storage.example.com/args.pdf" {
		t.Errorf("document url = %q", result.DocumentURL)
	}
	if received.ResponseID != "resp_123" || received.State != "Colorado" {
		t.Errorf("collaborator received %+v", received)
	}
	if len(received.UpCodes) != 2 {
		t.Errorf("up codes = %v", received.UpCodes)
	}
}

func TestGenerateArgumentsFencedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Some collaborator backends wrap JSON output in a markdown fence.
		w.Write([]byte("```json\n{\"document_url\":\"u\",\"argument_text\":\"text\"}\n```"))
	}))
	defer srv.Close()

	result, err := testClient(t, srv.URL).GenerateArguments(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if result.ArgumentText != "text" {
		t.Errorf("argument text = %q", result.ArgumentText)
	}
}

func TestGenerateArgumentsNonSuccessStatus(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := testClient(t, srv.URL).GenerateArguments(context.Background(), testRequest())
	if !errors.Is(err, analysis.ErrAnalysisFailed) {
		t.Errorf("err = %v, want ErrAnalysisFailed", err)
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, non-2xx must not be retried", calls.Load())
	}
}

func TestGenerateArgumentsRetriesTransportFailure(t *testing.T) {
	// Point at a closed listener so the first and second attempts both fail
	// at the transport layer.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := testClient(t, srv.URL).GenerateArguments(context.Background(), testRequest())
	if !errors.Is(err, analysis.ErrAnalysisFailed) {
		t.Errorf("err = %v, want ErrAnalysisFailed", err)
	}
}

func TestGenerateArgumentsEmptyArgumentText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(analysis.Result{DocumentURL: "u"})
	}))
	defer srv.Close()

	_, err := testClient(t, srv.URL).GenerateArguments(context.Background(), testRequest())
	if !errors.Is(err, analysis.ErrAnalysisFailed) {
		t.Errorf("err = %v, want ErrAnalysisFailed", err)
	}
}
