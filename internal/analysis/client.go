// Package analysis calls the external OCR/LLM collaborator that composes
// legal argument text for a submission. The collaborator is a black box with
// a fixed JSON request/response contract; its failures surface as a
// non-fatal "generation failed" outcome, never as a pipeline fault.
package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/myreply/docket/pkg/formatting"
	"github.com/myreply/docket/pkg/metrics"
)

const generatePath = "/generate-arguments"

// maxErrorBody bounds how much of a collaborator error body is attached to
// diagnostics.
const maxErrorBody = 512

// Request identifies the submission and the derived legal position sent to
// the collaborator.
type Request struct {
	ResponseID    string   `json:"response_id"`
	State         string   `json:"state"`
	PaymentStatus string   `json:"payment_status"`
	NoticeURL     string   `json:"notice_url"`
	UpCodes       []string `json:"up_codes"`
}

// Result carries the collaborator's composed output.
type Result struct {
	DocumentURL  string `json:"document_url"`
	ArgumentText string `json:"argument_text"`
}

// Client is an HTTP client for the analysis collaborator.
type Client struct {
	http    *http.Client
	baseURL string
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// New creates a collaborator client. The configured timeout bounds each
// round trip; the transport layer imposes no other limit.
func New(cfg *Config, logger *slog.Logger, m *metrics.Metrics) *Client {
	return &Client{
		http:    &http.Client{Timeout: cfg.TimeoutDuration()},
		baseURL: cfg.BaseURL,
		logger:  logger.With("system", "analysis"),
		metrics: m,
	}
}

// GenerateArguments posts the request to the collaborator and decodes its
// result. A transport failure is retried once, since the call is idempotent
// at the network level; an application-level rejection (non-2xx) is never
// retried.
func (c *Client) GenerateArguments(ctx context.Context, req *Request) (*Result, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode analysis request: %w", err)
	}

	start := time.Now()
	defer func() {
		c.metrics.ObserveAnalysisLatency(time.Since(start))
	}()

	resp, err := c.post(ctx, body)
	if err != nil {
		c.logger.Warn("analysis call retrying after transport failure", "error", err)
		if resp, err = c.post(ctx, body); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrAnalysisFailed, err)
		}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", ErrAnalysisFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf(
			"%w: status %d: %s",
			ErrAnalysisFailed, resp.StatusCode, truncate(payload),
		)
	}

	result, err := formatting.Parse[Result](string(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAnalysisFailed, err)
	}

	if result.ArgumentText == "" {
		return nil, fmt.Errorf("%w: response missing argument_text", ErrAnalysisFailed)
	}

	c.logger.Info(
		"analysis complete",
		"response_id", req.ResponseID,
		"codes", req.UpCodes,
		"duration", time.Since(start),
	)

	return &result, nil
}

func (c *Client) post(ctx context.Context, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost,
		c.baseURL+generatePath,
		bytes.NewReader(body),
	)
	if err != nil {
		return nil, fmt.Errorf("build analysis request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.http.Do(req)
}

func truncate(body []byte) string {
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	return string(body)
}
