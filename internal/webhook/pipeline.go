package webhook

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/myreply/docket/internal/analysis"
	"github.com/myreply/docket/internal/artifacts"
	"github.com/myreply/docket/internal/audit"
	"github.com/myreply/docket/internal/derive"
	"github.com/myreply/docket/internal/gates"
	"github.com/myreply/docket/internal/mapping"
	"github.com/myreply/docket/internal/render"
	"github.com/myreply/docket/pkg/metrics"
)

// Outcome is the structured result of one pipeline run, acknowledged back to
// the event source.
type Outcome struct {
	Result      string   `json:"result"`
	Gate        string   `json:"gate,omitempty"`
	Reason      string   `json:"reason,omitempty"`
	Detail      string   `json:"detail,omitempty"`
	DocumentID  string   `json:"document_id,omitempty"`
	ArtifactKey string   `json:"artifact_key,omitempty"`
	DocumentURL string   `json:"document_url,omitempty"`
	LegalCodes  []string `json:"legal_codes,omitempty"`
}

// Pipeline wires the generation stages together. Each invocation is
// stateless; the only shared state is the read-only field mapping and gate
// chain configured at construction.
type Pipeline struct {
	mapping      mapping.Mapping
	chain        gates.Chain
	engine       *derive.Engine
	analysis     *analysis.Client
	artifacts    artifacts.System
	audit        audit.System
	metrics      *metrics.Metrics
	logger       *slog.Logger
	templatePath string
	state        string
}

// NewPipeline assembles the pipeline. audit may be nil, in which case
// outcomes are logged but not persisted.
func NewPipeline(
	fieldMapping mapping.Mapping,
	chain gates.Chain,
	engine *derive.Engine,
	analysisClient *analysis.Client,
	artifactSys artifacts.System,
	auditSys audit.System,
	m *metrics.Metrics,
	logger *slog.Logger,
	templatePath string,
	state string,
) *Pipeline {
	return &Pipeline{
		mapping:      fieldMapping,
		chain:        chain,
		engine:       engine,
		analysis:     analysisClient,
		artifacts:    artifactSys,
		audit:        auditSys,
		metrics:      m,
		logger:       logger.With("system", "pipeline"),
		templatePath: templatePath,
		state:        state,
	}
}

// Run processes one finished submission end to end. Ineligibility and
// generation failures are normal outcomes; the returned error is non-nil
// only for malformed input.
func (p *Pipeline) Run(ctx context.Context, sub Submission) (*Outcome, error) {
	if sub.ID == "" || sub.Data == nil {
		return nil, ErrMalformedEvent
	}

	mapped := p.mapping.Apply(sub.Data)

	result := p.chain.Evaluate(mapped)
	for _, gate := range result.Outcomes {
		p.logger.Info(
			"gate evaluated",
			"response_id", sub.ID,
			"gate", gate.Gate,
			"passed", gate.Passed,
		)
	}

	if !result.Eligible {
		p.metrics.IncrementGateFailure(result.FailedGate)
		outcome := &Outcome{
			Result: audit.OutcomeIneligible,
			Gate:   result.FailedGate,
			Reason: result.Reason,
		}
		p.conclude(ctx, sub, outcome)
		return outcome, nil
	}

	record, err := p.engine.Derive(mapped, derive.SubmissionMeta{
		ResponseID:    sub.ID,
		SurveyID:      sub.SurveyID,
		SurveyTitle:   sub.Survey.Title,
		UserAgent:     sub.Meta.UserAgent,
		CompletionURL: sub.Meta.URL,
		Source:        sub.Meta.Source,
		FinishedAt:    time.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedEvent, err)
	}

	// The template read and the collaborator round trip are independent
	// blocking calls.
	var (
		template []byte
		composed *analysis.Result
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		data, err := os.ReadFile(p.templatePath)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrTemplateUnavailable, err)
		}
		template = data
		return nil
	})
	g.Go(func() error {
		result, err := p.analysis.GenerateArguments(gctx, &analysis.Request{
			ResponseID:    sub.ID,
			State:         p.state,
			PaymentStatus: mapped.String(gates.FieldPaymentStatus),
			NoticeURL:     mapped.String(gates.FieldEvictionNote),
			UpCodes:       record.LegalCodes,
		})
		if err != nil {
			return err
		}
		composed = result
		return nil
	})

	if err := g.Wait(); err != nil {
		return p.generationFailed(ctx, sub, err), nil
	}

	values := record.Placeholders()
	values["legal_arguments"] = composed.ArgumentText
	values["document_url"] = composed.DocumentURL

	rendered := render.Render(string(template), values)

	handle, err := p.artifacts.Persist(ctx, sub.ID, []byte(rendered))
	if err != nil {
		return p.generationFailed(ctx, sub, err), nil
	}

	outcome := &Outcome{
		Result:      audit.OutcomeGenerated,
		DocumentID:  record.DocumentID,
		ArtifactKey: handle.Key,
		DocumentURL: composed.DocumentURL,
		LegalCodes:  record.LegalCodes,
	}
	p.conclude(ctx, sub, outcome)
	return outcome, nil
}

// RecordSkipped records a submission that never entered the pipeline, such
// as an unfinished response.
func (p *Pipeline) RecordSkipped(ctx context.Context, sub Submission, reason string) {
	p.conclude(ctx, sub, &Outcome{
		Result: audit.OutcomeSkipped,
		Reason: reason,
	})
}

// RecordRejected records a submission refused for missing required event
// fields.
func (p *Pipeline) RecordRejected(ctx context.Context, sub Submission, reason string) {
	p.conclude(ctx, sub, &Outcome{
		Result: audit.OutcomeRejected,
		Reason: reason,
	})
}

// generationFailed converts a template, collaborator, or storage error into
// the non-fatal generation_failed outcome. The event source still receives a
// success acknowledgment; retrying the webhook cannot fix a local problem.
func (p *Pipeline) generationFailed(ctx context.Context, sub Submission, cause error) *Outcome {
	reason := "analysis collaborator failed"
	if errors.Is(cause, ErrTemplateUnavailable) {
		reason = "document template unavailable"
	} else if !errors.Is(cause, analysis.ErrAnalysisFailed) {
		reason = "artifact persistence failed"
	}

	p.logger.Error(
		"generation failed",
		"response_id", sub.ID,
		"reason", reason,
		"error", cause,
	)

	outcome := &Outcome{
		Result: audit.OutcomeFailed,
		Reason: reason,
		Detail: cause.Error(),
	}
	p.conclude(ctx, sub, outcome)
	return outcome
}

// conclude records the outcome in metrics and the audit log. Audit failures
// are logged only; a dead audit store must not fail the acknowledgment.
func (p *Pipeline) conclude(ctx context.Context, sub Submission, outcome *Outcome) {
	p.metrics.IncrementOutcome(outcome.Result)

	p.logger.Info(
		"pipeline concluded",
		"response_id", sub.ID,
		"result", outcome.Result,
		"gate", outcome.Gate,
		"reason", outcome.Reason,
	)

	if p.audit == nil {
		return
	}

	if _, err := p.audit.Record(ctx, audit.Entry{
		ResponseID:  sub.ID,
		SurveyID:    sub.SurveyID,
		Outcome:     outcome.Result,
		Gate:        outcome.Gate,
		Reason:      outcome.Reason,
		ArtifactKey: outcome.ArtifactKey,
	}); err != nil {
		p.logger.Error("audit record failed", "response_id", sub.ID, "error", err)
	}
}
