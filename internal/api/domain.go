package api

import (
	"github.com/myreply/docket/internal/analysis"
	"github.com/myreply/docket/internal/artifacts"
	"github.com/myreply/docket/internal/audit"
	"github.com/myreply/docket/internal/derive"
	"github.com/myreply/docket/internal/gates"
	"github.com/myreply/docket/internal/mapping"
	"github.com/myreply/docket/internal/webhook"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Artifacts artifacts.System
	Audit     audit.System
	Pipeline  *webhook.Pipeline
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	artifactSys := artifacts.New(
		runtime.Storage,
		runtime.Pipeline.ArtifactPrefix,
		runtime.Logger,
	)

	auditSys := audit.New(
		runtime.Database.Connection(),
		runtime.Logger,
	)

	analysisClient := analysis.New(
		&runtime.Analysis,
		runtime.Logger,
		runtime.Metrics,
	)

	engine := derive.New(derive.Options{
		PaidFullOptionID:  runtime.Pipeline.PaidFullOptionID,
		AttemptedOptionID: runtime.Pipeline.AttemptedOptionID,
	})

	pipeline := webhook.NewPipeline(
		mapping.New(runtime.Pipeline.Fields),
		gates.EvictionChain(runtime.Pipeline.NoAttemptOptionID),
		engine,
		analysisClient,
		artifactSys,
		auditSys,
		runtime.Metrics,
		runtime.Logger,
		runtime.Pipeline.TemplatePath,
		runtime.Pipeline.State,
	)

	return &Domain{
		Artifacts: artifactSys,
		Audit:     auditSys,
		Pipeline:  pipeline,
	}
}
