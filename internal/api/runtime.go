package api

import (
	"github.com/myreply/docket/internal/analysis"
	"github.com/myreply/docket/internal/config"
	"github.com/myreply/docket/internal/infrastructure"
)

// Runtime extends Infrastructure with API-scoped configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Pipeline config.PipelineConfig
	Analysis analysis.Config
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
			Storage:   infra.Storage,
			Metrics:   infra.Metrics,
		},
		Pipeline: cfg.Pipeline,
		Analysis: cfg.Analysis,
	}
}
