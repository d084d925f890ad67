package api

import (
	"net/http"

	"github.com/myreply/docket/internal/artifacts"
	"github.com/myreply/docket/internal/audit"
	"github.com/myreply/docket/internal/webhook"
	"github.com/myreply/docket/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, domain *Domain, runtime *Runtime) {
	routes.Register(
		mux,
		webhook.NewHandler(domain.Pipeline, runtime.Logger).Routes(),
		artifacts.NewHandler(domain.Artifacts, runtime.Logger).Routes(),
		audit.NewHandler(domain.Audit, runtime.Logger).Routes(),
	)
}
