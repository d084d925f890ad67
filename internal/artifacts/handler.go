package artifacts

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/myreply/docket/pkg/handlers"
	"github.com/myreply/docket/pkg/routes"
)

// Handler provides the HTTP retrieval endpoint for artifacts.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler over the given artifact system.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "artifacts"),
	}
}

// Routes returns the route group definition for artifact endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/artifacts",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.Download},
		},
	}
}

// Download serves an artifact as a downloadable document. With a response_id
// query parameter it returns that response's latest artifact; without one it
// returns the most recently generated artifact overall.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	var (
		artifact *Artifact
		err      error
	)

	if responseID := r.URL.Query().Get("response_id"); responseID != "" {
		artifact, err = h.sys.Retrieve(r.Context(), responseID)
	} else {
		artifact, err = h.sys.Latest(r.Context())
	}

	if err != nil {
		if errors.Is(err, ErrNotFound) {
			handlers.RespondJSON(w, http.StatusNotFound, map[string]string{
				"status": "pending",
				"error":  err.Error(),
			})
			return
		}
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.Header().Set("Content-Type", ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Key))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(artifact.Content); err != nil {
		h.logger.Error("artifact write failed", "key", artifact.Key, "error", err)
	}
}
