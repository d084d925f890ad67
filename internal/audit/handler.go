package audit

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/myreply/docket/pkg/handlers"
	"github.com/myreply/docket/pkg/routes"
)

// Handler provides HTTP endpoints for operator review of pipeline outcomes.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler over the given audit system.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "audit"),
	}
}

// Routes returns the route group definition for audit endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/audit",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
		},
	}
}

// List returns recent pipeline outcomes, newest first. Accepts an optional
// limit query parameter.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	entries, err := h.sys.List(r.Context(), limit)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, entries)
}
