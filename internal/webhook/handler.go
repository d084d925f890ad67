package webhook

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/myreply/docket/pkg/handlers"
	"github.com/myreply/docket/pkg/routes"
)

// Handler is the webhook entry point. Every pipeline outcome, failures
// included, is converted into a structured JSON acknowledgment here; nothing
// escapes uncaught and the process never crashes on a bad event.
type Handler struct {
	pipeline *Pipeline
	logger   *slog.Logger
}

// NewHandler creates the webhook Handler.
func NewHandler(pipeline *Pipeline, logger *slog.Logger) *Handler {
	return &Handler{
		pipeline: pipeline,
		logger:   logger.With("handler", "webhook"),
	}
}

// Routes returns the route group definition for the webhook endpoint.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/webhook",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Receive},
		},
	}
}

// Receive acknowledges a survey platform event. The connectivity-check event
// returns a fixed success without running the pipeline; events other than
// responseFinished are acknowledged and ignored; unfinished responses are
// skipped regardless of answer content.
func (h *Handler) Receive(w http.ResponseWriter, r *http.Request) {
	defer h.recoverPanic(w)

	var event Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrMalformedEvent)
		return
	}

	switch {
	case event.Event == EventTest:
		handlers.RespondJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
			"result": "connectivity",
		})
		return

	case event.Event != EventResponseFinished:
		handlers.RespondJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
			"result": "ignored",
			"event":  event.Event,
		})
		return

	case !event.Data.Finished:
		h.pipeline.RecordSkipped(r.Context(), event.Data, "response not finished")
		handlers.RespondJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
			"result": "skipped",
			"reason": "response not finished",
		})
		return
	}

	outcome, err := h.pipeline.Run(r.Context(), event.Data)
	if err != nil {
		if errors.Is(err, ErrMalformedEvent) {
			h.pipeline.RecordRejected(r.Context(), event.Data, "missing required event fields")
			handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
			return
		}
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, ack{Status: "ok", Outcome: outcome})
}

// ack merges the fixed status field with the pipeline outcome.
type ack struct {
	Status string `json:"status"`
	*Outcome
}

func (h *Handler) recoverPanic(w http.ResponseWriter) {
	if rec := recover(); rec != nil {
		h.logger.Error("webhook processing panicked", "panic", rec)
		handlers.RespondJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "unexpected processing failure",
		})
	}
}
