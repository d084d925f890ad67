package audit

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/myreply/docket/pkg/repository"
)

// System provides audit record persistence and listing.
type System interface {
	// Record persists one pipeline decision.
	Record(ctx context.Context, entry Entry) (*Entry, error)
	// List returns the most recent entries, newest first.
	List(ctx context.Context, limit int) ([]Entry, error)
	// Handler returns the HTTP handler for audit endpoints.
	Handler() *Handler
}

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates an audit repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "audit"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) Record(ctx context.Context, entry Entry) (*Entry, error) {
	q := `
		INSERT INTO pipeline_audit(id, response_id, survey_id, outcome, gate, reason, artifact_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, response_id, survey_id, outcome, gate, reason, artifact_key, created_at`

	args := []any{
		uuid.New(),
		entry.ResponseID,
		entry.SurveyID,
		entry.Outcome,
		entry.Gate,
		entry.Reason,
		entry.ArtifactKey,
	}

	recorded, err := repository.QueryOne(ctx, r.db, q, args, scanEntry)
	if err != nil {
		return nil, fmt.Errorf("record audit entry: %w", err)
	}

	r.logger.Info(
		"outcome recorded",
		"response_id", recorded.ResponseID,
		"outcome", recorded.Outcome,
	)

	return &recorded, nil
}

func (r *repo) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit < 1 || limit > maxListLimit {
		limit = defaultListLimit
	}

	q := `
		SELECT id, response_id, survey_id, outcome, gate, reason, artifact_key, created_at
		FROM pipeline_audit
		ORDER BY created_at DESC
		LIMIT $1`

	entries, err := repository.QueryMany(ctx, r.db, q, []any{limit}, scanEntry)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}

	return entries, nil
}

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

func scanEntry(s repository.Scanner) (Entry, error) {
	var e Entry
	err := s.Scan(
		&e.ID,
		&e.ResponseID,
		&e.SurveyID,
		&e.Outcome,
		&e.Gate,
		&e.Reason,
		&e.ArtifactKey,
		&e.CreatedAt,
	)
	return e, err
}
