// Package audit records pipeline outcomes for compliance review. Every
// decision, whether it generated a document or not, is written to Postgres
// so operators can reconstruct why a submission did or did not produce one.
package audit

import (
	"time"

	"github.com/google/uuid"
)

// Outcome values recorded for pipeline decisions.
const (
	OutcomeGenerated  = "generated"
	OutcomeIneligible = "ineligible"
	OutcomeSkipped    = "skipped"
	OutcomeFailed     = "generation_failed"
	OutcomeRejected   = "rejected"
)

// Entry is one recorded pipeline decision.
type Entry struct {
	ID          uuid.UUID `json:"id"`
	ResponseID  string    `json:"response_id"`
	SurveyID    string    `json:"survey_id"`
	Outcome     string    `json:"outcome"`
	Gate        string    `json:"gate,omitempty"`
	Reason      string    `json:"reason,omitempty"`
	ArtifactKey string    `json:"artifact_key,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
