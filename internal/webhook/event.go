// Package webhook receives survey-completion events and drives the document
// generation pipeline: field mapping, eligibility gates, derivation, the
// analysis collaborator, template rendering, and artifact persistence.
package webhook

import "github.com/myreply/docket/internal/mapping"

// Event types from the survey platform.
const (
	EventResponseFinished = "responseFinished"
	EventTest             = "testEndpoint"
)

// Event is the inbound webhook payload.
type Event struct {
	WebhookID string     `json:"webhookId"`
	Event     string     `json:"event"`
	Data      Submission `json:"data"`
}

// Submission is one survey response, carrying the raw opaquely-keyed answers
// alongside survey and client metadata.
type Submission struct {
	ID        string            `json:"id"`
	SurveyID  string            `json:"surveyId"`
	Finished  bool              `json:"finished"`
	Data      mapping.AnswerSet `json:"data"`
	Variables map[string]any    `json:"variables"`
	Survey    SurveyInfo        `json:"survey"`
	Meta      Meta              `json:"meta"`
}

// SurveyInfo is pass-through survey metadata.
type SurveyInfo struct {
	Title  string `json:"title"`
	Type   string `json:"type"`
	Status string `json:"status"`
}

// Meta is pass-through client metadata for the submission.
type Meta struct {
	UserAgent string `json:"userAgent"`
	URL       string `json:"url"`
	Source    string `json:"source"`
}
