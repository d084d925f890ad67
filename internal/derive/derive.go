// Package derive computes the render-ready document record from mapped
// survey answers: identifiers, formatted monetary values, display strings,
// acknowledgment counts, the narrative paragraph, and the legal defense
// codes.
//
// Derivation never fails on missing or malformed optional answers; those
// resolve to display sentinels. The only fatal condition is a missing
// response id, because no artifact name can be formed without it.
package derive

import (
	"strconv"
	"strings"
	"time"

	"github.com/mssola/useragent"

	"github.com/myreply/docket/internal/gates"
	"github.com/myreply/docket/internal/mapping"
	"github.com/myreply/docket/pkg/formatting"
)

// Semantic field names the engine derives from.
const (
	FieldMonthlyRent    = "monthly_rent"
	FieldLateFees       = "late_fees"
	FieldOtherFees      = "other_fees"
	FieldNoticeReceived = "notice_received"
	FieldRating         = "confidence_rating"
)

// currencyFields contribute to the total owed, in display order.
var currencyFields = []string{FieldMonthlyRent, FieldLateFees, FieldOtherFees}

// ackFields are the acknowledgment questions counted toward the completeness
// signal, in display order.
var ackFields = []string{
	"reviewed_notice",
	"understands_deadline",
	"confirms_accuracy",
	"requests_hearing",
	"agrees_to_terms",
	"wants_legal_aid",
}

// Checkbox display glyphs for acknowledgment answers.
const (
	CheckedBox   = "☑"
	UncheckedBox = "☐"
)

const documentIDLength = 12

// SubmissionMeta carries submission-scoped metadata from the webhook event.
type SubmissionMeta struct {
	ResponseID    string
	SurveyID      string
	SurveyTitle   string
	UserAgent     string
	CompletionURL string
	Source        string
	FinishedAt    time.Time
}

// DocumentRecord is the fully derived, render-ready record. Created once per
// eligible submission and never mutated afterwards; only its rendered form
// is persisted.
type DocumentRecord struct {
	DocumentID  string
	GeneratedAt string
	ResponseID  string

	SurveyTitle   string
	Device        string
	CompletionURL string

	MonthlyRent string
	LateFees    string
	OtherFees   string
	TotalOwed   string

	RatingDisplay   string
	Acknowledgments map[string]string
	AckCount        string

	Narrative  string
	LegalCodes []string
}

// Placeholders flattens the record into template substitution values.
// Non-string derived values are stringified here.
func (r *DocumentRecord) Placeholders() map[string]string {
	values := map[string]string{
		"document_id":    r.DocumentID,
		"generated_at":   r.GeneratedAt,
		"response_id":    r.ResponseID,
		"survey_title":   r.SurveyTitle,
		"device":         r.Device,
		"completion_url": r.CompletionURL,
		"monthly_rent":   r.MonthlyRent,
		"late_fees":      r.LateFees,
		"other_fees":     r.OtherFees,
		"total_owed":     r.TotalOwed,
		"rating":         r.RatingDisplay,
		"ack_count":      r.AckCount,
		"narrative":      r.Narrative,
		"legal_codes":    strings.Join(r.LegalCodes, ", "),
	}
	for field, box := range r.Acknowledgments {
		values[field] = box
	}
	return values
}

// Options configures survey-specific sentinels the engine compares against.
type Options struct {
	// PaidFullOptionID is the survey option id for "paid the full amount".
	PaidFullOptionID string
	// AttemptedOptionID is the survey option id for "attempted to pay".
	AttemptedOptionID string
}

// Engine derives document records from mapped answers.
type Engine struct {
	opts Options
}

// New creates a derivation engine with the given survey option sentinels.
func New(opts Options) *Engine {
	return &Engine{opts: opts}
}

// Derive computes the document record for a submission. Deterministic given
// the same answers and metadata.
func (e *Engine) Derive(answers mapping.AnswerSet, meta SubmissionMeta) (*DocumentRecord, error) {
	if meta.ResponseID == "" {
		return nil, ErrMissingResponseID
	}

	record := &DocumentRecord{
		DocumentID:    deriveDocumentID(meta.ResponseID),
		GeneratedAt:   meta.FinishedAt.Format("January 2, 2006"),
		ResponseID:    meta.ResponseID,
		SurveyTitle:   fallback(meta.SurveyTitle, formatting.NotAvailable),
		Device:        deriveDevice(meta.UserAgent),
		CompletionURL: fallback(meta.CompletionURL, formatting.NotAvailable),
	}

	var total float64
	record.MonthlyRent, total = addCurrency(answers, FieldMonthlyRent, total)
	record.LateFees, total = addCurrency(answers, FieldLateFees, total)
	record.OtherFees, total = addCurrency(answers, FieldOtherFees, total)
	record.TotalOwed = formatting.FormatCurrency(total)

	record.RatingDisplay = deriveRating(answers)
	record.Acknowledgments, record.AckCount = deriveAcknowledgments(answers)
	record.Narrative = synthesizeNarrative(answers, total)
	record.LegalCodes = LegalCodes(answers.String(gates.FieldPaymentStatus), e.opts)

	return record, nil
}

// deriveDocumentID returns the first 12 characters of the response id,
// upper-cased.
func deriveDocumentID(responseID string) string {
	id := responseID
	if len(id) > documentIDLength {
		id = id[:documentIDLength]
	}
	return strings.ToUpper(id)
}

// addCurrency resolves a monetary field to its display string and
// accumulates the running total. Absent or unparsable values display the
// sentinel and contribute zero.
func addCurrency(answers mapping.AnswerSet, field string, total float64) (string, float64) {
	raw := answers.String(field)
	if raw == "" {
		return formatting.NotAvailable, total
	}

	amount, err := formatting.ParseAmount(raw)
	if err != nil {
		return formatting.NotAvailable, total
	}

	return formatting.FormatCurrency(amount), total + amount
}

func deriveRating(answers mapping.AnswerSet) string {
	raw := answers.String(FieldRating)
	rating, err := strconv.Atoi(raw)
	if err != nil || rating < 1 || rating > 10 {
		return formatting.NotAvailable
	}
	return formatting.FormatRating(rating)
}

// deriveAcknowledgments renders every acknowledgment field uniformly: the
// affirmative sentinel checks the box, anything else leaves it empty.
func deriveAcknowledgments(answers mapping.AnswerSet) (map[string]string, string) {
	boxes := make(map[string]string, len(ackFields))
	checked := 0

	for _, field := range ackFields {
		if answers.String(field) == gates.Affirmative {
			boxes[field] = CheckedBox
			checked++
			continue
		}
		boxes[field] = UncheckedBox
	}

	return boxes, strconv.Itoa(checked) + " of " + strconv.Itoa(len(ackFields))
}

func deriveDevice(rawUA string) string {
	if rawUA == "" {
		return formatting.NotAvailable
	}

	ua := useragent.New(rawUA)
	browser, _ := ua.Browser()
	os := ua.OS()
	if browser == "" || os == "" {
		return rawUA
	}

	return browser + " on " + os
}

func fallback(v, sentinel string) string {
	if v == "" {
		return sentinel
	}
	return v
}
