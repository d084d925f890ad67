package derive

import (
	"strings"

	"github.com/myreply/docket/internal/gates"
	"github.com/myreply/docket/internal/mapping"
	"github.com/myreply/docket/pkg/formatting"
)

// synthesizeNarrative builds the situation paragraph from fixed-order
// sentence fragments. Each fragment triggers on its own derived fact and
// never alters another fragment's wording, so the paragraph is reproducible
// for a given answer set.
func synthesizeNarrative(answers mapping.AnswerSet, total float64) string {
	var fragments []string

	switch answers.String(FieldNoticeReceived) {
	case gates.Affirmative:
		fragments = append(fragments, "The tenant reports receiving a written eviction notice.")
	case "No":
		fragments = append(fragments, "The tenant reports that no written eviction notice was received.")
	}

	if fees, err := formatting.ParseAmount(answers.String(FieldLateFees)); err == nil && fees > 0 {
		fragments = append(fragments,
			"Additional fees of "+formatting.FormatCurrency(fees)+" have been charged beyond the monthly rent.")
	}

	if total > 0 {
		fragments = append(fragments,
			"The total amount claimed, including rent and fees, is "+formatting.FormatCurrency(total)+".")
	}

	if answers.String(gates.FieldResident) == gates.Affirmative {
		fragments = append(fragments, "The tenant currently resides in Colorado.")
	}

	return strings.Join(fragments, " ")
}
