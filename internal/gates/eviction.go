package gates

// Canonical gate names for the eviction-defense chain.
const (
	GateJurisdiction = "jurisdiction"
	GatePayment      = "payment_answer"
	GateDisqualifier = "payment_disqualifier"
	GateAttachment   = "notice_attachment"
)

// Semantic field names the eviction chain evaluates.
const (
	FieldResident      = "colorado_resident"
	FieldPaymentStatus = "payment_status"
	FieldEvictionNote  = "eviction_notice"
)

// Affirmative is the sentinel answer for yes/no survey questions.
const Affirmative = "Yes"

// EvictionChain builds the Colorado eviction-defense eligibility chain.
// noAttemptOptionID is the survey option identifier for "did not attempt
// payment", the one categorical answer that disqualifies outright.
func EvictionChain(noAttemptOptionID string) Chain {
	return Chain{
		Equals(GateJurisdiction, FieldResident, Affirmative,
			"not eligible by jurisdiction"),
		Present(GatePayment, FieldPaymentStatus,
			"missing required answer"),
		NotEquals(GateDisqualifier, FieldPaymentStatus, noAttemptOptionID,
			"disqualified by payment status"),
		Present(GateAttachment, FieldEvictionNote,
			"missing required attachment"),
	}
}
