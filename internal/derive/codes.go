package derive

// Legal defense codes selected from categorical answers.
const (
	// CodeShortNotice challenges an insufficient notice period; always
	// asserted once a submission clears the gate chain.
	CodeShortNotice = "UP003"
	// CodePaidFull asserts the claimed rent was paid in full.
	CodePaidFull = "UP001"
	// CodeAttemptedPayment asserts a refused tender of full payment.
	CodeAttemptedPayment = "UP013"
)

// LegalCodes selects the defense codes for the given categorical payment
// answer. CodePaidFull and CodeAttemptedPayment are mutually exclusive; the
// emitted order is stable for reproducible output.
func LegalCodes(paymentStatus string, opts Options) []string {
	codes := []string{CodeShortNotice}

	switch paymentStatus {
	case opts.PaidFullOptionID:
		codes = append(codes, CodePaidFull)
	case opts.AttemptedOptionID:
		codes = append(codes, CodeAttemptedPayment)
	}

	return codes
}
