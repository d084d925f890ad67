package webhook

import "errors"

var (
	// ErrMalformedEvent indicates required top-level event fields (response
	// id, answers payload) are missing; the pipeline halts before derivation.
	ErrMalformedEvent = errors.New("malformed webhook event")
	// ErrTemplateUnavailable indicates the document template could not be read.
	ErrTemplateUnavailable = errors.New("document template unavailable")
)
