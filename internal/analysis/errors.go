package analysis

import "errors"

// ErrAnalysisFailed indicates the collaborator call failed or returned an
// unexpected shape. Callers report it as a generation failure, not a fault.
var ErrAnalysisFailed = errors.New("analysis generation failed")
