package derive

import "errors"

// ErrMissingResponseID indicates the submission carried no response id, so
// no artifact name can ever be formed for it.
var ErrMissingResponseID = errors.New("submission missing response id")
