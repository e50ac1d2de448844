package partsdex

import "github.com/kailas-cloud/partsdex/internal/domain"

// ErrValidation is returned for a missing or malformed parameter, e.g. an empty make.
// Use errors.Is() to check.
var ErrValidation = domain.ErrValidation
