package models

import (
	"errors"
)

// Domain error kinds shared across the engines. Callers match with
// errors.Is; engines wrap these with context via fmt.Errorf("...: %w", err).
var (
	// ErrIncompleteData means a mandatory line item or ratio was missing for
	// the requested computation. It is never silently defaulted to zero; the
	// caller is expected to request more data. Ratio-level missingness is not
	// this error - a single undefined ratio propagates as nil with weight
	// redistribution.
	ErrIncompleteData = errors.New("incomplete financial data")

	// ErrInvalidHorizon means the requested forecast horizon is outside the
	// configured bounds.
	ErrInvalidHorizon = errors.New("forecast horizon out of bounds")

	// ErrBusy means a regeneration for the same (company, kind) key is
	// already in flight and the caller chose not to wait.
	ErrBusy = errors.New("regeneration already in progress")
)
