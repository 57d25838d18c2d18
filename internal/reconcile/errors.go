package reconcile

import (
	"errors"
	"fmt"
)

// Flattening errors. Both mark trade shapes the two-asset model cannot
// express; the batch runner records the hash and moves on.
var (
	// ErrMissingLeg is returned when a transaction has no qualifying
	// transfers on one side after all fallback heuristics.
	ErrMissingLeg = errors.New("missing leg: no qualifying transfers")

	// ErrMixedAssets is returned when transfers within one leg span more
	// than one asset.
	ErrMixedAssets = errors.New("mixed assets within one leg")
)

// RelevanceLookupError wraps a failed receipt fetch during relevance
// determination. It is fatal to the affected hash only.
type RelevanceLookupError struct {
	Hash string
	Err  error
}

func (e *RelevanceLookupError) Error() string {
	return fmt.Sprintf("relevance lookup for %s: %v", e.Hash, e.Err)
}

func (e *RelevanceLookupError) Unwrap() error {
	return e.Err
}
