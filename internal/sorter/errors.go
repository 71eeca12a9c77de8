package sorter

import (
	"errors"
	"fmt"
)

// NoComparisonError reports a Choose call made while no comparison was
// pending. This is a driver bug (stray input event after Done, or a call
// before Start), not a runtime condition; the engine never retries or
// recovers on the caller's behalf.
type NoComparisonError struct {
	// Phase is the lifecycle variant the engine held at the time of the
	// call: PhaseEmpty or PhaseDone.
	Phase Phase
}

// Error implements the error interface.
func (e *NoComparisonError) Error() string {
	return fmt.Sprintf("no active comparison: sorter is %s", e.Phase)
}

// IsNoComparison reports whether err is a NoComparisonError.
// Uses errors.As to handle wrapped errors.
func IsNoComparison(err error) bool {
	var e *NoComparisonError
	return errors.As(err, &e)
}
