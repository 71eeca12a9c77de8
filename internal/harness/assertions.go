package harness

import (
	"fmt"
	"slices"
)

// Evaluate checks a result against a scenario's expectations and returns
// every mismatch rather than stopping at the first, so a failing scenario
// reports its whole diff in one run.
func Evaluate(s *Scenario, r *Result) []error {
	var errs []error

	if r.Status != s.Expect.Status {
		errs = append(errs, fmt.Errorf("status: got %q, want %q", r.Status, s.Expect.Status))
	}

	if !slices.Equal(r.Order, s.Expect.Order) {
		errs = append(errs, fmt.Errorf("order: got %v, want %v", r.Order, s.Expect.Order))
	}

	if s.Expect.MaxDecisions != nil && r.Decisions > *s.Expect.MaxDecisions {
		errs = append(errs, fmt.Errorf("decisions: got %d, budget %d", r.Decisions, *s.Expect.MaxDecisions))
	}

	// Outcomes must always respect the engine's own bound, whether or not
	// the scenario tightened it.
	if budget := decisionBudget(len(s.Items)); r.Decisions > budget {
		errs = append(errs, fmt.Errorf("decisions: got %d, binary-insertion bound %d", r.Decisions, budget))
	}

	return errs
}
