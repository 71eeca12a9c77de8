package harness

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance scenario for the sorting engine.
//
// Exactly one of Decisions or Ranking must be set for inputs that need
// comparisons (two or more items); degenerate inputs need neither.
type Scenario struct {
	// Name uniquely identifies this scenario; it is also the golden
	// file name.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty"`

	// Items is the input list in arrival order.
	Items []string `yaml:"items"`

	// Decisions is a literal script of answers ("candidate" or "pivot"),
	// applied in order. A run may deliberately stop mid-sort by supplying
	// fewer decisions than the run needs.
	Decisions []string `yaml:"decisions,omitempty"`

	// Ranking answers comparisons from a fixed total order: the candidate
	// wins exactly when it appears earlier in this list than the pivot.
	// Every item must appear exactly once.
	Ranking []string `yaml:"ranking,omitempty"`

	// Expect describes the required outcome.
	Expect Expectation `yaml:"expect"`
}

// Expectation is the outcome a scenario requires.
type Expectation struct {
	// Status is the required final lifecycle phase:
	// "empty", "comparing", or "done".
	Status string `yaml:"status"`

	// Order is the required Finish output. For an aborted run this is the
	// snapshot (settled prefix plus pending remainder).
	Order []string `yaml:"order"`

	// MaxDecisions optionally tightens the decision budget below the
	// binary-insertion bound.
	MaxDecisions *int `yaml:"max_decisions,omitempty"`
}

// Load reads a scenario from a YAML file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load scenario: %w", err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return &s, nil
}

// Validate checks scenario well-formedness before execution.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("scenario has no name")
	}
	if len(s.Decisions) > 0 && len(s.Ranking) > 0 {
		return fmt.Errorf("decisions and ranking are mutually exclusive")
	}
	if len(s.Items) >= 2 && len(s.Decisions) == 0 && len(s.Ranking) == 0 {
		return fmt.Errorf("%d items need either decisions or a ranking", len(s.Items))
	}
	if len(s.Ranking) > 0 {
		if err := validateRanking(s.Items, s.Ranking); err != nil {
			return err
		}
	}
	return nil
}

// validateRanking requires ranking to be a permutation of items.
func validateRanking(items, ranking []string) error {
	if len(ranking) != len(items) {
		return fmt.Errorf("ranking has %d entries for %d items", len(ranking), len(items))
	}
	counts := make(map[string]int, len(items))
	for _, it := range items {
		counts[it]++
	}
	for _, r := range ranking {
		if counts[r] == 0 {
			return fmt.Errorf("ranking entry %q is not an item (or repeats)", r)
		}
		counts[r]--
	}
	return nil
}
