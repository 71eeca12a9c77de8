package harness

import (
	"fmt"
	"math/bits"

	"github.com/roach88/ranked/internal/item"
	"github.com/roach88/ranked/internal/sorter"
)

// TraceEvent records one comparison as it was presented and answered.
// Lo and Hi are the window at presentation time, before the decision
// narrowed it.
type TraceEvent struct {
	Step      int    `json:"step"`
	Candidate string `json:"candidate"`
	Pivot     string `json:"pivot"`
	Lo        int    `json:"lo"`
	Hi        int    `json:"hi"`
	Choice    string `json:"choice"`
}

// Result captures a scenario execution.
type Result struct {
	Scenario  string       `json:"scenario"`
	Status    string       `json:"status"`
	Decisions int          `json:"decisions"`
	Order     []string     `json:"order"`
	Trace     []TraceEvent `json:"trace"`
}

// Run executes a scenario against a fresh engine and returns the recorded
// result.
//
// With a decision script, the script is applied in order and the run stops
// when the script ends (possibly mid-sort - that is how abort scenarios are
// written). Scripted decisions left over after the run completes are an
// error: the engine would reject them, and so does the harness.
//
// With a ranking, comparisons are answered from the fixed total order until
// the run completes. Either way, exceeding the binary-insertion decision
// budget aborts the scenario.
func Run(s *Scenario) (*Result, error) {
	items, err := item.FromDescriptions(s.Items)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
	}

	srt := sorter.New[item.Item]()
	srt.Start(items)

	budget := decisionBudget(len(items))
	rank := make(map[string]int, len(s.Ranking))
	for i, r := range s.Ranking {
		rank[r] = i
	}

	result := &Result{
		Scenario: s.Name,
		Trace:    []TraceEvent{},
	}

	scriptPos := 0
	for srt.Phase() == sorter.PhaseComparing {
		if len(s.Ranking) == 0 && scriptPos >= len(s.Decisions) {
			break // script exhausted: deliberate mid-sort stop
		}
		if result.Decisions >= budget {
			return nil, fmt.Errorf("scenario %s: decision budget exceeded (%d)", s.Name, budget)
		}

		candidate, _ := srt.Candidate()
		pivot, _ := srt.Pivot()
		lo, hi := srt.Window()

		var choice sorter.Choice
		if len(s.Ranking) > 0 {
			choice = sorter.PivotWins
			if rank[candidate.Description] < rank[pivot.Description] {
				choice = sorter.CandidateWins
			}
		} else {
			choice, err = sorter.ParseChoice(s.Decisions[scriptPos])
			if err != nil {
				return nil, fmt.Errorf("scenario %s: decision %d: %w", s.Name, scriptPos+1, err)
			}
			scriptPos++
		}

		if err := srt.Choose(choice); err != nil {
			return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
		}

		result.Decisions++
		result.Trace = append(result.Trace, TraceEvent{
			Step:      result.Decisions,
			Candidate: candidate.Description,
			Pivot:     pivot.Description,
			Lo:        lo,
			Hi:        hi,
			Choice:    choice.String(),
		})
	}

	if scriptPos < len(s.Decisions) {
		return nil, fmt.Errorf("scenario %s: %d scripted decision(s) left after the run completed",
			s.Name, len(s.Decisions)-scriptPos)
	}

	result.Status = srt.Phase().String()

	var order []item.Item
	srt.Finish(&order)
	result.Order = item.Descriptions(order)

	return result, nil
}

// decisionBudget is the binary-insertion bound for n items:
// sum over k=2..n of ceil(log2(k)).
func decisionBudget(n int) int {
	if n <= 1 {
		return 0
	}
	total := 0
	for k := 2; k <= n; k++ {
		total += bits.Len(uint(k - 1))
	}
	return total
}
