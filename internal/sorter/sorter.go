package sorter

import (
	"fmt"
	"slices"
)

// Phase identifies which lifecycle variant the engine currently holds.
type Phase int

const (
	// PhaseEmpty means no run is in progress, or a run was started with
	// zero items. This is also the state before the first Start.
	PhaseEmpty Phase = iota

	// PhaseComparing means a run is active and a decision is pending.
	PhaseComparing

	// PhaseDone means the run completed; the final order is available
	// through Finish.
	PhaseDone
)

// String returns the lowercase phase name used in logs and run records.
func (p Phase) String() string {
	switch p {
	case PhaseEmpty:
		return "empty"
	case PhaseComparing:
		return "comparing"
	case PhaseDone:
		return "done"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Choice is a single external decision resolving one comparison.
type Choice int

const (
	// CandidateWins means the candidate outranks the pivot; the search
	// narrows to the more-important half of the window.
	CandidateWins Choice = iota + 1

	// PivotWins means the pivot outranks the candidate; the search
	// narrows to the less-important half of the window.
	PivotWins
)

// String returns the wire name of the choice as stored in decision logs.
func (c Choice) String() string {
	switch c {
	case CandidateWins:
		return "candidate"
	case PivotWins:
		return "pivot"
	default:
		return fmt.Sprintf("choice(%d)", int(c))
	}
}

// ParseChoice converts a decision-log or CLI token back into a Choice.
func ParseChoice(s string) (Choice, error) {
	switch s {
	case "candidate":
		return CandidateWins, nil
	case "pivot":
		return PivotWins, nil
	default:
		return 0, fmt.Errorf("unknown choice %q (want \"candidate\" or \"pivot\")", s)
	}
}

// Sorter is the single-writer owner of one sorting run over items of type T.
//
// The engine never inspects item contents; ordering is defined entirely by
// the sequence of Choose calls. T values are only copied and moved.
//
// INVARIANTS (while Comparing):
//   - 0 <= lo <= hi <= len(placed)
//   - hi-lo strictly decreases with every Choose until it reaches zero
//   - placed ∪ pending is exactly the multiset given to the last Start
type Sorter[T any] struct {
	phase Phase

	// pending holds items not yet placed. It is a LIFO stack: the current
	// candidate is always the last element.
	pending []T

	// placed is the total order built so far, most important first.
	placed []T

	// [lo, hi) is the half-open window into placed bounding where the
	// current candidate will be inserted.
	lo, hi int
}

// New returns a Sorter in the Empty phase.
func New[T any]() *Sorter[T] {
	return &Sorter[T]{phase: PhaseEmpty}
}

// Start begins a new run over items, discarding any run in progress.
// Start never fails:
//   - zero items leaves the engine Empty (nothing to do)
//   - one item completes immediately with zero comparisons
//   - otherwise the first item seeds the placed order and the rest become
//     the pending stack, so candidates are processed in REVERSE arrival
//     order (the stack top is the last input element)
//
// The input slice is copied; the caller may reuse it afterwards.
func (s *Sorter[T]) Start(items []T) {
	switch len(items) {
	case 0:
		*s = Sorter[T]{phase: PhaseEmpty}
		return
	case 1:
		*s = Sorter[T]{
			phase:  PhaseDone,
			placed: slices.Clone(items),
		}
		return
	}

	placed := make([]T, 1, len(items))
	placed[0] = items[0]

	*s = Sorter[T]{
		phase:   PhaseComparing,
		placed:  placed,
		pending: slices.Clone(items[1:]),
		lo:      0,
		hi:      1,
	}
}

// Choose applies one external decision to the active comparison.
//
// The pivot is placed[(lo+hi)/2]. CandidateWins narrows the window to
// [lo, mid); PivotWins narrows it to [mid+1, hi). When the window
// collapses the candidate is inserted at index lo, and either the next
// pending item becomes the candidate with a full-width window, or - if
// nothing is pending - the run transitions to Done.
//
// Calling Choose while Empty or Done returns a NoComparisonError so that
// driver bugs surface instead of being swallowed.
func (s *Sorter[T]) Choose(c Choice) error {
	if s.phase != PhaseComparing {
		return &NoComparisonError{Phase: s.phase}
	}

	mid := (s.lo + s.hi) / 2
	switch c {
	case CandidateWins:
		s.hi = mid
	case PivotWins:
		s.lo = mid + 1
	default:
		return fmt.Errorf("invalid choice %d", int(c))
	}

	if s.lo < s.hi {
		// Window still open: same candidate, another decision needed.
		return nil
	}

	// Window collapsed: the candidate's final rank is lo.
	top := len(s.pending) - 1
	x := s.pending[top]
	var zero T
	s.pending[top] = zero // drop the reference so the backing array does not pin the item
	s.pending = s.pending[:top]

	s.placed = slices.Insert(s.placed, s.lo, x)

	if len(s.pending) == 0 {
		s.phase = PhaseDone
		s.lo, s.hi = 0, 0
		return nil
	}

	s.lo, s.hi = 0, len(s.placed)
	return nil
}

// Finish writes the best available ordering into *out without disturbing
// the engine state. It may be called in any phase, any number of times:
//
//   - Done: *out is replaced with the final order.
//   - Empty: *out is left untouched (a no-op, not a clear).
//   - Comparing: *out is replaced with the settled prefix followed by the
//     pending remainder in its current internal stack order. This abort
//     snapshot is a valid permutation of the inputs but the unresolved
//     tail carries no priority guarantee.
func (s *Sorter[T]) Finish(out *[]T) {
	switch s.phase {
	case PhaseDone:
		*out = slices.Clone(s.placed)
	case PhaseComparing:
		snap := make([]T, 0, len(s.placed)+len(s.pending))
		snap = append(snap, s.placed...)
		snap = append(snap, s.pending...)
		*out = snap
	case PhaseEmpty:
		// Nothing to do, and deliberately nothing cleared.
	}
}

// Phase reports the current lifecycle variant.
func (s *Sorter[T]) Phase() Phase {
	return s.phase
}

// Candidate returns the item currently being positioned (the pending stack
// top). ok is false unless the engine is Comparing.
func (s *Sorter[T]) Candidate() (item T, ok bool) {
	if s.phase != PhaseComparing || len(s.pending) == 0 {
		return item, false
	}
	return s.pending[len(s.pending)-1], true
}

// Pivot returns the placed item the candidate is currently compared
// against, selected by the midpoint of the window. ok is false unless the
// engine is Comparing.
func (s *Sorter[T]) Pivot() (item T, ok bool) {
	if s.phase != PhaseComparing {
		return item, false
	}
	return s.placed[(s.lo+s.hi)/2], true
}

// Placed returns a copy of the settled prefix, most important first.
func (s *Sorter[T]) Placed() []T {
	return slices.Clone(s.placed)
}

// Pending returns a copy of the pending stack in internal order; the
// current candidate is the last element.
func (s *Sorter[T]) Pending() []T {
	return slices.Clone(s.pending)
}

// Window reports the current half-open binary-search window into the
// placed sequence.
func (s *Sorter[T]) Window() (lo, hi int) {
	return s.lo, s.hi
}

// Remaining reports how many items are still awaiting placement.
func (s *Sorter[T]) Remaining() int {
	return len(s.pending)
}
