package sorter

import (
	"math/bits"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// expectedMaxComparisons returns the decision-count bound for n items:
// sum over k=2..n of ceil(log2(k)).
func expectedMaxComparisons(n int) int {
	if n <= 1 {
		return 0
	}
	total := 0
	for k := 2; k <= n; k++ {
		total += bits.Len(uint(k - 1)) // ceil(log2(k))
	}
	return total
}

// runSimulated drives a full run over a seeded shuffle of 0..n-1, answering
// every comparison from the natural integer order (bigger = more important).
// Returns the number of decisions consumed, the expected descending order,
// and the Finish output.
func runSimulated(t *testing.T, n int, seed int64) (comparisons int, want, got []int) {
	t.Helper()

	rng := rand.New(rand.NewSource(seed))
	items := rng.Perm(n)

	want = append([]int(nil), items...)
	sort.Sort(sort.Reverse(sort.IntSlice(want)))

	s := New[int]()
	s.Start(items)

	for s.Phase() == PhaseComparing {
		candidate, ok := s.Candidate()
		require.True(t, ok, "comparing phase must expose a candidate")
		pivot, ok := s.Pivot()
		require.True(t, ok, "comparing phase must expose a pivot")

		choice := PivotWins
		if candidate > pivot {
			choice = CandidateWins
		}
		comparisons++
		require.NoError(t, s.Choose(choice))
	}

	got = append([]int(nil), items...)
	s.Finish(&got)
	return comparisons, want, got
}

func TestSortMatchesGroundTruth(t *testing.T) {
	cases := []struct {
		name  string
		sizes []int
		seed  int64
	}{
		{"small", []int{0, 1, 2, 3, 5, 8, 13}, 0x5EED},
		{"medium", []int{21, 34, 55, 89, 144, 377, 610, 987}, 0x12345678},
		{"large", []int{1597, 2584, 4181, 6765, 10946, 17711, 28657, 46368}, 0xBABA},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.name == "large" && testing.Short() {
				t.Skip("skipping large sizes in -short mode")
			}
			for _, n := range tc.sizes {
				comparisons, want, got := runSimulated(t, n, tc.seed)
				assert.Equal(t, want, got, "n=%d", n)
				assert.LessOrEqual(t, comparisons, expectedMaxComparisons(n),
					"n=%d: decision-count bound violated", n)
			}
		})
	}
}

func TestStartEmptyInput(t *testing.T) {
	s := New[string]()
	s.Start(nil)
	assert.Equal(t, PhaseEmpty, s.Phase())

	// Finish in Empty must leave the output untouched, not clear it.
	out := []string{"sentinel"}
	s.Finish(&out)
	assert.Equal(t, []string{"sentinel"}, out)
}

func TestStartSingleItem(t *testing.T) {
	s := New[string]()
	s.Start([]string{"only"})
	require.Equal(t, PhaseDone, s.Phase(), "single item completes with zero comparisons")

	var out []string
	s.Finish(&out)
	assert.Equal(t, []string{"only"}, out)
}

func TestReverseCandidateOrder(t *testing.T) {
	s := New[string]()
	s.Start([]string{"first", "second", "third", "fourth"})

	// The first item seeds the placed order; the first candidate is the
	// LAST input element, not the second.
	candidate, ok := s.Candidate()
	require.True(t, ok)
	assert.Equal(t, "fourth", candidate)
	assert.Equal(t, []string{"first"}, s.Placed())
	assert.Equal(t, []string{"second", "third", "fourth"}, s.Pending())
}

// TestConcreteScenario walks the documented [A, B, C] run step by step.
func TestConcreteScenario(t *testing.T) {
	s := New[string]()
	s.Start([]string{"A", "B", "C"})

	// Seed: placed=[A], pending=[B, C], candidate C vs pivot A.
	candidate, _ := s.Candidate()
	pivot, _ := s.Pivot()
	require.Equal(t, "C", candidate)
	require.Equal(t, "A", pivot)
	lo, hi := s.Window()
	require.Equal(t, 0, lo)
	require.Equal(t, 1, hi)

	// C outranks A: window collapses, C inserted at 0.
	require.NoError(t, s.Choose(CandidateWins))
	require.Equal(t, PhaseComparing, s.Phase())
	assert.Equal(t, []string{"C", "A"}, s.Placed())
	assert.Equal(t, []string{"B"}, s.Pending())

	// Next candidate B, full-width window [0, 2), pivot placed[1]=A.
	candidate, _ = s.Candidate()
	pivot, _ = s.Pivot()
	require.Equal(t, "B", candidate)
	require.Equal(t, "A", pivot)

	// A outranks B: lo=2, collapse, B inserted at the end.
	require.NoError(t, s.Choose(PivotWins))
	require.Equal(t, PhaseDone, s.Phase())

	var out []string
	s.Finish(&out)
	assert.Equal(t, []string{"C", "A", "B"}, out)
}

func TestChooseWithoutActiveComparison(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		s := New[int]()
		err := s.Choose(CandidateWins)
		require.Error(t, err)
		assert.True(t, IsNoComparison(err))
		assert.Equal(t, PhaseEmpty, s.Phase())
	})

	t.Run("done", func(t *testing.T) {
		s := New[int]()
		s.Start([]int{42})
		require.Equal(t, PhaseDone, s.Phase())

		err := s.Choose(PivotWins)
		require.Error(t, err)
		assert.True(t, IsNoComparison(err))

		// The stray call must not disturb the completed order.
		var out []int
		s.Finish(&out)
		assert.Equal(t, []int{42}, out)
	})
}

func TestInvalidChoiceValue(t *testing.T) {
	s := New[int]()
	s.Start([]int{1, 2})

	err := s.Choose(Choice(99))
	require.Error(t, err)
	assert.False(t, IsNoComparison(err))

	// State is unchanged; a valid decision still works.
	require.NoError(t, s.Choose(CandidateWins))
}

func TestFinishIsIdempotentPeek(t *testing.T) {
	s := New[int]()
	s.Start([]int{4, 3, 2, 1})
	require.NoError(t, s.Choose(CandidateWins)) // place first candidate

	var first, second []int
	s.Finish(&first)
	s.Finish(&second)
	assert.Equal(t, first, second)

	// Peeking leaves the run exactly where it was.
	assert.Equal(t, PhaseComparing, s.Phase())
	candidate, ok := s.Candidate()
	require.True(t, ok)
	assert.Equal(t, 3, candidate)
}

func TestAbortSnapshotOrder(t *testing.T) {
	s := New[string]()
	s.Start([]string{"A", "B", "C", "D"})

	// Before any decision the snapshot is the settled seed followed by the
	// pending stack in internal order.
	var out []string
	s.Finish(&out)
	assert.Equal(t, []string{"A", "B", "C", "D"}, out)

	// Place candidate D ahead of A, then snapshot mid-run: the unresolved
	// tail keeps its internal stack order.
	require.NoError(t, s.Choose(CandidateWins))
	s.Finish(&out)
	assert.Equal(t, []string{"D", "A", "B", "C"}, out)

	// The snapshot is always a permutation of the input.
	assert.ElementsMatch(t, []string{"A", "B", "C", "D"}, out)
}

func TestStartReplacesRunInProgress(t *testing.T) {
	s := New[int]()
	s.Start([]int{1, 2, 3})
	require.NoError(t, s.Choose(CandidateWins))

	// Restarting discards the old run outright.
	s.Start([]int{7, 8})
	assert.Equal(t, PhaseComparing, s.Phase())
	assert.Equal(t, []int{7}, s.Placed())
	assert.Equal(t, []int{8}, s.Pending())
}

func TestWindowStrictlyNarrows(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	s := New[int]()
	s.Start(rng.Perm(64))

	for s.Phase() == PhaseComparing {
		lo, hi := s.Window()
		before := hi - lo

		candidate, _ := s.Candidate()
		pivot, _ := s.Pivot()
		choice := PivotWins
		if candidate > pivot {
			choice = CandidateWins
		}
		require.NoError(t, s.Choose(choice))

		if s.Phase() != PhaseComparing {
			break
		}
		lo, hi = s.Window()
		after := hi - lo
		if after != len(s.Placed()) { // not a fresh window for a new candidate
			assert.Less(t, after, before, "window must strictly narrow")
		}
	}
}

func TestPermutationInvariantMidRun(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	items := rng.Perm(32)

	s := New[int]()
	s.Start(items)

	for s.Phase() == PhaseComparing {
		union := append(s.Placed(), s.Pending()...)
		assert.ElementsMatch(t, items, union)

		candidate, _ := s.Candidate()
		pivot, _ := s.Pivot()
		choice := PivotWins
		if candidate > pivot {
			choice = CandidateWins
		}
		require.NoError(t, s.Choose(choice))
	}
	assert.ElementsMatch(t, items, s.Placed())
}

func TestDuplicateItemsSurvive(t *testing.T) {
	items := []int{2, 1, 2, 1, 2}
	s := New[int]()
	s.Start(items)

	for s.Phase() == PhaseComparing {
		candidate, _ := s.Candidate()
		pivot, _ := s.Pivot()
		choice := PivotWins
		if candidate > pivot {
			choice = CandidateWins
		}
		require.NoError(t, s.Choose(choice))
	}

	var out []int
	s.Finish(&out)
	assert.Equal(t, []int{2, 2, 2, 1, 1}, out)
}
