package session

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/ranked/internal/item"
	"github.com/roach88/ranked/internal/sorter"
	"github.com/roach88/ranked/internal/store"
)

func setupTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testItems(t *testing.T, descriptions ...string) []item.Item {
	t.Helper()
	items, err := item.FromDescriptions(descriptions)
	require.NoError(t, err)
	return items
}

func TestBeginPersistsRunAndItems(t *testing.T) {
	ctx := context.Background()
	st := setupTestStore(t)
	sess := New(st, NewFixedGenerator("run-1"))

	token, err := sess.Begin(ctx, testItems(t, "a", "b", "c"))
	require.NoError(t, err)
	assert.Equal(t, "run-1", token)
	assert.Equal(t, sorter.PhaseComparing, sess.Phase())

	run, err := st.ReadRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "comparing", run.Status)
	assert.Equal(t, 3, run.ItemCount)

	items, err := st.ReadItems(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, item.Descriptions(items))
}

func TestBeginDegenerateInputs(t *testing.T) {
	ctx := context.Background()

	t.Run("zero items", func(t *testing.T) {
		st := setupTestStore(t)
		sess := New(st, NewFixedGenerator("run-empty"))

		_, err := sess.Begin(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, sorter.PhaseEmpty, sess.Phase())

		run, err := st.ReadRun(ctx, "run-empty")
		require.NoError(t, err)
		assert.Equal(t, "empty", run.Status)
	})

	t.Run("one item", func(t *testing.T) {
		st := setupTestStore(t)
		sess := New(st, NewFixedGenerator("run-single"))

		_, err := sess.Begin(ctx, testItems(t, "only"))
		require.NoError(t, err)
		assert.Equal(t, sorter.PhaseDone, sess.Phase())

		run, err := st.ReadRun(ctx, "run-single")
		require.NoError(t, err)
		assert.Equal(t, "done", run.Status)
	})
}

// driveToDone answers every comparison from descending string order so
// tests get a predictable final ranking.
func driveToDone(t *testing.T, ctx context.Context, sess *Session) {
	t.Helper()
	for sess.Phase() == sorter.PhaseComparing {
		candidate, pivot, ok := sess.Current()
		require.True(t, ok)
		choice := sorter.PivotWins
		if candidate.Description > pivot.Description {
			choice = sorter.CandidateWins
		}
		require.NoError(t, sess.Choose(ctx, choice))
	}
}

func TestChooseAppendsToLogAndCompletes(t *testing.T) {
	ctx := context.Background()
	st := setupTestStore(t)
	sess := New(st, NewFixedGenerator("run-1"))

	_, err := sess.Begin(ctx, testItems(t, "b", "c", "a"))
	require.NoError(t, err)
	driveToDone(t, ctx, sess)

	assert.Equal(t, []string{"c", "b", "a"}, item.Descriptions(sess.Snapshot()))

	run, err := st.ReadRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "done", run.Status)

	decisions, err := st.ReadDecisions(ctx, "run-1")
	require.NoError(t, err)
	require.NotEmpty(t, decisions)

	// Seqs are contiguous from 1 - the logical clock, not wall time.
	for i, d := range decisions {
		assert.Equal(t, int64(i+1), d.Seq)
	}
}

func TestChooseWithoutRun(t *testing.T) {
	st := setupTestStore(t)
	sess := New(st, NewFixedGenerator())

	err := sess.Choose(context.Background(), sorter.CandidateWins)
	assert.ErrorIs(t, err, ErrNoActiveRun)
}

func TestChooseAfterDoneSurfacesEngineError(t *testing.T) {
	ctx := context.Background()
	st := setupTestStore(t)
	sess := New(st, NewFixedGenerator("run-1"))

	_, err := sess.Begin(ctx, testItems(t, "only"))
	require.NoError(t, err)

	err = sess.Choose(ctx, sorter.PivotWins)
	require.Error(t, err)
	assert.True(t, sorter.IsNoComparison(err))

	// The stray call must not have touched the log.
	decisions, err := st.ReadDecisions(ctx, "run-1")
	require.NoError(t, err)
	assert.Empty(t, decisions)
}

func TestResumeRebuildsMidRunState(t *testing.T) {
	ctx := context.Background()
	st := setupTestStore(t)

	sess := New(st, NewFixedGenerator("run-1"))
	_, err := sess.Begin(ctx, testItems(t, "d", "a", "c", "b"))
	require.NoError(t, err)

	// Two decisions in, drop the session on the floor.
	require.NoError(t, sess.Choose(ctx, sorter.CandidateWins))
	require.NoError(t, sess.Choose(ctx, sorter.PivotWins))

	wantPhase := sess.Phase()
	wantSnapshot := sess.Snapshot()
	wantCandidate, wantPivot, wantOK := sess.Current()
	_, _, wantDecisions := sess.Progress()

	// A fresh session resumed from the store must land in the same state.
	resumed := New(st, NewFixedGenerator())
	require.NoError(t, resumed.Resume(ctx, "run-1"))

	assert.Equal(t, wantPhase, resumed.Phase())
	assert.Equal(t, wantSnapshot, resumed.Snapshot())
	gotCandidate, gotPivot, gotOK := resumed.Current()
	assert.Equal(t, wantOK, gotOK)
	assert.Equal(t, wantCandidate, gotCandidate)
	assert.Equal(t, wantPivot, gotPivot)

	// The clock resumes past the last logged seq.
	_, _, gotDecisions := resumed.Progress()
	assert.Equal(t, wantDecisions, gotDecisions)

	// And the resumed session can finish the run.
	driveToDone(t, ctx, resumed)
	assert.Equal(t, []string{"d", "c", "b", "a"}, item.Descriptions(resumed.Snapshot()))
}

func TestResumeRepairsLaggingStatus(t *testing.T) {
	ctx := context.Background()
	st := setupTestStore(t)

	sess := New(st, NewFixedGenerator("run-1"))
	_, err := sess.Begin(ctx, testItems(t, "a", "b"))
	require.NoError(t, err)
	driveToDone(t, ctx, sess)

	// Simulate a crash between the final decision append and the status
	// update by forcing the status backwards.
	require.NoError(t, st.SetRunStatus(ctx, "run-1", "comparing"))

	resumed := New(st, NewFixedGenerator())
	require.NoError(t, resumed.Resume(ctx, "run-1"))
	assert.Equal(t, sorter.PhaseDone, resumed.Phase())

	run, err := st.ReadRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "done", run.Status, "resume must repair status from the log")
}

func TestResumeUnknownRun(t *testing.T) {
	st := setupTestStore(t)
	sess := New(st, NewFixedGenerator())

	err := sess.Resume(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrRunNotFound)
}

func TestVerifyReplay(t *testing.T) {
	ctx := context.Background()
	st := setupTestStore(t)

	sess := New(st, NewFixedGenerator("run-1"))
	_, err := sess.Begin(ctx, testItems(t, "c", "a", "b"))
	require.NoError(t, err)
	require.NoError(t, sess.Choose(ctx, sorter.CandidateWins))

	report, err := sess.VerifyReplay(ctx, "run-1")
	require.NoError(t, err)
	assert.True(t, report.Deterministic)
	assert.True(t, report.StatusMatches)
	assert.Equal(t, 3, report.ItemCount)
	assert.Equal(t, 1, report.Decisions)
	assert.Equal(t, "comparing", report.Phase)
}

func TestVerifyReplayCorruptLog(t *testing.T) {
	ctx := context.Background()
	st := setupTestStore(t)

	// A single-item run is Done immediately; any logged decision is one
	// the engine would never have accepted.
	require.NoError(t, st.CreateRun(ctx, store.Run{Token: "run-x", Status: "done"}, testItems(t, "only")))
	require.NoError(t, st.AppendDecision(ctx, "run-x", store.Decision{Seq: 1, Choice: sorter.PivotWins}))

	sess := New(st, NewFixedGenerator())
	_, err := sess.VerifyReplay(ctx, "run-x")
	require.Error(t, err)
	assert.True(t, sorter.IsNoComparison(err))
}
