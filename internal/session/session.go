package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/roach88/ranked/internal/item"
	"github.com/roach88/ranked/internal/sorter"
	"github.com/roach88/ranked/internal/store"
)

// ErrNoActiveRun is returned by operations that require a begun or resumed
// run on a Session that has neither.
var ErrNoActiveRun = errors.New("no active run")

// Session is the single-writer owner of one ranking run.
//
// All mutations (Begin, Resume, Choose) must happen from one logical thread
// of control; read accessors reflect whatever state the last mutation left.
type Session struct {
	store  *store.Store
	tokens TokenGenerator
	clock  *Clock
	token  string
	sorter *sorter.Sorter[item.Item]
}

// New creates a Session backed by the given store.
// Run tokens come from gen - UUIDv7Generator in production, FixedGenerator
// in tests.
func New(st *store.Store, gen TokenGenerator) *Session {
	return &Session{
		store:  st,
		tokens: gen,
		clock:  NewClock(),
		sorter: sorter.New[item.Item](),
	}
}

// Begin starts a new ranking run over items and persists it.
//
// The run record and the item list are written atomically; the engine is
// seeded in memory. Degenerate inputs follow the engine's rules: zero items
// records an "empty" run, one item records a "done" run with no decisions.
// Returns the new run token.
func (s *Session) Begin(ctx context.Context, items []item.Item) (string, error) {
	token := s.tokens.Generate()

	s.sorter.Start(items)
	s.clock = NewClock()
	s.token = token

	run := store.Run{
		Token:  token,
		Status: s.sorter.Phase().String(),
	}
	if err := s.store.CreateRun(ctx, run, items); err != nil {
		return "", fmt.Errorf("begin run: %w", err)
	}

	slog.Info("run started",
		"run", token,
		"items", len(items),
		"status", run.Status,
	)
	return token, nil
}

// Resume rebuilds the engine state for an existing run by replaying its
// decision log through a fresh engine. The clock resumes past the highest
// logged seq.
//
// If the persisted status lags the replayed state (a crash between the
// decision append and the status update), the status is repaired from the
// replayed state - the log is the source of truth.
func (s *Session) Resume(ctx context.Context, token string) error {
	run, err := s.store.ReadRun(ctx, token)
	if err != nil {
		return fmt.Errorf("resume: %w", err)
	}

	items, err := s.store.ReadItems(ctx, token)
	if err != nil {
		return fmt.Errorf("resume %s: %w", token, err)
	}

	decisions, err := s.store.ReadDecisions(ctx, token)
	if err != nil {
		return fmt.Errorf("resume %s: %w", token, err)
	}

	srt, err := Rebuild(items, decisions)
	if err != nil {
		return fmt.Errorf("resume %s: %w", token, err)
	}

	var lastSeq int64
	if len(decisions) > 0 {
		lastSeq = decisions[len(decisions)-1].Seq
	}

	s.sorter = srt
	s.clock = NewClockAt(lastSeq)
	s.token = token

	if got := srt.Phase().String(); got != run.Status {
		slog.Warn("run status lagged decision log, repairing",
			"run", token,
			"recorded", run.Status,
			"replayed", got,
		)
		if err := s.store.SetRunStatus(ctx, token, got); err != nil {
			return fmt.Errorf("resume %s: repair status: %w", token, err)
		}
	}

	slog.Info("run resumed",
		"run", token,
		"items", len(items),
		"decisions", len(decisions),
		"status", srt.Phase().String(),
	)
	return nil
}

// Choose applies one external decision and appends it to the run's log.
//
// The decision is validated by the engine first; an invalid call (no active
// comparison) is surfaced to the caller and nothing is logged. If the
// append fails after the engine advanced, the in-memory state is ahead of
// the log - the caller should Resume to reconverge before continuing.
func (s *Session) Choose(ctx context.Context, c sorter.Choice) error {
	if s.token == "" {
		return ErrNoActiveRun
	}

	if err := s.sorter.Choose(c); err != nil {
		return err
	}

	seq := s.clock.Next()
	d := store.Decision{Seq: seq, Choice: c}
	if err := s.store.AppendDecision(ctx, s.token, d); err != nil {
		return fmt.Errorf("choose: %w", err)
	}

	slog.Debug("decision logged",
		"run", s.token,
		"seq", seq,
		"choice", c.String(),
	)

	if s.sorter.Phase() == sorter.PhaseDone {
		if err := s.store.SetRunStatus(ctx, s.token, sorter.PhaseDone.String()); err != nil {
			return fmt.Errorf("choose: %w", err)
		}
		slog.Info("run complete",
			"run", s.token,
			"decisions", seq,
		)
	}
	return nil
}

// Snapshot returns the best available ordering for the active run without
// disturbing it: the final order when Done, the settled prefix plus the
// pending remainder while Comparing, nil when Empty.
func (s *Session) Snapshot() []item.Item {
	var out []item.Item
	s.sorter.Finish(&out)
	return out
}

// Current returns the pair awaiting a decision.
// ok is false unless the run is in the comparing phase.
func (s *Session) Current() (candidate, pivot item.Item, ok bool) {
	candidate, ok = s.sorter.Candidate()
	if !ok {
		return item.Item{}, item.Item{}, false
	}
	pivot, _ = s.sorter.Pivot()
	return candidate, pivot, true
}

// Phase reports the engine lifecycle variant of the active run.
func (s *Session) Phase() sorter.Phase {
	return s.sorter.Phase()
}

// Token returns the active run token, or "" before Begin/Resume.
func (s *Session) Token() string {
	return s.token
}

// Progress reports how far the active run has advanced.
func (s *Session) Progress() (placed, remaining int, decisions int64) {
	return len(s.sorter.Placed()), s.sorter.Remaining(), s.clock.Current()
}

// Rebuild folds a decision log over a fresh engine seeded with items.
// This is the one reconstruction path shared by Resume and the replay
// determinism check. A log entry the engine rejects means the log is
// corrupt (or was written by a different item list) and fails the rebuild.
func Rebuild(items []item.Item, decisions []store.Decision) (*sorter.Sorter[item.Item], error) {
	srt := sorter.New[item.Item]()
	srt.Start(items)
	for _, d := range decisions {
		if err := srt.Choose(d.Choice); err != nil {
			return nil, fmt.Errorf("replay decision seq=%d: %w", d.Seq, err)
		}
	}
	return srt, nil
}
