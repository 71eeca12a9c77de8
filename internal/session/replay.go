package session

import (
	"context"
	"fmt"
	"slices"

	"github.com/roach88/ranked/internal/item"
)

// ReplayReport summarizes a replay determinism check for one run.
type ReplayReport struct {
	Token         string `json:"token"`
	ItemCount     int    `json:"item_count"`
	Decisions     int    `json:"decisions"`
	Phase         string `json:"phase"`
	StatusMatches bool   `json:"status_matches"`
	Deterministic bool   `json:"deterministic"`
}

// VerifyReplay rebuilds a run's engine state twice from its persisted facts
// and checks that the two reconstructions agree with each other and with
// the recorded run status.
//
// Replay is a pure fold, so two rebuilds disagreeing would indicate a bug
// in the engine or a torn log - exactly what this check exists to surface.
// A decision the engine rejects during rebuild fails with an error instead.
func (s *Session) VerifyReplay(ctx context.Context, token string) (ReplayReport, error) {
	run, err := s.store.ReadRun(ctx, token)
	if err != nil {
		return ReplayReport{}, fmt.Errorf("verify replay: %w", err)
	}

	items, err := s.store.ReadItems(ctx, token)
	if err != nil {
		return ReplayReport{}, fmt.Errorf("verify replay %s: %w", token, err)
	}

	decisions, err := s.store.ReadDecisions(ctx, token)
	if err != nil {
		return ReplayReport{}, fmt.Errorf("verify replay %s: %w", token, err)
	}

	first, err := Rebuild(items, decisions)
	if err != nil {
		return ReplayReport{}, fmt.Errorf("verify replay %s: first pass: %w", token, err)
	}
	second, err := Rebuild(items, decisions)
	if err != nil {
		return ReplayReport{}, fmt.Errorf("verify replay %s: second pass: %w", token, err)
	}

	var firstOrder, secondOrder []item.Item
	first.Finish(&firstOrder)
	second.Finish(&secondOrder)

	lo1, hi1 := first.Window()
	lo2, hi2 := second.Window()

	deterministic := first.Phase() == second.Phase() &&
		lo1 == lo2 && hi1 == hi2 &&
		slices.Equal(firstOrder, secondOrder) &&
		slices.Equal(first.Placed(), second.Placed()) &&
		slices.Equal(first.Pending(), second.Pending())

	return ReplayReport{
		Token:         token,
		ItemCount:     len(items),
		Decisions:     len(decisions),
		Phase:         first.Phase().String(),
		StatusMatches: first.Phase().String() == run.Status,
		Deterministic: deterministic,
	}, nil
}
