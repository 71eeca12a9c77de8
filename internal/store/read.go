package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/ranked/internal/item"
	"github.com/roach88/ranked/internal/sorter"
)

// ReadRun returns the run record for a token.
// Returns ErrRunNotFound (wrapped) if no such run exists.
func (s *Store) ReadRun(ctx context.Context, token string) (Run, error) {
	var run Run
	err := s.db.QueryRowContext(ctx, `
		SELECT token, created_at, status, item_count
		FROM runs
		WHERE token = ?
	`, token).Scan(&run.Token, &run.CreatedAt, &run.Status, &run.ItemCount)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("read run %s: %w", token, ErrRunNotFound)
	}
	if err != nil {
		return Run{}, fmt.Errorf("read run %s: %w", token, err)
	}
	return run, nil
}

// ReadItems returns a run's item list in arrival order.
//
// Returns an empty slice (not nil) for a run with no items.
func (s *Store) ReadItems(ctx context.Context, token string) ([]item.Item, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT description
		FROM run_items
		WHERE run_token = ?
		ORDER BY position ASC
	`, token)
	if err != nil {
		return nil, fmt.Errorf("query items %s: %w", token, err)
	}
	defer rows.Close()

	items := []item.Item{}
	for rows.Next() {
		var description string
		if err := rows.Scan(&description); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item.Item{Description: description})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items %s: %w", token, err)
	}
	return items, nil
}

// ReadDecisions returns a run's decision log in seq order.
// Deterministic ordering is what makes replay reproduce the engine state.
//
// Returns an empty slice (not nil) for a run with no decisions.
func (s *Store) ReadDecisions(ctx context.Context, token string) ([]Decision, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, choice
		FROM decisions
		WHERE run_token = ?
		ORDER BY seq ASC
	`, token)
	if err != nil {
		return nil, fmt.Errorf("query decisions %s: %w", token, err)
	}
	defer rows.Close()

	decisions := []Decision{}
	for rows.Next() {
		var (
			seq    int64
			choice string
		)
		if err := rows.Scan(&seq, &choice); err != nil {
			return nil, fmt.Errorf("scan decision: %w", err)
		}
		c, err := sorter.ParseChoice(choice)
		if err != nil {
			return nil, fmt.Errorf("decision %s seq=%d: %w", token, seq, err)
		}
		decisions = append(decisions, Decision{Seq: seq, Choice: c})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate decisions %s: %w", token, err)
	}
	return decisions, nil
}

// ListRuns returns all runs, oldest first. Token breaks creation-time ties
// so the listing order is deterministic.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT token, created_at, status, item_count
		FROM runs
		ORDER BY created_at ASC, token ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.Token, &run.CreatedAt, &run.Status, &run.ItemCount); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}
