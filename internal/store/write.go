package store

import (
	"context"
	"fmt"

	"github.com/roach88/ranked/internal/item"
	"github.com/roach88/ranked/internal/sorter"
)

// Run is the persisted record of one ranking session.
type Run struct {
	Token     string `json:"token"`
	CreatedAt string `json:"created_at"`
	Status    string `json:"status"` // "empty" | "comparing" | "done"
	ItemCount int    `json:"item_count"`
}

// Decision is one persisted entry of the decision log.
type Decision struct {
	Seq    int64         `json:"seq"`
	Choice sorter.Choice `json:"choice"`
}

// CreateRun inserts a run record together with its item list in a single
// transaction, so a crash can never leave a run without its items.
//
// Uses ON CONFLICT DO NOTHING for idempotency - re-running a crashed start
// with the same token is silently absorbed.
func (s *Store) CreateRun(ctx context.Context, run Run, items []item.Item) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("create run: begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (token, status, item_count)
		VALUES (?, ?, ?)
		ON CONFLICT(token) DO NOTHING
	`, run.Token, run.Status, len(items))
	if err != nil {
		return fmt.Errorf("create run %s: %w", run.Token, err)
	}

	for pos, it := range items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO run_items (run_token, position, description)
			VALUES (?, ?, ?)
			ON CONFLICT(run_token, position) DO NOTHING
		`, run.Token, pos, it.Description)
		if err != nil {
			return fmt.Errorf("create run %s: item %d: %w", run.Token, pos, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("create run %s: commit: %w", run.Token, err)
	}
	return nil
}

// AppendDecision appends one decision to a run's log.
//
// Uses ON CONFLICT DO NOTHING on (run_token, seq) for idempotency: replaying
// an already-logged decision is silently absorbed, which is what makes
// crash-and-retry safe for the session layer.
func (s *Store) AppendDecision(ctx context.Context, token string, d Decision) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO decisions (run_token, seq, choice)
		VALUES (?, ?, ?)
		ON CONFLICT(run_token, seq) DO NOTHING
	`, token, d.Seq, d.Choice.String())
	if err != nil {
		return fmt.Errorf("append decision %s seq=%d: %w", token, d.Seq, err)
	}
	return nil
}

// SetRunStatus records a lifecycle transition for a run.
func (s *Store) SetRunStatus(ctx context.Context, token, status string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE runs SET status = ? WHERE token = ?
	`, status, token)
	if err != nil {
		return fmt.Errorf("set status %s=%s: %w", token, status, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set status %s=%s: %w", token, status, err)
	}
	if n == 0 {
		return fmt.Errorf("set status %s: %w", token, ErrRunNotFound)
	}
	return nil
}
