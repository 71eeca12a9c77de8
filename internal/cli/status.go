package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/ranked/internal/session"
	"github.com/roach88/ranked/internal/store"
)

// StatusOptions holds flags for the status command.
type StatusOptions struct {
	*RootOptions
	Database string
	Run      string
}

// StatusResult is the payload reported by the status command.
type StatusResult struct {
	Token     string          `json:"token"`
	Status    string          `json:"status"`
	ItemCount int             `json:"item_count"`
	Placed    int             `json:"placed"`
	Remaining int             `json:"remaining"`
	Decisions int64           `json:"decisions"`
	Next      *ComparisonView `json:"next,omitempty"`
}

// NewStatusCommand creates the status command.
func NewStatusCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StatusOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the state of a ranking run",
		Long: `Show the state of a ranking run: its lifecycle phase, how many
items are settled, and - while comparing - the pair awaiting a decision.

Examples:
  ranked status --db ./ranked.db --run <token>
  ranked status --db ./ranked.db --run <token> --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Run, "run", "", "run token (required)")
	_ = cmd.MarkFlagRequired("run")

	return cmd
}

func runStatus(opts *StatusOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	sess := session.New(st, session.UUIDv7Generator{})
	if err := sess.Resume(ctx, opts.Run); err != nil {
		if errors.Is(err, store.ErrRunNotFound) {
			return WrapExitError(ExitCommandError, "unknown run", err)
		}
		return WrapExitError(ExitCommandError, "failed to resume run", err)
	}

	placed, remaining, decisions := sess.Progress()
	result := StatusResult{
		Token:     opts.Run,
		Status:    sess.Phase().String(),
		ItemCount: placed + remaining,
		Placed:    placed,
		Remaining: remaining,
		Decisions: decisions,
		Next:      currentComparison(sess),
	}

	f := newFormatter(opts.RootOptions, cmd)
	if f.IsJSON() {
		return f.JSON(result)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Run %s: %s\n", result.Token, result.Status)
	fmt.Fprintf(w, "  items:     %d\n", result.ItemCount)
	fmt.Fprintf(w, "  settled:   %d\n", result.Placed)
	fmt.Fprintf(w, "  remaining: %d\n", result.Remaining)
	fmt.Fprintf(w, "  decisions: %d\n", result.Decisions)
	if result.Next != nil {
		printComparison(w, result.Next)
	}
	return nil
}
