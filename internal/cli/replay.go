package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/ranked/internal/session"
	"github.com/roach88/ranked/internal/store"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Database string
	Run      string
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay a run's decision log and verify determinism",
		Long: `Replay a run's decision log and verify determinism.

The run's engine state is rebuilt twice from the persisted items and
decisions, and the two reconstructions are compared. Because resume
uses the same rebuild path, a passing replay means the run can be
picked up on any machine with this database.

Exit codes:
  0 - replay is deterministic
  1 - determinism verification failed
  2 - command error (database or run not found, corrupt log)

Examples:
  ranked replay --db ./ranked.db --run <token>
  ranked replay --db ./ranked.db --run <token> --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Run, "run", "", "run token (required)")
	_ = cmd.MarkFlagRequired("run")

	return cmd
}

func runReplay(opts *ReplayOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	sess := session.New(st, session.UUIDv7Generator{})
	report, err := sess.VerifyReplay(ctx, opts.Run)
	if err != nil {
		if errors.Is(err, store.ErrRunNotFound) {
			return WrapExitError(ExitCommandError, "unknown run", err)
		}
		return WrapExitError(ExitCommandError, "replay failed", err)
	}

	f := newFormatter(opts.RootOptions, cmd)
	if f.IsJSON() {
		if err := f.JSON(report); err != nil {
			return err
		}
	} else {
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Run %s: %d item(s), %d decision(s), %s\n",
			report.Token, report.ItemCount, report.Decisions, report.Phase)
		fmt.Fprintf(w, "  deterministic:  %v\n", report.Deterministic)
		fmt.Fprintf(w, "  status matches: %v\n", report.StatusMatches)
	}

	if !report.Deterministic {
		return NewExitError(ExitFailure, "replay is not deterministic")
	}
	return nil
}
