package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/ranked/internal/item"
	"github.com/roach88/ranked/internal/session"
	"github.com/roach88/ranked/internal/store"
)

// ShowOptions holds flags for the show command.
type ShowOptions struct {
	*RootOptions
	Database string
	Run      string
}

// ShowResult is the payload reported by the show command.
type ShowResult struct {
	Token   string   `json:"token"`
	Status  string   `json:"status"`
	Settled int      `json:"settled"`
	Order   []string `json:"order"`
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShowOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the best available ordering of a run",
		Long: `Print the best available ordering of a run, most important first.

For a completed run this is the final order. For a run still in
progress it is a snapshot: the settled prefix followed by the items
not yet placed, in their current internal order - a valid permutation
of the input, but the unsettled tail carries no priority guarantee.
Peeking never changes the run.

Examples:
  ranked show --db ./ranked.db --run <token>
  ranked show --db ./ranked.db --run <token> --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Run, "run", "", "run token (required)")
	_ = cmd.MarkFlagRequired("run")

	return cmd
}

func runShow(opts *ShowOptions, cmd *cobra.Command) error {
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

	placed, _, _ := sess.Progress()
	result := ShowResult{
		Token:   opts.Run,
		Status:  sess.Phase().String(),
		Settled: placed,
		Order:   item.Descriptions(sess.Snapshot()),
	}

	f := newFormatter(opts.RootOptions, cmd)
	if f.IsJSON() {
		return f.JSON(result)
	}

	w := cmd.OutOrStdout()
	switch result.Status {
	case "empty":
		fmt.Fprintf(w, "Run %s has no items.\n", result.Token)
	case "comparing":
		fmt.Fprintf(w, "Run %s is still in progress; first %d position(s) are settled:\n", result.Token, result.Settled)
		printOrder(w, result.Order)
	default:
		fmt.Fprintf(w, "Run %s final order, most important first:\n", result.Token)
		printOrder(w, result.Order)
	}
	return nil
}
