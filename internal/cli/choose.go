package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/ranked/internal/item"
	"github.com/roach88/ranked/internal/session"
	"github.com/roach88/ranked/internal/sorter"
	"github.com/roach88/ranked/internal/store"
)

// ChooseOptions holds flags for the choose command.
type ChooseOptions struct {
	*RootOptions
	Database string
	Run      string
}

// ChooseResult is the payload reported after applying one decision.
type ChooseResult struct {
	Token  string          `json:"token"`
	Status string          `json:"status"`
	Next   *ComparisonView `json:"next,omitempty"`
	Order  []string        `json:"order,omitempty"` // final order once done
}

// NewChooseCommand creates the choose command.
func NewChooseCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ChooseOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "choose (candidate|pivot)",
		Short: "Answer the pending comparison of a run",
		Long: `Answer the pending comparison of a run with a single decision:
"candidate" if the item being placed is more important than the pivot
it is shown against, "pivot" otherwise.

The decision is appended to the run's log before the next pair (or the
final order) is printed. Calling choose on a run with no pending
comparison is an error - stray decisions are never swallowed.

Examples:
  ranked choose candidate --db ./ranked.db --run <token>
  ranked choose pivot --db ./ranked.db --run <token>`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChoose(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Run, "run", "", "run token (required)")
	_ = cmd.MarkFlagRequired("run")

	return cmd
}

func runChoose(opts *ChooseOptions, rawChoice string, cmd *cobra.Command) error {
	ctx := context.Background()

	choice, err := sorter.ParseChoice(rawChoice)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid decision", err)
	}

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

	if err := sess.Choose(ctx, choice); err != nil {
		if sorter.IsNoComparison(err) {
			return WrapExitError(ExitFailure, "run has no pending comparison", err)
		}
		return WrapExitError(ExitCommandError, "failed to apply decision", err)
	}

	result := ChooseResult{
		Token:  opts.Run,
		Status: sess.Phase().String(),
		Next:   currentComparison(sess),
	}
	if sess.Phase() == sorter.PhaseDone {
		result.Order = item.Descriptions(sess.Snapshot())
	}

	f := newFormatter(opts.RootOptions, cmd)
	if f.IsJSON() {
		return f.JSON(result)
	}

	w := cmd.OutOrStdout()
	if result.Next != nil {
		printComparison(w, result.Next)
		return nil
	}
	fmt.Fprintf(w, "Run %s complete. Final order, most important first:\n", result.Token)
	printOrder(w, result.Order)
	return nil
}
