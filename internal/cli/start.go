package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/ranked/internal/session"
	"github.com/roach88/ranked/internal/store"
)

// StartOptions holds flags for the start command.
type StartOptions struct {
	*RootOptions
	Database string
}

// StartResult is the payload reported after starting a run.
type StartResult struct {
	Token     string          `json:"token"`
	Status    string          `json:"status"`
	ItemCount int             `json:"item_count"`
	Next      *ComparisonView `json:"next,omitempty"`
}

// NewStartCommand creates the start command.
func NewStartCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StartOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "start <list-file>",
		Short: "Start a new ranking run from an item list",
		Long: `Start a new ranking run from an item list.

The list format is chosen by file extension: .cue (schema-checked),
.yaml/.yml (an "items" list), anything else plain text with one item
per line. The run token printed on success identifies the run for all
other commands.

Examples:
  ranked start todo.txt --db ./ranked.db
  ranked start backlog.yaml --db ./ranked.db --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStart(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runStart(opts *StartOptions, listPath string, cmd *cobra.Command) error {
	ctx := context.Background()

	items, err := LoadItems(listPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load item list", err)
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	sess := session.New(st, session.UUIDv7Generator{})
	token, err := sess.Begin(ctx, items)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to start run", err)
	}

	result := StartResult{
		Token:     token,
		Status:    sess.Phase().String(),
		ItemCount: len(items),
		Next:      currentComparison(sess),
	}

	f := newFormatter(opts.RootOptions, cmd)
	if f.IsJSON() {
		return f.JSON(result)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Started run %s over %d item(s): %s\n", result.Token, result.ItemCount, result.Status)
	switch {
	case result.Next != nil:
		printComparison(w, result.Next)
	case result.Status == "done":
		fmt.Fprintln(w, "Nothing to compare; the order is already final. Use \"ranked show\" to print it.")
	default:
		fmt.Fprintln(w, "The list was empty; there is nothing to rank.")
	}
	return nil
}
