package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/ranked/internal/session"
)

// ComparisonView is the pair awaiting a decision, as shown to the user.
type ComparisonView struct {
	Candidate string `json:"candidate"`
	Pivot     string `json:"pivot"`
}

// currentComparison extracts the pending pair from a session, or nil when
// no decision is pending.
func currentComparison(sess *session.Session) *ComparisonView {
	candidate, pivot, ok := sess.Current()
	if !ok {
		return nil
	}
	return &ComparisonView{
		Candidate: candidate.Description,
		Pivot:     pivot.Description,
	}
}

// printComparison renders the pending pair with the two answers that
// resolve it.
func printComparison(w io.Writer, c *ComparisonView) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Which is more important?")
	fmt.Fprintf(w, "  candidate: %s\n", c.Candidate)
	fmt.Fprintf(w, "  pivot:     %s\n", c.Pivot)
	fmt.Fprintln(w)
	fmt.Fprintln(w, `Answer with "ranked choose candidate" or "ranked choose pivot".`)
}

// printOrder renders a ranking, most important first.
func printOrder(w io.Writer, order []string) {
	for i, description := range order {
		fmt.Fprintf(w, "%3d. %s\n", i+1, description)
	}
}

// newFormatter builds the output formatter for a command invocation.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
}
