package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tokenlens/tokenlens/pkg/trace"
)

// diffCommand creates the diff command for comparing two traces.
func (c *CLI) diffCommand() *cobra.Command {
	var beforeLabel, afterLabel string

	cmd := &cobra.Command{
		Use:   "diff [before.json] [after.json]",
		Short: "Compare token usage between two traces",
		Long: `Compare token usage between two traces.

Prints a per-type table of token counts before and after, with the change
per type and the total tokens saved. Useful for measuring the effect of
prompt compaction or retrieval tuning.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			before, err := trace.ImportFile(args[0])
			if err != nil {
				return fmt.Errorf("load trace %s: %w", args[0], err)
			}
			after, err := trace.ImportFile(args[1])
			if err != nil {
				return fmt.Errorf("load trace %s: %w", args[1], err)
			}

			d := trace.NewDiff(before, after)
			if beforeLabel != "" {
				d.BeforeLabel = beforeLabel
			}
			if afterLabel != "" {
				d.AfterLabel = afterLabel
			}

			fmt.Print(d.Summary())
			return nil
		},
	}

	cmd.Flags().StringVar(&beforeLabel, "before-label", "", "label for the first trace (default: Before)")
	cmd.Flags().StringVar(&afterLabel, "after-label", "", "label for the second trace (default: After)")

	return cmd
}
