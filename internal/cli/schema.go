package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tokenlens/tokenlens/pkg/trace"
)

// schemaCommand creates the schema command for emitting the trace JSON schema.
func (c *CLI) schemaCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema for trace files",
		Long: `Print the JSON schema for trace files.

The schema describes the trace.json format consumed by the layout, render,
summary, diff, and watch commands. Use it to validate traces produced by
instrumented applications.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := trace.Schema()
			if err != nil {
				return fmt.Errorf("generate schema: %w", err)
			}

			if output == "" {
				fmt.Println(string(data))
				return nil
			}
			if err := os.WriteFile(output, append(data, '\n'), 0o644); err != nil {
				return fmt.Errorf("write schema %s: %w", output, err)
			}
			printSuccess("Schema written")
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write schema to file instead of stdout")
	return cmd
}
