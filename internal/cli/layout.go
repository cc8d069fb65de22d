package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tokenlens/tokenlens/pkg/pipeline"
	"github.com/tokenlens/tokenlens/pkg/render/sink"
)

// layoutCommand creates the layout command for computing block layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [trace.json]",
		Short: "Compute a block layout from a context trace",
		Long: `Compute a block layout from a context trace.

The layout command takes a trace.json file and computes block positions
for visualization. The output is a layout.json file (same format as
'render -f json') that can be rendered to SVG/PNG/PDF using the
'visualize' command.

Supports treemap (default), flex, and banded layouts.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			applyConfig(&opts, cfg)
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache || cfg.NoCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	cmd.Flags().StringVarP(&opts.Kind, "kind", "k", opts.Kind, "layout kind: treemap (default), flex, banded")
	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "frame width")
	cmd.Flags().Float64Var(&opts.Height, "height", opts.Height, "frame height")

	return cmd
}

// runLayout loads the trace, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	t, err := pipeline.LoadTrace(ctx, input)
	if err != nil {
		return fmt.Errorf("load trace %s: %w", input, err)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	opts.SetLayoutDefaults()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Computing %s layout...", opts.Kind))
	spinner.Start()

	l, err := runner.GenerateLayout(ctx, t, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".layout.json"
	}

	data, err := sink.RenderJSON(l, sink.WithJSONStyle(opts.Style))
	if err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	if err := writeFile(outputPath, data); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(t.Components), len(l.Rects), false)
	printNewline()
	printNextStep("Render", "tokenlens visualize "+outputPath)

	return nil
}
