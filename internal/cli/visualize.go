package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tokenlens/tokenlens/pkg/errors"
	"github.com/tokenlens/tokenlens/pkg/pipeline"
	"github.com/tokenlens/tokenlens/pkg/render/sink"
)

// visualizeCommand creates the visualize command for rendering from a layout.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "visualize [layout.json]",
		Short: "Render a visualization from a computed layout",
		Long: `Render a visualization from a computed layout.

The visualize command takes a layout.json file (produced by 'layout') and
renders it to SVG, PNG, or PDF format. The layout contains all positioning
information, so this step is purely about rendering.

Results are cached locally for faster subsequent runs.

Use 'render' as a shortcut to go directly from trace.json to visual output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			applyConfig(&opts, cfg)
			if formatsStr != "" || len(opts.Formats) == 0 {
				opts.Formats = parseFormats(formatsStr)
			}
			if err := errors.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runVisualize(cmd.Context(), args[0], opts, output, noCache || cfg.NoCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	cmd.Flags().StringVar(&opts.Style, "style", opts.Style, "visual style: brutalist (default), plain")
	cmd.Flags().StringVar(&opts.Title, "title", opts.Title, "title text above the map")
	cmd.Flags().Float64Var(&opts.Scale, "scale", opts.Scale, "PNG resolution multiplier")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")

	return cmd
}

// runVisualize loads the layout and renders it.
func (c *CLI) runVisualize(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}
	l, recordedStyle, err := sink.ReadLayout(data)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	if opts.Style == "" && recordedStyle != "" {
		opts.Style = recordedStyle
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", l.Kind))
	spinner.Start()

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		spinner.StopWithError("Visualization failed")
		return fmt.Errorf("visualize: %w", err)
	}
	spinner.Stop()

	return writeArtifacts(artifactWriteParams{
		artifacts:  artifacts,
		formats:    opts.Formats,
		input:      input,
		output:     output,
		cacheHit:   cacheHit,
		blockCount: len(l.Rects),
	})
}
