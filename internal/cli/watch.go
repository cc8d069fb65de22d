package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tokenlens/tokenlens/pkg/errors"
	"github.com/tokenlens/tokenlens/pkg/pipeline"
	"github.com/tokenlens/tokenlens/pkg/watch"
)

// watchCommand creates the watch command for continuous re-rendering.
func (c *CLI) watchCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		debounce   time.Duration
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "watch [trace.json|directory]",
		Short: "Re-render whenever a trace file changes",
		Long: `Re-render whenever a trace file changes.

The watch command monitors a trace file (or a directory of trace files)
and reruns the render pipeline each time one changes, so the output stays
current while an application writes fresh traces. Press Ctrl-C to stop.`,
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
			return c.runWatch(cmd.Context(), args[0], opts, output, debounce)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().DurationVar(&debounce, "debounce", 250*time.Millisecond, "settle time before re-rendering")

	cmd.Flags().StringVarP(&opts.Kind, "kind", "k", opts.Kind, "layout kind: treemap (default), flex, banded")
	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "frame width")
	cmd.Flags().Float64Var(&opts.Height, "height", opts.Height, "frame height")
	cmd.Flags().StringVar(&opts.Style, "style", opts.Style, "visual style: brutalist (default), plain")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")

	return cmd
}

// runWatch renders once up front, then re-renders on every settled change.
func (c *CLI) runWatch(ctx context.Context, path string, opts pipeline.Options, output string, debounce time.Duration) error {
	runner, err := c.newRunner(false)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	rerender := func(changed string) error {
		p := newProgress(loggerFromContext(ctx))

		t, err := pipeline.LoadTrace(ctx, changed)
		if err != nil {
			return fmt.Errorf("load trace %s: %w", changed, err)
		}

		result, err := runner.Execute(ctx, t, opts)
		if err != nil {
			return fmt.Errorf("render %s: %w", changed, err)
		}
		p.done(fmt.Sprintf("Rendered %d format(s)", len(result.Artifacts)))

		return writeArtifacts(artifactWriteParams{
			artifacts:      result.Artifacts,
			formats:        opts.Formats,
			input:          changed,
			output:         output,
			cacheHit:       result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit,
			componentCount: result.Stats.ComponentCount,
			blockCount:     result.Stats.BlockCount,
		})
	}

	// Initial render for single-file watches so output exists before the
	// first change.
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		if err := rerender(path); err != nil {
			printWarning("initial render failed: %v", err)
		}
	}

	config := watch.DefaultConfig(path)
	config.DebounceInterval = debounce

	w, err := watch.New(config, c.Logger)
	if err != nil {
		return err
	}
	defer func() { _ = w.Stop() }()

	printInfo("Watching %s (Ctrl-C to stop)", path)
	return w.Watch(ctx, rerender)
}
