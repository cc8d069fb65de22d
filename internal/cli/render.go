package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tokenlens/tokenlens/pkg/errors"
	"github.com/tokenlens/tokenlens/pkg/pipeline"
)

// renderCommand creates the render command for going directly from a
// trace to visual output.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [trace.json]",
		Short: "Render a context trace to SVG(s)",
		Long: `Render a context trace to visual output.

The render command runs the full layout and render pipeline in one step,
producing SVG, PNG, PDF, or JSON output from a trace.json file. Use the
separate 'layout' and 'visualize' commands when you want to inspect or
post-process the intermediate layout.

Results are cached locally for faster subsequent runs.`,
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
			return c.runRender(cmd.Context(), args[0], opts, output, noCache || cfg.NoCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when cached")

	cmd.Flags().StringVarP(&opts.Kind, "kind", "k", opts.Kind, "layout kind: treemap (default), flex, banded")
	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "frame width")
	cmd.Flags().Float64Var(&opts.Height, "height", opts.Height, "frame height")
	cmd.Flags().StringVar(&opts.Style, "style", opts.Style, "visual style: brutalist (default), plain")
	cmd.Flags().StringVar(&opts.Title, "title", opts.Title, "title text above the map")
	cmd.Flags().Float64Var(&opts.Scale, "scale", opts.Scale, "PNG resolution multiplier")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")

	return cmd
}

// runRender executes the full pipeline and writes the artifacts.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
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

	spinner := newSpinnerWithContext(ctx, "Rendering context map...")
	spinner.Start()

	result, err := runner.Execute(ctx, t, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	return writeArtifacts(artifactWriteParams{
		artifacts:      result.Artifacts,
		formats:        opts.Formats,
		input:          input,
		output:         output,
		cacheHit:       result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit,
		componentCount: result.Stats.ComponentCount,
		blockCount:     result.Stats.BlockCount,
	})
}

// artifactWriteParams bundles the inputs for writeArtifacts.
type artifactWriteParams struct {
	artifacts      map[string][]byte
	formats        []string
	input          string
	output         string
	cacheHit       bool
	componentCount int
	blockCount     int
}

// writeArtifacts writes each rendered format to disk and prints a summary.
// A single format honors the output path verbatim; multiple formats share
// a base path and get per-format extensions.
func writeArtifacts(p artifactWriteParams) error {
	base := basePath(p.output, p.input)

	var written []string
	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			continue
		}

		path := base + "." + format
		if p.output != "" && len(p.formats) == 1 {
			path = p.output
		}

		if err := writeFile(path, data); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}

	printSuccess("Render complete")
	for _, path := range written {
		printFile(path)
	}
	printStats(p.componentCount, p.blockCount, p.cacheHit)
	return nil
}

// basePath derives the base output path from the output and input paths.
// Known format extensions are stripped so "out.svg" with multiple formats
// becomes "out.png", "out.pdf", and so on.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	for _, f := range errors.SupportedFormats {
		if ext == "."+f {
			return strings.TrimSuffix(output, ext)
		}
	}
	return output
}

// writeFile writes data to path, creating parent directories as needed.
func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
