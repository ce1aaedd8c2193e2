package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nagyist/rover-android/pkg/render"
)

// renderOpts holds the output flags of the render command.
type renderOpts struct {
	output     string
	formats    string
	scale      float64
	background string
	outlines   bool
	detailed   bool
}

// renderCommand creates the render command for painting a document.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags layoutFlags
		ro    renderOpts
	)

	cmd := &cobra.Command{
		Use:   "render [document]",
		Short: "Render a document to PNG, SVG, DOT or JSON",
		Long: `Measure a screen document and render the placement tree.

Formats (comma-separated with -f):
  png   painted boxes, text and images at --scale
  svg   the placement graph drawn by graphviz
  dot   the placement graph as graphviz source
  json  the placement tree, as written by 'layout'

With a single format, -o names the output file. With several, -o is a base
path and each file gets its format's extension.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], &flags, &ro)
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().StringVarP(&ro.output, "output", "o", "", "output file (single format) or base path (several)")
	cmd.Flags().StringVarP(&ro.formats, "format", "f", "png", "output format(s): png, svg, dot, json (comma-separated)")
	cmd.Flags().Float64Var(&ro.scale, "scale", render.DefaultScale, "pixel scale for png output")
	cmd.Flags().StringVar(&ro.background, "background", render.DefaultBackground, "canvas color for png output")
	cmd.Flags().BoolVar(&ro.outlines, "outlines", false, "stroke the bounds of every box (png)")
	cmd.Flags().BoolVar(&ro.detailed, "detailed", false, "add offsets and paint attributes to graph labels (dot, svg)")

	return cmd
}

// runRender executes the full pipeline and writes one file per format.
func (c *CLI) runRender(ctx context.Context, input string, flags *layoutFlags, ro *renderOpts) error {
	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := c.options(input, flags)
	opts.Formats = parseFormats(ro.formats)
	opts.Scale = ro.scale
	opts.Background = ro.background
	opts.Outlines = ro.outlines
	opts.Detailed = ro.detailed

	spinner := newSpinner(ctx, fmt.Sprintf("Rendering %s...", filepath.Base(input)))
	spinner.Start()
	restore := followStages(spinner)
	result, err := runner.Execute(ctx, opts)
	restore()
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := writeArtifacts(input, ro.output, opts.Formats, result.Artifacts)
	if err != nil {
		return err
	}

	printSuccess("Rendered %s", render.Summary(result.Placement))
	for _, p := range paths {
		printFile(p)
	}
	cached := result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit
	printStats(result.Stats.BoxCount, result.Stats.NodeCount, len(result.Errors), cached)
	for _, e := range result.Errors {
		printWarning("%s", e)
	}

	return nil
}

// writeArtifacts writes each rendered format and returns the paths written,
// in format order.
func writeArtifacts(input, output string, formats []string, artifacts map[string][]byte) ([]string, error) {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	if output != "" {
		base = strings.TrimSuffix(output, filepath.Ext(output))
	}

	var paths []string
	seen := make(map[render.Format]bool, len(formats))
	for _, name := range formats {
		f, err := render.ParseFormat(name)
		if err != nil {
			return nil, err
		}
		if seen[f] {
			continue
		}
		seen[f] = true

		path := base + f.Ext()
		if output != "" && len(formats) == 1 {
			path = output
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create directory: %w", err)
		}
		if err := os.WriteFile(path, artifacts[string(f)], 0o644); err != nil {
			return nil, fmt.Errorf("write output %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
