package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nagyist/rover-android/pkg/pipeline"
	"github.com/nagyist/rover-android/pkg/render"
	"github.com/nagyist/rover-android/pkg/snapshot"
)

// snapshotCommand creates the golden image comparison command.
func (c *CLI) snapshotCommand() *cobra.Command {
	var (
		flags  layoutFlags
		golden string
		update bool
		scale  float64
		sopts  = snapshot.DefaultOptions()
	)

	cmd := &cobra.Command{
		Use:   "snapshot [document]",
		Short: "Compare a document's rendering with a golden PNG",
		Long: `Paint a screen document and compare it pixel by pixel with a golden PNG.

On a mismatch the command fails and writes a diff image next to the golden
file (home.png gets home.diff.png) with differing pixels in red.

Use --update to (re)write the golden file from the current rendering.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if golden == "" {
				golden = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".golden.png"
			}
			return c.runSnapshot(cmd.Context(), args[0], &flags, golden, scale, sopts, update)
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().StringVar(&golden, "golden", "", "golden image (default: <input>.golden.png)")
	cmd.Flags().BoolVar(&update, "update", false, "write the golden image instead of comparing")
	cmd.Flags().Float64Var(&scale, "scale", render.DefaultScale, "pixel scale")
	cmd.Flags().IntVar(&sopts.Tolerance, "tolerance", sopts.Tolerance, "allowed difference per color channel (0-255)")
	cmd.Flags().IntVar(&sopts.FuzzyRadius, "fuzzy", sopts.FuzzyRadius, "match pixels against neighbours within this radius")
	cmd.Flags().Float64Var(&sopts.MaxDifferentPercent, "max-diff", sopts.MaxDifferentPercent, "pass when at most this percent of pixels differ")

	return cmd
}

func (c *CLI) runSnapshot(ctx context.Context, input string, flags *layoutFlags, golden string, scale float64, sopts snapshot.Options, update bool) error {
	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := c.options(input, flags)
	opts.Scale = scale
	opts.Formats = []string{string(render.FormatPNG)}

	doc, err := pipeline.Load(ctx, opts)
	if err != nil {
		return err
	}
	p, err := runner.Layout(ctx, doc, opts)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}
	if err := opts.ValidateForRender(); err != nil {
		return err
	}
	img, err := render.Paint(p, opts.RenderOptions())
	if err != nil {
		return err
	}

	res, err := snapshot.Check(img, golden, sopts, update)
	if err != nil {
		return err
	}

	if update {
		printSuccess("Updated golden image")
		printFile(golden)
		return nil
	}
	if res.Match {
		printSuccess("Snapshot matches")
		printDetail("%d of %d pixels differ (max channel difference %d)", res.DifferentPixels, res.TotalPixels, res.MaxDifference)
		return nil
	}

	diff := snapshot.DiffPath(golden)
	if err := snapshot.SavePNG(diff, res.Diff); err != nil {
		return err
	}
	printError("Snapshot differs from %s", golden)
	printDetail("%d of %d pixels differ (%.2f%%)", res.DifferentPixels, res.TotalPixels, res.Percent())
	printFile(diff)
	return fmt.Errorf("snapshot mismatch: %d pixels differ", res.DifferentPixels)
}
