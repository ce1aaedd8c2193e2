package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/spf13/cobra"

	"github.com/nagyist/rover-android/pkg/layout"
	"github.com/nagyist/rover-android/pkg/pipeline"
	"github.com/nagyist/rover-android/pkg/render"
)

// layoutCommand creates the layout command for measuring a document.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags    layoutFlags
		output   string
		showTree bool
	)

	cmd := &cobra.Command{
		Use:   "layout [document]",
		Short: "Measure a document and write its placement tree",
		Long: `Measure a screen document and write the resulting placement tree as JSON.

The document is measured against a proposed screen size taken from the
document itself, then --width/--height, then the config file. Either
dimension may be "inf" to lay out along an unbounded axis.

Use -o - to write the placement tree to stdout, and --tree to print an
outline of the measured boxes.

Results are cached; --refresh recomputes and overwrites them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), cmd.OutOrStdout(), args[0], &flags, output, showTree)
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().StringVarP(&output, "output", "o", "", `output file, "-" for stdout (default: <input>.layout.json)`)
	cmd.Flags().BoolVar(&showTree, "tree", false, "print an outline of the placement tree")

	return cmd
}

// runLayout loads the document, measures it, and writes the placement tree.
func (c *CLI) runLayout(ctx context.Context, w io.Writer, input string, flags *layoutFlags, output string, showTree bool) error {
	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := c.options(input, flags)
	prog := newProgress(c.Logger)

	doc, err := pipeline.Load(ctx, opts)
	if err != nil {
		return err
	}

	spinner := newSpinner(ctx, fmt.Sprintf("Measuring %s...", filepath.Base(input)))
	spinner.Start()

	p, cacheHit, err := runner.LayoutWithCacheInfo(ctx, doc, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	prog.done("Measured " + render.Summary(p))

	data, err := render.RenderJSON(p)
	if err != nil {
		return err
	}

	if output == "-" {
		_, err = w.Write(data)
		return err
	}

	outputPath := output
	if outputPath == "" {
		outputPath = strings.TrimSuffix(input, filepath.Ext(input)) + ".layout.json"
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(p.Count(), pipeline.CountNodes(doc), len(p.Errors()), cacheHit)
	for _, e := range p.Errors() {
		printWarning("%s", e)
	}
	if showTree {
		printNewline()
		fmt.Fprintln(stdout, placementTree(p).String())
	}
	printNewline()
	printNextStep("Render", appName+" render "+input+" -f png")

	return nil
}

var (
	treeKindStyle = lipgloss.NewStyle().Foreground(colorAccent)
	treeIDStyle   = lipgloss.NewStyle().Foreground(colorBright)
	treeErrStyle  = lipgloss.NewStyle().Foreground(colorFail)
)

// placementTree builds an outline of p in paint order.
func placementTree(p *layout.Placement) *tree.Tree {
	return placementSubtree(p, layout.Point{}, layout.LayerContent)
}

func placementSubtree(p *layout.Placement, offset layout.Point, layer layout.Layer) *tree.Tree {
	t := tree.Root(boxLabel(p, offset, layer)).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(StyleDim)
	for _, child := range p.Children {
		if len(child.Placement.Children) == 0 {
			t.Child(boxLabel(child.Placement, child.Offset, child.Layer))
			continue
		}
		t.Child(placementSubtree(child.Placement, child.Offset, child.Layer))
	}
	return t
}

// boxLabel renders "kind#id WxH @x,y [layer]" for one placement.
func boxLabel(p *layout.Placement, offset layout.Point, layer layout.Layer) string {
	var b strings.Builder
	b.WriteString(treeKindStyle.Render(p.Kind))
	if p.ID != "" {
		b.WriteString(treeIDStyle.Render("#" + p.ID))
	}
	b.WriteString(StyleDim.Render(fmt.Sprintf(" %s @%d,%d", p.Size, offset.X, offset.Y)))
	if layer != layout.LayerContent {
		b.WriteString(StyleDim.Render(" [" + layer.String() + "]"))
	}
	if p.Error != "" {
		b.WriteString(" " + treeErrStyle.Render(p.Error))
	}
	return b.String()
}
