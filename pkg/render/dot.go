package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	rerrors "github.com/nagyist/rover-android/pkg/errors"
	"github.com/nagyist/rover-android/pkg/layout"
)

// ToDOT converts a placement tree to Graphviz DOT. Every placement becomes
// a box labelled with its kind, id and size; edges point from parent to
// child. Background edges are dashed, overlay edges dotted, and boxes
// replaced by an isolation boundary are filled red.
func ToDOT(p *layout.Placement, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"Helvetica\", fontsize=12, margin=\"0.15,0.05\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.25;\n")
	buf.WriteString("\n")

	var edges []string
	next := 0
	var visit func(pl *layout.Placement, offset layout.Point) string
	visit = func(pl *layout.Placement, offset layout.Point) string {
		name := "n" + strconv.Itoa(next)
		next++
		label := fmtLabel(pl, offset, opts.Detailed)
		fmt.Fprintf(&buf, "  %s [%s];\n", name, strings.Join(fmtAttrs(pl, label), ", "))
		for _, c := range pl.Children {
			child := visit(c.Placement, c.Offset)
			edges = append(edges, fmt.Sprintf("  %s -> %s%s;\n", name, child, edgeStyle(c.Layer)))
		}
		return name
	}
	visit(p, layout.Point{})

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
	}
	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(pl *layout.Placement, offset layout.Point, detailed bool) string {
	head := pl.Kind
	if pl.ID != "" {
		head += "#" + pl.ID
	}
	parts := []string{head, pl.Size.String()}
	if !detailed {
		return strings.Join(parts, "\n")
	}

	parts = append(parts, fmt.Sprintf("at (%d,%d)", offset.X, offset.Y))
	if pl.Fill != "" {
		parts = append(parts, "fill: "+pl.Fill)
	}
	if len(pl.Lines) > 0 {
		parts = append(parts, fmt.Sprintf("lines: %d", len(pl.Lines)))
	}
	if pl.Scroll != nil {
		parts = append(parts, fmt.Sprintf("scroll %s: %s", pl.Scroll.Axis, pl.Scroll.ContentSize))
	}
	if pl.Semantics != nil && pl.Semantics.Label != "" {
		parts = append(parts, fmt.Sprintf("label: %s", pl.Semantics.Label))
	}
	if pl.Error != "" {
		parts = append(parts, "error: "+pl.Error)
	}
	return strings.Join(parts, "\n")
}

func fmtAttrs(pl *layout.Placement, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch {
	case pl.Error != "":
		attrs = append(attrs, "fillcolor=\"#ffb3b3\"")
	case pl.Scroll != nil:
		attrs = append(attrs, "fillcolor=\"#dbe9f6\"")
	case pl.Size.Width == 0 || pl.Size.Height == 0:
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
	}
	return attrs
}

func edgeStyle(l layout.Layer) string {
	switch l {
	case layout.LayerBehind:
		return " [style=dashed]"
	case layout.LayerFront:
		return " [style=dotted]"
	}
	return ""
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, rerrors.Wrap(rerrors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, rerrors.Wrap(rerrors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, rerrors.Wrap(rerrors.ErrCodeInternal, err, "render svg")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg element with one
// whose width and height match the viewBox, so browsers scale it cleanly.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
