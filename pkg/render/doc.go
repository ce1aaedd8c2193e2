// Package render turns a measured placement tree into output artifacts.
//
// # Overview
//
// A [layout.Placement] carries final sizes and relative offsets only. This
// package resolves it to absolute boxes (see [layout.Flatten]) and writes
// one of four formats:
//
//   - JSON: the placement tree plus the flattened box list
//   - PNG: a raster painting of the boxes in paint order (fogleman/gg)
//   - DOT: a Graphviz diagram of the placement tree with sizes
//   - SVG: the DOT diagram rendered through Graphviz
//
// # Usage
//
//	p, err := layout.Layout(root, layout.Propose(360, 640))
//	if err != nil {
//		return err
//	}
//	png, err := render.Render(ctx, p, render.FormatPNG, render.Options{Scale: 2})
//
// # Painting
//
// The PNG painter is a preview, not a pixel-exact host renderer. Rectangles
// are filled with their color and corner radius, text lines are drawn with
// a fixed bitmap face, and images appear as crossed placeholders. Content
// inside a scroll container is clipped to the container's bounds. Subtrees
// replaced by an isolation boundary are tinted so they stand out in
// snapshots.
//
// [Paint] returns the [image.Image] directly, which is what the golden-image
// comparison in package snapshot consumes.
package render
