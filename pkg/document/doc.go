// Package document reads experience documents and turns them into layout
// trees.
//
// An experience document describes one screen: a tree of typed nodes, each
// optionally carrying modifiers, plus the screen size the screen is
// designed for. Documents are JSON or YAML; both share one schema.
//
// # Format
//
//	{
//	  "name": "home",
//	  "width": 360,
//	  "height": 640,
//	  "root": {
//	    "type": "vstack",
//	    "alignment": "leading",
//	    "spacing": 8,
//	    "children": [
//	      {"type": "text", "text": "Featured", "transform": "uppercase"},
//	      {"type": "scroll", "axis": "horizontal", "children": [...]}
//	    ],
//	    "modifiers": {
//	      "padding": {"top": 16, "leading": 16, "bottom": 16, "trailing": 16},
//	      "frame": {"max_width": "inf", "alignment": "top"},
//	      "background": {"node": {"type": "rectangle", "fill": "#f4f4f4"}}
//	    }
//	  }
//	}
//
// Lengths accept the string "inf" for an unbounded dimension.
//
// # Node Types
//
//	text, image, rectangle, spacer, empty  leaves
//	vstack, hstack, zstack                 stacks
//	scroll                                 scroll container (axis defaults to vertical)
//	native                                 host view with a natural size
//
// # Modifiers
//
// Modifiers wrap the node innermost first in a fixed order: padding,
// frame, background, overlay, accessibility. A node with "isolate" set is
// finally wrapped in a [layout.Boundary] so a failure inside it does not
// fail the whole screen.
//
// # Usage
//
//	doc, err := document.ReadFile("home.yaml")
//	if err != nil { ... }
//	root, err := document.Build(doc, document.BuildOptions{})
//	p, err := layout.Layout(root, doc.Constraints(layout.Size{Width: 360, Height: 640}))
//
// [ReadFile] and [Parse] validate the document; [Build] assumes a valid
// document and assigns generated IDs to nodes that have none.
package document
