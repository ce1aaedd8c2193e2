// Package pkg provides the libraries behind rover, a layout engine for
// experience screens.
//
// # Overview
//
// Rover measures a tree of screen elements (stacks, text, images, frames,
// backgrounds, overlays, scroll containers) against a proposed screen size
// and produces a placement tree: the final size of every element and the
// offset of each child inside its parent. Elements may also be native host
// views that only speak a narrow single-scalar measurement contract; sizes
// cross that boundary packed into one 32-bit value.
//
// # Architecture
//
// The typical data flow:
//
//	experience document (JSON / YAML)
//	         ↓
//	    [document] package (validate, apply modifiers → layout.Node tree)
//	         ↓
//	    [layout] package (two-phase measurement → layout.Placement)
//	         ↓
//	    [render] package (JSON, PNG, DOT, SVG)
//
// [pipeline] runs these stages with caching and hooks; the CLI, the HTTP
// [server] and the tests all go through it.
//
// # Quick Start
//
//	import (
//	    "github.com/nagyist/rover-android/pkg/document"
//	    "github.com/nagyist/rover-android/pkg/layout"
//	    "github.com/nagyist/rover-android/pkg/render"
//	)
//
//	// 1. Read a document
//	doc, _ := document.ReadFile("home.yaml")
//
//	// 2. Build the node tree
//	root, _ := document.Build(doc, document.BuildOptions{})
//
//	// 3. Measure against a 360-wide screen of unbounded height
//	p, _ := layout.Layout(root, doc.Constraints(layout.Size{Width: 360, Height: layout.Infinity}))
//
//	// 4. Paint it
//	png, _ := render.RenderPNG(p, render.Options{Scale: 2})
//
// # Main Packages
//
// ## Core
//
// [layout] - Sizes, constraints, the packed size codec, the measurement
// protocol (Measure / FlexRange / FallbackMeasure) and every node kind:
// frames, padding, backgrounds and overlays, stacks, scroll containers,
// text, images, rectangles, spacers, semantics, host bridges and error
// boundaries.
//
// [document] - The experience document model. Modifiers are applied
// innermost first (padding, frame, background, overlay, accessibility) and
// nodes without an id get a stable generated one.
//
// ## Output
//
// [render] - Placement trees as JSON, PNG painted with gg, and DOT or SVG
// diagrams drawn by graphviz.
//
// [snapshot] - Golden image comparison with per-channel tolerance, fuzzy
// matching and a share of pixels allowed to differ.
//
// ## Infrastructure
//
// [pipeline] - Load → layout → render with options validation, a [cache]
// and [observability] hooks.
//
// [cache] - File, Redis, memory and null caches for placement trees and
// rendered artifacts.
//
// [store] - Recorded layout runs in memory or MongoDB.
//
// [server] - The HTTP API over the pipeline and the run store.
//
// [config] - rover.toml.
//
// [errors] - Coded errors shared by every package.
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/layout/...             # Specific package
//	go test -run Example ./pkg/...       # Examples only
//
// [layout]: https://pkg.go.dev/github.com/nagyist/rover-android/pkg/layout
// [document]: https://pkg.go.dev/github.com/nagyist/rover-android/pkg/document
// [render]: https://pkg.go.dev/github.com/nagyist/rover-android/pkg/render
// [snapshot]: https://pkg.go.dev/github.com/nagyist/rover-android/pkg/snapshot
// [pipeline]: https://pkg.go.dev/github.com/nagyist/rover-android/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/nagyist/rover-android/pkg/cache
// [store]: https://pkg.go.dev/github.com/nagyist/rover-android/pkg/store
// [server]: https://pkg.go.dev/github.com/nagyist/rover-android/pkg/server
// [config]: https://pkg.go.dev/github.com/nagyist/rover-android/pkg/config
// [errors]: https://pkg.go.dev/github.com/nagyist/rover-android/pkg/errors
// [observability]: https://pkg.go.dev/github.com/nagyist/rover-android/pkg/observability
package pkg
