// Package pipeline runs a screen document through load → layout → render.
//
// The CLI, the HTTP server and the snapshot tests all go through this
// package, so a document produces the same placement tree and the same
// artifacts whichever entry point asked for it.
//
// # Stages
//
//  1. Load: read a JSON or YAML document from disk, or take one inline
//  2. Layout: build the layout tree and run the measurement pass
//  3. Render: write the placement tree as JSON, PNG, DOT or SVG
//
// Each stage can run on its own or as part of the whole pipeline.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Path:    "screens/home.yaml",
//	    Width:   360,
//	    Height:  document.Inf,
//	    Formats: []string{"png"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	png := result.Artifacts["png"]
//
// Run individual stages:
//
//	doc, err := pipeline.Load(ctx, opts)
//	p, err := runner.Layout(ctx, doc, opts)
//	artifacts, err := runner.Render(ctx, p, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nagyist/rover-android/pkg/cache"
	"github.com/nagyist/rover-android/pkg/document"
	rerrors "github.com/nagyist/rover-android/pkg/errors"
	"github.com/nagyist/rover-android/pkg/layout"
	"github.com/nagyist/rover-android/pkg/render"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the screen width used when neither the document nor
	// the caller sets one.
	DefaultWidth = document.Dimension(360)

	// DefaultHeight is the default screen height.
	DefaultHeight = document.Dimension(640)
)

// DefaultFormats is what Render produces when no format is requested.
var DefaultFormats = []string{string(render.FormatJSON)}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options
	Path     string             `json:"-"`
	Document *document.Document `json:"document,omitempty"`

	// Layout options. Width and Height are the screen; a document that sets
	// its own dimensions overrides them.
	Width           document.Dimension  `json:"width,omitempty"`
	Height          document.Dimension  `json:"height,omitempty"`
	Metrics         *layout.TextMetrics `json:"text_metrics,omitempty"`
	InfinityDefault int                 `json:"infinity_default,omitempty"`
	PackedTransport bool                `json:"packed_transport,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Scale      float64  `json:"scale,omitempty"`
	Background string   `json:"background,omitempty"`
	Outlines   bool     `json:"outlines,omitempty"`
	Detailed   bool     `json:"detailed,omitempty"`

	// Refresh recomputes cached stages and overwrites their entries.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the loaded document.
	Document *document.Document

	// DocumentHash is the content hash of the document's JSON encoding.
	DocumentHash string

	// Placement is the root of the placement tree.
	Placement *layout.Placement

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Errors lists the failures contained by isolation boundaries.
	Errors []string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	BoxCount   int
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each cached stage.
type CacheInfo struct {
	LayoutHit bool // Whether the placement tree came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. Calling it more than once has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks that there is a document to load.
func (o *Options) ValidateForLoad() error {
	if o.Path == "" && o.Document == nil {
		return rerrors.New(rerrors.ErrCodeInvalidInput, "document path or inline document is required")
	}
	if o.Path != "" && o.Document != nil {
		return rerrors.New(rerrors.ErrCodeInvalidInput, "set either a document path or an inline document, not both")
	}
	o.setLogger()
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	o.setLogger()
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := rerrors.ValidateDimension("width", o.Width.Int()); err != nil {
		return err
	}
	if err := rerrors.ValidateDimension("height", o.Height.Int()); err != nil {
		return err
	}
	if m := o.Metrics; m != nil && (m.CharWidth <= 0 || m.LineHeight <= 0) {
		return rerrors.New(rerrors.ErrCodeInvalidInput, "text metrics must be positive, got %dx%d", m.CharWidth, m.LineHeight)
	}
	if o.InfinityDefault < 0 {
		return rerrors.New(rerrors.ErrCodeInvalidInput, "infinity default cannot be negative")
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = append([]string(nil), DefaultFormats...)
	}
	if o.Scale == 0 {
		o.Scale = render.DefaultScale
	}
	if o.Background == "" {
		o.Background = render.DefaultBackground
	}
	o.setLogger()
}

// ValidateForRender validates and sets defaults for rendering. Format names
// are normalized and duplicates dropped.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	seen := make(map[string]bool, len(o.Formats))
	formats := make([]string, 0, len(o.Formats))
	for _, name := range o.Formats {
		f, err := render.ParseFormat(name)
		if err != nil {
			return err
		}
		if !seen[string(f)] {
			seen[string(f)] = true
			formats = append(formats, string(f))
		}
	}
	o.Formats = formats
	if o.Scale < 0 {
		return rerrors.New(rerrors.ErrCodeInvalidInput, "scale cannot be negative")
	}
	if _, err := render.ParseColor(o.Background); err != nil {
		return err
	}
	return nil
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Screen returns the screen size documents are laid out against.
func (o *Options) Screen() layout.Size {
	return layout.Size{Width: o.Width.Int(), Height: o.Height.Int()}
}

// BuildOptions returns the options for document.Build.
func (o *Options) BuildOptions() document.BuildOptions {
	b := document.BuildOptions{
		InfinityDefault: o.InfinityDefault,
		PackedTransport: o.PackedTransport,
	}
	if o.Metrics != nil {
		b.Metrics = *o.Metrics
	}
	return b
}

// RenderOptions returns the options for render.Render.
func (o *Options) RenderOptions() render.Options {
	return render.Options{
		Scale:      o.Scale,
		Background: o.Background,
		Outlines:   o.Outlines,
		Detailed:   o.Detailed,
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	k := cache.LayoutKeyOpts{
		Width:           o.Width.Int(),
		Height:          o.Height.Int(),
		InfinityDefault: o.InfinityDefault,
		PackedTransport: o.PackedTransport,
	}
	if o.Metrics != nil {
		k.CharWidth = o.Metrics.CharWidth
		k.LineHeight = o.Metrics.LineHeight
	}
	return k
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:     format,
		Scale:      o.Scale,
		Background: o.Background,
		Outlines:   o.Outlines,
		Detailed:   o.Detailed,
	}
}
