package render

import (
	"context"
	"fmt"
	"strings"

	rerrors "github.com/nagyist/rover-android/pkg/errors"
	"github.com/nagyist/rover-android/pkg/layout"
)

// Format is an output format.
type Format string

const (
	FormatJSON Format = "json"
	FormatPNG  Format = "png"
	FormatDOT  Format = "dot"
	FormatSVG  Format = "svg"
)

// Formats lists every supported format.
var Formats = []Format{FormatJSON, FormatPNG, FormatDOT, FormatSVG}

// ParseFormat parses a format name, ignoring case.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormatJSON, FormatPNG, FormatDOT, FormatSVG:
		return f, nil
	}
	return "", rerrors.New(rerrors.ErrCodeInvalidFormat, "unknown output format %q (want json, png, dot or svg)", s)
}

// Ext returns the file extension including the dot.
func (f Format) Ext() string { return "." + string(f) }

// ContentType returns the MIME type served for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatPNG:
		return "image/png"
	case FormatSVG:
		return "image/svg+xml"
	case FormatDOT:
		return "text/vnd.graphviz"
	}
	return "application/octet-stream"
}

// Binary reports whether the format should not be written to a terminal.
func (f Format) Binary() bool { return f == FormatPNG }

// Default option values.
const (
	DefaultScale      = 1.0
	DefaultBackground = "#ffffff"
	// MaxCanvas is the largest painted edge in pixels, after scaling.
	MaxCanvas = 8192
)

// Options configures rendering. The zero value is usable.
type Options struct {
	// Scale multiplies every coordinate when painting (PNG only).
	Scale float64
	// Background is the canvas color as hex (PNG only).
	Background string
	// Outlines strokes the bounds of every box (PNG only).
	Outlines bool
	// Detailed adds offsets and paint attributes to DOT labels.
	Detailed bool
}

// SetDefaults fills unset options.
func (o *Options) SetDefaults() {
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Background == "" {
		o.Background = DefaultBackground
	}
}

// Render writes p in the given format.
func Render(ctx context.Context, p *layout.Placement, f Format, opts Options) ([]byte, error) {
	if p == nil {
		return nil, rerrors.New(rerrors.ErrCodeInvalidInput, "nothing to render")
	}
	opts.SetDefaults()

	switch f {
	case FormatJSON:
		return RenderJSON(p)
	case FormatPNG:
		return RenderPNG(p, opts)
	case FormatDOT:
		return []byte(ToDOT(p, opts)), nil
	case FormatSVG:
		return RenderSVG(ctx, ToDOT(p, opts))
	}
	return nil, rerrors.New(rerrors.ErrCodeUnsupported, "format %q", f)
}

// Summary is a one-line description of a placement tree, used in logs and
// CLI status lines.
func Summary(p *layout.Placement) string {
	s := fmt.Sprintf("%s %s, %d boxes", p.Kind, p.Size, p.Count())
	if errs := p.Errors(); len(errs) > 0 {
		s += fmt.Sprintf(", %d isolated", len(errs))
	}
	return s
}
