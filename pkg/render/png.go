package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"

	"github.com/fogleman/gg"

	rerrors "github.com/nagyist/rover-android/pkg/errors"
	"github.com/nagyist/rover-android/pkg/layout"
)

var (
	black       = color.NRGBA{A: 255}
	placeholder = color.NRGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 255}
	errorTint   = color.NRGBA{R: 0xff, G: 0x30, B: 0x30, A: 0x60}
)

// outlineColors are used with Options.Outlines, by placement kind.
var outlineColors = map[string]color.NRGBA{
	"vstack":     {R: 0x1f, G: 0x77, B: 0xb4, A: 0xc0},
	"hstack":     {R: 0x1f, G: 0x77, B: 0xb4, A: 0xc0},
	"zstack":     {R: 0x1f, G: 0x77, B: 0xb4, A: 0xc0},
	"frame":      {R: 0x2c, G: 0xa0, B: 0x2c, A: 0xc0},
	"padding":    {R: 0x2c, G: 0xa0, B: 0x2c, A: 0x80},
	"scroll":     {R: 0xd6, G: 0x27, B: 0x28, A: 0xc0},
	"background": {R: 0x94, G: 0x67, B: 0xbd, A: 0xc0},
	"overlay":    {R: 0x94, G: 0x67, B: 0xbd, A: 0xc0},
}

var defaultOutline = color.NRGBA{R: 0x7f, G: 0x7f, B: 0x7f, A: 0x80}

// Paint rasterizes p. The canvas covers the root's bounds; decorations
// drawn outside them are cut off.
func Paint(p *layout.Placement, opts Options) (image.Image, error) {
	if p == nil {
		return nil, rerrors.New(rerrors.ErrCodeInvalidInput, "nothing to paint")
	}
	opts.SetDefaults()

	w, h := float64(p.Size.Width)*opts.Scale, float64(p.Size.Height)*opts.Scale
	if w < 1 || h < 1 {
		return nil, rerrors.New(rerrors.ErrCodeInvalidInput, "cannot paint a %s placement", p.Size)
	}
	if w > MaxCanvas || h > MaxCanvas {
		return nil, rerrors.New(rerrors.ErrCodeInvalidInput,
			"canvas %.0fx%.0f exceeds %dpx; lower the scale or bound the proposal", w, h, MaxCanvas)
	}
	bg, err := ParseColor(opts.Background)
	if err != nil {
		return nil, err
	}

	dc := gg.NewContext(int(w), int(h))
	dc.SetColor(bg)
	dc.Clear()
	dc.Scale(opts.Scale, opts.Scale)

	for _, b := range layout.Flatten(p) {
		paintBox(dc, b, opts)
	}
	return dc.Image(), nil
}

// RenderPNG paints p and encodes it as PNG.
func RenderPNG(p *layout.Placement, opts Options) ([]byte, error) {
	img, err := Paint(p, opts)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, rerrors.Wrap(rerrors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

// paintBox draws one box. gg does not restore the clip mask on Pop, so
// every box sets (or resets) its own.
func paintBox(dc *gg.Context, b layout.Box, opts Options) {
	dc.ResetClip()
	if b.Clip != nil {
		if b.Clip.Width == 0 || b.Clip.Height == 0 {
			return
		}
		dc.DrawRectangle(float64(b.Clip.X), float64(b.Clip.Y), float64(b.Clip.Width), float64(b.Clip.Height))
		dc.Clip()
	}

	pl := b.Placement
	x, y := float64(b.Rect.X), float64(b.Rect.Y)
	w, h := float64(b.Rect.Width), float64(b.Rect.Height)

	switch pl.Kind {
	case "rectangle":
		if w > 0 && h > 0 {
			dc.SetColor(colorOr(pl.Fill, black))
			if pl.CornerRadius > 0 {
				dc.DrawRoundedRectangle(x, y, w, h, float64(pl.CornerRadius))
			} else {
				dc.DrawRectangle(x, y, w, h)
			}
			dc.Fill()
		}
	case "image":
		if w > 0 && h > 0 {
			dc.SetColor(placeholder)
			dc.DrawRectangle(x, y, w, h)
			dc.Fill()
			dc.SetColor(defaultOutline)
			dc.SetLineWidth(1)
			dc.DrawLine(x, y, x+w, y+h)
			dc.DrawLine(x+w, y, x, y+h)
			dc.Stroke()
		}
	case "text":
		if n := len(pl.Lines); n > 0 {
			lineHeight := h / float64(n)
			dc.SetColor(colorOr(pl.Fill, black))
			for i, line := range pl.Lines {
				dc.DrawStringAnchored(line, x, y+lineHeight*float64(i)+lineHeight/2, 0, 0.5)
			}
		}
	}

	if pl.Error != "" {
		r := b.Rect
		if r.Width == 0 || r.Height == 0 {
			// Isolated subtrees collapse to 0x0; mark the spot.
			r = layout.Rect{X: r.X - 2, Y: r.Y - 2, Width: 4, Height: 4}
		}
		dc.SetColor(errorTint)
		dc.DrawRectangle(float64(r.X), float64(r.Y), float64(r.Width), float64(r.Height))
		dc.Fill()
	}

	if opts.Outlines && w > 0 && h > 0 {
		c, ok := outlineColors[pl.Kind]
		if !ok {
			c = defaultOutline
		}
		dc.SetColor(c)
		dc.SetLineWidth(1 / opts.Scale)
		dc.DrawRectangle(x+0.5/opts.Scale, y+0.5/opts.Scale, w-1/opts.Scale, h-1/opts.Scale)
		dc.Stroke()
	}
}
