package snapshot

import (
	"image"
	"image/color"

	rerrors "github.com/nagyist/rover-android/pkg/errors"
)

// Options configures an image comparison.
type Options struct {
	// Tolerance is the largest allowed difference per color channel (0-255).
	Tolerance int `toml:"tolerance" json:"tolerance"`

	// FuzzyRadius lets a pixel match any expected pixel within this radius.
	FuzzyRadius int `toml:"fuzzy_radius" json:"fuzzy_radius"`

	// MaxDifferentPercent passes images whose share of differing pixels is
	// at most this value.
	MaxDifferentPercent float64 `toml:"max_different_percent" json:"max_different_percent"`
}

// DefaultOptions returns a small tolerance for anti-aliasing differences.
func DefaultOptions() Options {
	return Options{Tolerance: 2}
}

// Validate checks that the options are in range.
func (o Options) Validate() error {
	if o.Tolerance < 0 || o.Tolerance > 255 {
		return rerrors.New(rerrors.ErrCodeInvalidInput, "tolerance must be within 0..255 (got %d)", o.Tolerance)
	}
	if o.FuzzyRadius < 0 {
		return rerrors.New(rerrors.ErrCodeInvalidInput, "fuzzy radius cannot be negative (got %d)", o.FuzzyRadius)
	}
	if o.MaxDifferentPercent < 0 || o.MaxDifferentPercent > 100 {
		return rerrors.New(rerrors.ErrCodeInvalidInput, "max different percent must be within 0..100 (got %g)", o.MaxDifferentPercent)
	}
	return nil
}

// Result is the outcome of a comparison.
type Result struct {
	Match           bool
	DifferentPixels int
	TotalPixels     int
	MaxDifference   int // largest channel difference seen

	// Diff shows the actual image in grey with unmatched pixels in red.
	Diff *image.RGBA
}

// Percent returns the share of differing pixels.
func (r *Result) Percent() float64 {
	if r.TotalPixels == 0 {
		return 0
	}
	return float64(r.DifferentPixels) / float64(r.TotalPixels) * 100
}

var diffRed = color.RGBA{R: 255, A: 255}

// Compare compares actual against expected pixel by pixel. Images of
// different bounds never match and are reported as an error.
func Compare(actual, expected image.Image, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	bounds := actual.Bounds()
	if eb := expected.Bounds(); bounds != eb {
		return &Result{}, rerrors.New(rerrors.ErrCodeInvalidInput,
			"image dimensions differ: actual %dx%d, expected %dx%d", bounds.Dx(), bounds.Dy(), eb.Dx(), eb.Dy())
	}

	res := &Result{
		Match:       true,
		TotalPixels: bounds.Dx() * bounds.Dy(),
		Diff:        image.NewRGBA(bounds),
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			a := rgba8(actual.At(x, y))
			diff := channelDiff(a, rgba8(expected.At(x, y)))
			res.MaxDifference = max(res.MaxDifference, diff)

			if diff > opts.Tolerance && !fuzzyMatch(a, expected, x, y, opts) {
				res.Match = false
				res.DifferentPixels++
				res.Diff.Set(x, y, diffRed)
				continue
			}
			grey := uint8(a[0])
			res.Diff.Set(x, y, color.RGBA{R: grey, G: grey, B: grey, A: 255})
		}
	}

	if !res.Match && opts.MaxDifferentPercent > 0 && res.Percent() <= opts.MaxDifferentPercent {
		res.Match = true
	}
	return res, nil
}

// fuzzyMatch reports whether any expected pixel within the radius of
// (x, y) matches the actual pixel a.
func fuzzyMatch(a [4]int, expected image.Image, x, y int, opts Options) bool {
	r := opts.FuzzyRadius
	if r == 0 {
		return false
	}
	b := expected.Bounds()
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			p := image.Pt(x+dx, y+dy)
			if !p.In(b) {
				continue
			}
			if channelDiff(a, rgba8(expected.At(p.X, p.Y))) <= opts.Tolerance {
				return true
			}
		}
	}
	return false
}

func rgba8(c color.Color) [4]int {
	r, g, b, a := c.RGBA()
	return [4]int{int(r >> 8), int(g >> 8), int(b >> 8), int(a >> 8)}
}

func channelDiff(a, b [4]int) int {
	d := 0
	for i := range a {
		d = max(d, abs(a[i]-b[i]))
	}
	return d
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
