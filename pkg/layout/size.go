package layout

import (
	"fmt"
	"math"
)

// Sentinel dimensions. Both are larger than any real pixel size.
const (
	// Infinity means "no upper bound" in a proposal. A node must never
	// report it as its own final size.
	Infinity = math.MaxInt32

	// GreatestFinite is the largest finite dimension. It is kept distinct
	// from Infinity so an almost unbounded result is never mistaken for an
	// unconstrained proposal.
	GreatestFinite = math.MaxInt32 - 1
)

// IsInfinite reports whether d is the Infinity sentinel.
func IsInfinite(d int) bool { return d == Infinity }

// orElse returns d unless it is infinite, in which case it returns fallback.
func orElse(d, fallback int) int {
	if d == Infinity {
		return fallback
	}
	return d
}

// addDims adds two dimensions, saturating at Infinity.
func addDims(a, b int) int {
	if a == Infinity || b == Infinity {
		return Infinity
	}
	if s := int64(a) + int64(b); s < Infinity {
		return int(s)
	}
	return Infinity
}

// subDims subtracts b from a, never going below zero. Infinity minus a
// finite value stays infinite.
func subDims(a, b int) int {
	if a == Infinity {
		return Infinity
	}
	return max(a-b, 0)
}

func fmtDim(d int) string {
	switch d {
	case Infinity:
		return "∞"
	case GreatestFinite:
		return "max"
	}
	return fmt.Sprint(d)
}

// Axis selects one of the two layout dimensions.
type Axis uint8

const (
	Horizontal Axis = iota // width
	Vertical               // height
)

// Cross returns the other axis.
func (a Axis) Cross() Axis {
	if a == Horizontal {
		return Vertical
	}
	return Horizontal
}

func (a Axis) String() string {
	if a == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// ParseAxis parses "horizontal" or "vertical". The empty string yields
// Vertical.
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "horizontal":
		return Horizontal, nil
	case "vertical", "":
		return Vertical, nil
	}
	return Vertical, fmt.Errorf("unknown axis %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (a Axis) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Axis) UnmarshalText(b []byte) error {
	v, err := ParseAxis(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Size is a measured or proposed two-dimensional size.
type Size struct {
	Width  int `json:"width" bson:"width"`
	Height int `json:"height" bson:"height"`
}

// Along returns the dimension of s on axis a.
func (s Size) Along(a Axis) int {
	if a == Horizontal {
		return s.Width
	}
	return s.Height
}

// With returns a copy of s with the dimension on axis a replaced by v.
func (s Size) With(a Axis, v int) Size {
	if a == Horizontal {
		s.Width = v
	} else {
		s.Height = v
	}
	return s
}

// IsFinite reports whether neither dimension is infinite.
func (s Size) IsFinite() bool {
	return s.Width != Infinity && s.Height != Infinity
}

func (s Size) String() string {
	return fmtDim(s.Width) + "x" + fmtDim(s.Height)
}

// Point is an offset relative to a parent's origin.
type Point struct {
	X int `json:"x" bson:"x"`
	Y int `json:"y" bson:"y"`
}

// With returns a copy of p with the coordinate on axis a replaced by v.
func (p Point) With(a Axis, v int) Point {
	if a == Horizontal {
		p.X = v
	} else {
		p.Y = v
	}
	return p
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Constraints is what a parent hands a child being measured. The maxima
// are the proposed size and may be Infinity. The minima are only binding
// for host measurables and fixed frames; protocol nodes size themselves
// from the proposal.
type Constraints struct {
	MinWidth  int `json:"min_width,omitempty"`
	MaxWidth  int `json:"max_width"`
	MinHeight int `json:"min_height,omitempty"`
	MaxHeight int `json:"max_height"`
}

// Propose returns constraints with the given maxima and no minima.
func Propose(width, height int) Constraints {
	return Constraints{MaxWidth: width, MaxHeight: height}
}

// ProposeSize is Propose for a Size.
func ProposeSize(s Size) Constraints { return Propose(s.Width, s.Height) }

// Exact returns constraints forcing exactly width x height.
func Exact(width, height int) Constraints {
	return Constraints{MinWidth: width, MaxWidth: width, MinHeight: height, MaxHeight: height}
}

// Unbounded returns a proposal that is infinite on both axes.
func Unbounded() Constraints { return Propose(Infinity, Infinity) }

// Max returns the proposed size.
func (c Constraints) Max() Size { return Size{Width: c.MaxWidth, Height: c.MaxHeight} }

// MaxAlong returns the proposal on axis a.
func (c Constraints) MaxAlong(a Axis) int { return c.Max().Along(a) }

// WithMax returns a copy of c with the maximum on axis a replaced. The
// minimum on that axis is lowered when it would exceed the new maximum.
func (c Constraints) WithMax(a Axis, v int) Constraints {
	if a == Horizontal {
		c.MaxWidth = v
		c.MinWidth = min(c.MinWidth, v)
	} else {
		c.MaxHeight = v
		c.MinHeight = min(c.MinHeight, v)
	}
	return c
}

// Coerce clamps s into the constraints the way a host toolkit would.
func (c Constraints) Coerce(s Size) Size {
	return Size{
		Width:  max(c.MinWidth, min(s.Width, c.MaxWidth)),
		Height: max(c.MinHeight, min(s.Height, c.MaxHeight)),
	}
}

// Validate checks that the constraints are usable for a layout pass.
func (c Constraints) Validate() error {
	if c.MaxWidth < 0 || c.MaxHeight < 0 || c.MinWidth < 0 || c.MinHeight < 0 {
		return fmt.Errorf("negative constraint %s", c)
	}
	if c.MinWidth > c.MaxWidth || c.MinHeight > c.MaxHeight {
		return fmt.Errorf("minimum exceeds maximum in %s", c)
	}
	return nil
}

func (c Constraints) String() string {
	if c.MinWidth == 0 && c.MinHeight == 0 {
		return "≤" + c.Max().String()
	}
	return fmt.Sprintf("[%s..%s]x[%s..%s]",
		fmtDim(c.MinWidth), fmtDim(c.MaxWidth), fmtDim(c.MinHeight), fmtDim(c.MaxHeight))
}

// FlexRange is the inclusive range of lengths a node can take along one
// axis. Bounds share the sentinel space of Size.
type FlexRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Fixed returns the inflexible range [v, v].
func Fixed(v int) FlexRange { return FlexRange{Min: v, Max: v} }

// Flexible is the range [0, Infinity].
var Flexible = FlexRange{Min: 0, Max: Infinity}

// Flexibility is the width of the range, saturating at Infinity.
func (r FlexRange) Flexibility() int {
	if r.Max == Infinity {
		return Infinity
	}
	return max(r.Max-r.Min, 0)
}

func (r FlexRange) String() string { return fmtDim(r.Min) + ".." + fmtDim(r.Max) }
