package layout

// DefaultExpandLength is what an expanding node takes on an axis proposed
// Infinity.
const DefaultExpandLength = 10

// Empty takes no space.
type Empty struct{}

func (Empty) Describe() string { return "empty" }

func (Empty) Measure(Constraints) (*Placement, error) {
	return &Placement{Kind: "empty"}, nil
}

func (Empty) FallbackMeasure(Size) (Size, error) { return Size{}, nil }

func (Empty) FlexRange(Axis, int) (FlexRange, error) { return Fixed(0), nil }

// Rectangle is a filled shape that expands to whatever it is proposed.
type Rectangle struct {
	Meta
	Fill         string
	CornerRadius int

	// InfinityDefault replaces an infinite proposal; zero means
	// DefaultExpandLength.
	InfinityDefault int
}

func (r *Rectangle) Describe() string { return r.describe("rectangle") }

func (r *Rectangle) expand(proposed Size) Size {
	def := r.InfinityDefault
	if def == 0 {
		def = DefaultExpandLength
	}
	return Size{Width: orElse(proposed.Width, def), Height: orElse(proposed.Height, def)}
}

func (r *Rectangle) Measure(c Constraints) (*Placement, error) {
	pl := r.place("rectangle", r.expand(c.Max()))
	pl.Fill = r.Fill
	pl.CornerRadius = r.CornerRadius
	return pl, nil
}

func (r *Rectangle) FallbackMeasure(proposed Size) (Size, error) { return r.expand(proposed), nil }

func (r *Rectangle) FlexRange(Axis, int) (FlexRange, error) { return Flexible, nil }

// Spacer expands along Axis and takes no cross-axis space. Stacks built
// from documents set Axis to their own axis.
type Spacer struct {
	Meta
	Axis      Axis
	MinLength int
}

func (s *Spacer) Describe() string { return s.describe("spacer") }

func (s *Spacer) size(proposed Size) Size {
	along := max(orElse(proposed.Along(s.Axis), s.MinLength), s.MinLength)
	return Size{}.With(s.Axis, along)
}

func (s *Spacer) Measure(c Constraints) (*Placement, error) {
	return s.place("spacer", s.size(c.Max())), nil
}

func (s *Spacer) FallbackMeasure(proposed Size) (Size, error) { return s.size(proposed), nil }

func (s *Spacer) FlexRange(axis Axis, _ int) (FlexRange, error) {
	if axis != s.Axis {
		return Fixed(0), nil
	}
	return FlexRange{Min: s.MinLength, Max: Infinity}, nil
}

// ResizingMode controls how an Image responds to proposals.
type ResizingMode uint8

const (
	ResizeNone    ResizingMode = iota // intrinsic size, ignores proposals
	ResizeStretch                     // takes the proposal, ignoring aspect ratio
	ResizeFit                         // largest aspect-preserving size inside the proposal
	ResizeFill                        // smallest aspect-preserving size covering the proposal
)

var resizingNames = [...]string{"none", "stretch", "fit", "fill"}

func (m ResizingMode) String() string {
	if int(m) < len(resizingNames) {
		return resizingNames[m]
	}
	return "none"
}

// ParseResizingMode parses a resizing mode name. The empty string yields
// ResizeNone.
func ParseResizingMode(s string) (ResizingMode, bool) {
	if s == "" {
		return ResizeNone, true
	}
	for i, name := range resizingNames {
		if name == s {
			return ResizingMode(i), true
		}
	}
	return ResizeNone, false
}

// Image is a bitmap with an intrinsic size.
type Image struct {
	Meta
	Source    string
	Intrinsic Size
	Resizing  ResizingMode
}

func (im *Image) Describe() string { return im.describe("image") }

func (im *Image) size(proposed Size) Size {
	nat := im.Intrinsic
	switch im.Resizing {
	case ResizeStretch:
		return Size{Width: orElse(proposed.Width, nat.Width), Height: orElse(proposed.Height, nat.Height)}
	case ResizeFit, ResizeFill:
		if nat.Width == 0 || nat.Height == 0 || (proposed.Width == Infinity && proposed.Height == Infinity) {
			return nat
		}
		sx := float64(proposed.Width) / float64(nat.Width)
		sy := float64(proposed.Height) / float64(nat.Height)
		var scale float64
		switch {
		case proposed.Width == Infinity:
			scale = sy
		case proposed.Height == Infinity:
			scale = sx
		case im.Resizing == ResizeFit:
			scale = min(sx, sy)
		default:
			scale = max(sx, sy)
		}
		return Size{
			Width:  int(float64(nat.Width)*scale + 0.5),
			Height: int(float64(nat.Height)*scale + 0.5),
		}
	}
	return nat
}

func (im *Image) Measure(c Constraints) (*Placement, error) {
	pl := im.place("image", im.size(c.Max()))
	pl.Source = im.Source
	return pl, nil
}

func (im *Image) FallbackMeasure(proposed Size) (Size, error) { return im.size(proposed), nil }

func (im *Image) FlexRange(axis Axis, _ int) (FlexRange, error) {
	if im.Resizing == ResizeNone {
		return Fixed(im.Intrinsic.Along(axis)), nil
	}
	return Flexible, nil
}
